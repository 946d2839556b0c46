package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"invoicing-backend/internal/auth"
	"invoicing-backend/internal/config"
	"invoicing-backend/internal/models"
	"invoicing-backend/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := config.Config{
		Port:          "0",
		AdminUsername: "grand",
		AdminPassword: "test",
		DBPath:        filepath.Join(dir, "invoices.db"),
		BackupDir:     filepath.Join(dir, "backups"),
		StaticDir:     dir,
		SessionTTL:    time.Hour,
	}

	db, err := config.InitDB(cfg)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Invoice{}))

	creds, err := auth.NewCredentials(cfg.AdminUsername, cfg.AdminPassword)
	require.NoError(t, err)
	sessions := auth.NewStore(cfg.SessionTTL)
	t.Cleanup(sessions.Close)

	r := gin.New()
	routes.RegisterRoutes(r, db, cfg, sessions, creds)
	return r
}

func doJSON(r *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/login", `{"username":"grand","password":"test"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}

func TestPingIsPublic(t *testing.T) {
	r := newTestApp(t)
	w := doJSON(r, http.MethodGet, "/api/ping", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestLoginRejectsMissingFields(t *testing.T) {
	r := newTestApp(t)

	w := doJSON(r, http.MethodPost, "/api/login", `{"username":"grand"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/login", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := newTestApp(t)
	w := doJSON(r, http.MethodPost, "/api/login", `{"username":"grand","password":"wrong"}`, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r := newTestApp(t)

	for _, path := range []string{"/api/invoices", "/api/backup/json", "/api/backup/db"} {
		w := doJSON(r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
		require.Equal(t, "/login.html", w.Header().Get("Location"), path)
	}
}

func TestInvoiceLifecycle(t *testing.T) {
	r := newTestApp(t)
	cookie := login(t, r)

	// create
	w := doJSON(r, http.MethodPost, "/api/invoices", `{"client_name":"Acme Fleet","amount_net":100}`, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created struct {
		OK      bool           `json:"ok"`
		Invoice models.Invoice `json:"invoice"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.True(t, created.OK)
	require.NotZero(t, created.Invoice.ID)
	require.InDelta(t, 118.00, created.Invoice.AmountGross, 1e-9)
	require.Equal(t, "grand", created.Invoice.CreatedBy)
	require.Regexp(t, `^INV-\d{8}-\d{4}$`, created.Invoice.InvoiceNo)

	id := strconv.FormatUint(uint64(created.Invoice.ID), 10)

	// list
	w = doJSON(r, http.MethodGet, "/api/invoices", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// get
	w = doJSON(r, http.MethodGet, "/api/invoices/"+id, "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// soft delete
	w = doJSON(r, http.MethodDelete, "/api/invoices/"+id, "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"ok":true}`, w.Body.String())

	// gone from list and get, but deleting again still succeeds
	w = doJSON(r, http.MethodGet, "/api/invoices", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	list = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Empty(t, list)

	w = doJSON(r, http.MethodGet, "/api/invoices/"+id, "", cookie)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/invoices/"+id, "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// the JSON backup download still carries the deleted row
	w = doJSON(r, http.MethodGet, "/api/backup/json", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="invoices_`)
	var dump []models.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dump))
	require.Len(t, dump, 1)
	require.True(t, dump[0].DeletedFlag)
}

func TestCreateWithEmptyBodyUsesDefaults(t *testing.T) {
	r := newTestApp(t)
	cookie := login(t, r)

	w := doJSON(r, http.MethodPost, "/api/invoices", "", cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created struct {
		Invoice models.Invoice `json:"invoice"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Zero(t, created.Invoice.AmountNet)
	require.Equal(t, 18.0, created.Invoice.VATRate)
	require.Zero(t, created.Invoice.AmountGross)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	r := newTestApp(t)
	cookie := login(t, r)

	w := doJSON(r, http.MethodGet, "/api/invoices", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/logout", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/invoices", "", cookie)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBackupDBDownload(t *testing.T) {
	r := newTestApp(t)
	cookie := login(t, r)

	w := doJSON(r, http.MethodGet, "/api/backup/db", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "invoices.db")
	require.NotZero(t, w.Body.Len())
}
