package handler

import (
	"errors"
	"net/http"

	"invoicing-backend/internal/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	creds    *auth.Credentials
	sessions *auth.Store
}

func NewAuthHandler(creds *auth.Credentials, sessions *auth.Store) *AuthHandler {
	return &AuthHandler{creds: creds, sessions: sessions}
}

// Login validates the admin credentials and issues a session cookie valid for
// a fixed window from now.
func (h *AuthHandler) Login(c *gin.Context) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	// A malformed or empty body leaves both fields blank and fails the
	// missing-fields check below.
	_ = c.ShouldBindJSON(&payload)

	if err := h.creds.Verify(payload.Username, payload.Password); err != nil {
		if errors.Is(err, auth.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "missing username or password"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "message": "invalid username or password"})
		return
	}

	token := h.sessions.Create(payload.Username)
	c.SetCookie(auth.CookieName, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Logout destroys the current session if one exists. Always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(auth.CookieName); err == nil && token != "" {
		h.sessions.Delete(token)
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
