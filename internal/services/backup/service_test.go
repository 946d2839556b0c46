package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"invoicing-backend/internal/models"
	"invoicing-backend/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) (*repository.InvoiceRepository, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "invoices.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Invoice{}))
	return repository.NewInvoiceRepository(db), dbPath
}

func TestRunWritesJSONDumpAndDBCopy(t *testing.T) {
	repo, dbPath := setupDB(t)

	now := time.Now()
	require.NoError(t, repo.Create(&models.Invoice{InvoiceNo: "INV-20260831-0001", ClientName: "kept", CreatedAt: now}))
	deleted := &models.Invoice{InvoiceNo: "INV-20260831-0002", ClientName: "gone", CreatedAt: now}
	require.NoError(t, repo.Create(deleted))
	require.NoError(t, repo.SoftDelete(deleted.ID))

	outDir := filepath.Join(t.TempDir(), "backups")
	svc := NewService(repo, dbPath, outDir, zerolog.Nop())
	require.NoError(t, svc.Run())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var jsonFile, dbFile string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".json":
			jsonFile = filepath.Join(outDir, e.Name())
			require.Regexp(t, `^invoices_\d{8}_\d{6}\.json$`, e.Name())
		case ".sqlite":
			dbFile = filepath.Join(outDir, e.Name())
			require.Regexp(t, `^db_\d{8}_\d{6}\.sqlite$`, e.Name())
		}
	}
	require.NotEmpty(t, jsonFile)
	require.NotEmpty(t, dbFile)

	// the JSON dump is unfiltered: soft-deleted rows are included
	data, err := os.ReadFile(jsonFile)
	require.NoError(t, err)
	var rows []models.Invoice
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	require.True(t, rows[1].DeletedFlag)

	// the DB copy is byte-for-byte
	orig, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	copied, err := os.ReadFile(dbFile)
	require.NoError(t, err)
	require.Equal(t, orig, copied)
}

func TestRunReportsBackupDirFailure(t *testing.T) {
	repo, dbPath := setupDB(t)

	// a regular file where the backups directory should go
	blocked := filepath.Join(t.TempDir(), "backups")
	require.NoError(t, os.WriteFile(blocked, []byte("in the way"), 0o644))

	svc := NewService(repo, dbPath, blocked, zerolog.Nop())
	require.Error(t, svc.Run())

	// the scheduled path swallows the same failure
	svc.runScheduled()
}

func TestTimestampFormat(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 8, 31, 14, 3, 5, 0, time.UTC)
	require.Equal(t, "20260831_140305", Timestamp(at))
}
