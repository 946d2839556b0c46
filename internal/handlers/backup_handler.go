package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"invoicing-backend/internal/services/backup"
	service "invoicing-backend/internal/services/invoice"

	"github.com/gin-gonic/gin"
)

type BackupHandler struct {
	invoices *service.Service
	dbPath   string
}

func NewBackupHandler(invoices *service.Service, dbPath string) *BackupHandler {
	return &BackupHandler{invoices: invoices, dbPath: dbPath}
}

// DownloadJSON streams the full dump (soft-deleted rows included) as a file
// attachment, named like the scheduled backup's JSON file.
func (h *BackupHandler) DownloadJSON(c *gin.Context) {
	rows, err := h.invoices.ExportAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "backup failed"})
		return
	}
	fname := "invoices_" + backup.Timestamp(time.Now()) + ".json"
	c.Header("Content-Disposition", `attachment; filename="`+fname+`"`)
	c.IndentedJSON(http.StatusOK, rows)
}

// DownloadDB streams the raw database file.
func (h *BackupHandler) DownloadDB(c *gin.Context) {
	c.FileAttachment(h.dbPath, filepath.Base(h.dbPath))
}
