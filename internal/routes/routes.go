package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"invoicing-backend/internal/auth"
	"invoicing-backend/internal/config"
	handler "invoicing-backend/internal/handlers"
	"invoicing-backend/internal/repository"
	service "invoicing-backend/internal/services/invoice"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, sessions *auth.Store, creds *auth.Credentials) {
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceSvc := service.NewService(invoiceRepo)

	authHandler := handler.NewAuthHandler(creds, sessions)
	invoiceHandler := handler.NewInvoiceHandler(invoiceSvc)
	backupHandler := handler.NewBackupHandler(invoiceSvc, cfg.DBPath)

	api := r.Group("/api")

	// Liveness probe
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)

	protected := api.Group("", auth.RequireSession(sessions))

	invoices := protected.Group("/invoices")
	{
		invoices.POST("", invoiceHandler.Create)
		invoices.GET("", invoiceHandler.List)
		invoices.GET("/:id", invoiceHandler.Get)
		invoices.DELETE("/:id", invoiceHandler.Delete)
	}

	bk := protected.Group("/backup")
	bk.GET("/json", backupHandler.DownloadJSON)
	bk.GET("/db", backupHandler.DownloadDB)

	// Everything outside /api falls through to the static front end.
	r.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))
}
