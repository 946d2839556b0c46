package main

import (
	"log"
	"os"
	"time"

	"invoicing-backend/internal/auth"
	"invoicing-backend/internal/config"
	"invoicing-backend/internal/models"
	"invoicing-backend/internal/repository"
	"invoicing-backend/internal/routes"
	"invoicing-backend/internal/services/backup"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pkg/browser"
	"github.com/rs/zerolog"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := newLogger(cfg)

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init failed")
	}
	if err := db.AutoMigrate(&models.Invoice{}); err != nil {
		logger.Fatal().Err(err).Msg("schema migration failed")
	}

	creds, err := auth.NewCredentials(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("credential setup failed")
	}
	sessions := auth.NewStore(cfg.SessionTTL)
	defer sessions.Close()

	backupSvc := backup.NewService(repository.NewInvoiceRepository(db), cfg.DBPath, cfg.BackupDir, logger)
	if err := backupSvc.Start(cfg.BackupStartupDelay, cfg.BackupInterval); err != nil {
		logger.Fatal().Err(err).Msg("backup scheduler failed")
	}
	defer backupSvc.Stop()

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:" + cfg.Port},
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, cfg, sessions, creds)

	// Open the operator's browser. Best-effort: a failure only logs.
	if cfg.OpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := browser.OpenURL("http://localhost:" + cfg.Port); err != nil {
				logger.Warn().Err(err).Msg("could not open browser")
			}
		}()
	}

	logger.Info().Str("port", cfg.Port).Msg("invoicing server listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if cfg.Env == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger
}
