// One-off backup utility: performs the same JSON export and database file
// copy as the server's scheduled backup, then exits.
package main

import (
	"log"
	"os"

	"invoicing-backend/internal/config"
	"invoicing-backend/internal/repository"
	"invoicing-backend/internal/services/backup"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database open failed")
	}

	svc := backup.NewService(repository.NewInvoiceRepository(db), cfg.DBPath, cfg.BackupDir, logger)
	if err := svc.Run(); err != nil {
		logger.Fatal().Err(err).Msg("backup failed")
	}
}
