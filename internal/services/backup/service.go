package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"invoicing-backend/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Service writes best-effort snapshots of the store: a JSON dump of every row
// (soft-deleted included) plus a byte-for-byte copy of the live database
// file. A snapshot taken while a request is writing may capture the row
// mid-write; that is accepted, this is not a consistent checkpoint.
type Service struct {
	repo   *repository.InvoiceRepository
	dbPath string
	outDir string
	log    zerolog.Logger
	cron   *cron.Cron
}

func NewService(repo *repository.InvoiceRepository, dbPath, outDir string, log zerolog.Logger) *Service {
	return &Service{repo: repo, dbPath: dbPath, outDir: outDir, log: log}
}

// Run performs one backup: invoices_<ts>.json and db_<ts>.sqlite in the
// backups directory, created if missing.
func (s *Service) Run() error {
	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	ts := Timestamp(time.Now())

	rows, err := s.repo.GetAll()
	if err != nil {
		return fmt.Errorf("read invoices: %w", err)
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal invoices: %w", err)
	}
	jsonPath := filepath.Join(s.outDir, "invoices_"+ts+".json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", jsonPath, err)
	}

	dbCopy := filepath.Join(s.outDir, "db_"+ts+".sqlite")
	if err := copyFile(s.dbPath, dbCopy); err != nil {
		return fmt.Errorf("copy database: %w", err)
	}

	s.log.Info().Str("json", jsonPath).Str("db", dbCopy).Msg("backup saved")
	return nil
}

// Start schedules backups: one run after the startup grace delay (so the
// store has settled), then a fixed-interval repeat. The interval is not
// aligned to wall-clock boundaries and does not correct for drift.
func (s *Service) Start(startupDelay, interval time.Duration) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc("@every "+interval.String(), s.runScheduled); err != nil {
		return fmt.Errorf("schedule backup: %w", err)
	}
	go func() {
		time.Sleep(startupDelay)
		s.runScheduled()
		s.cron.Start()
	}()
	return nil
}

// Stop halts the schedule. In-flight runs finish on their own.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// runScheduled swallows errors: a failed snapshot must never crash the
// process or break the timer loop.
func (s *Service) runScheduled() {
	if err := s.Run(); err != nil {
		s.log.Error().Err(err).Msg("scheduled backup failed")
	}
}

// Timestamp renders t as YYYYMMDD_HHMMSS, the suffix shared by both backup
// files. Two backups within the same second overwrite each other.
func Timestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
