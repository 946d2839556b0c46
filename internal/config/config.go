package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v7"
)

// Config is the full configuration surface. Every value has a default so the
// app runs with no environment at all (zero-config single-operator use); the
// admin credentials and port can be overridden without a rebuild.
type Config struct {
	Port string `env:"PORT" envDefault:"3000"`
	Env  string `env:"APP_ENV" envDefault:"development"`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"grand"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"test"`

	DBPath    string `env:"DB_PATH" envDefault:"invoices.db"`
	BackupDir string `env:"BACKUP_DIR" envDefault:"backups"`
	StaticDir string `env:"STATIC_DIR" envDefault:"public"`

	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	BackupInterval     time.Duration `env:"BACKUP_INTERVAL" envDefault:"12h"`
	BackupStartupDelay time.Duration `env:"BACKUP_STARTUP_DELAY" envDefault:"1s"`

	OpenBrowser bool   `env:"OPEN_BROWSER" envDefault:"true"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
