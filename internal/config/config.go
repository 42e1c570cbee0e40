package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/checkin.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	EventName      string        `env:"EVENT_NAME" envDefault:"Sustainability Summit"`
	Goal           int           `env:"CHECKIN_GOAL" envDefault:"50"`
	StorageKey     string        `env:"STORAGE_KEY" envDefault:"attendanceState-v2"`
	GreetingTTL    time.Duration `env:"GREETING_TTL" envDefault:"4s"`
	CelebrationTTL time.Duration `env:"CELEBRATION_TTL" envDefault:"6s"`

	// PublicURL is encoded in the kiosk QR code. Empty means the request origin.
	PublicURL string `env:"PUBLIC_URL"`
	StaticDir string `env:"STATIC_DIR"`

	// AdminPasswordHash is a bcrypt hash. Admin routes are off when empty.
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Goal <= 0 {
		errs = append(errs, fmt.Errorf("CHECKIN_GOAL must be positive, got %d", c.Goal))
	}
	if c.StorageKey == "" {
		errs = append(errs, errors.New("STORAGE_KEY must not be empty"))
	}
	if c.GreetingTTL <= 0 {
		errs = append(errs, fmt.Errorf("GREETING_TTL must be positive, got %s", c.GreetingTTL))
	}
	if c.CelebrationTTL <= 0 {
		errs = append(errs, fmt.Errorf("CELEBRATION_TTL must be positive, got %s", c.CelebrationTTL))
	}
	return errors.Join(errs...)
}
