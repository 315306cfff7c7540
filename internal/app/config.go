package app

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the console.
type Config struct {
	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:3000/api/v1"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`

	// StateDir holds the draft order and the auth token. Empty means
	// <user config dir>/tiemhang.
	StateDir string `envconfig:"STATE_DIR" default:""`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// LowStockThreshold is the on-hand quantity at or below which a
	// product counts as low stock on the dashboard.
	LowStockThreshold int64 `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.APIBaseURL == "" {
		return nil, errors.New("api base url must be provided")
	}
	if cfg.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		cfg.StateDir = filepath.Join(base, "tiemhang")
	}
	return &cfg, nil
}
