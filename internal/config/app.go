package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/Reon1917/AU-GURU/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"AUGURU_RUNTIME_PATH" envDefault:".auguru"`
	HTTPAddr    string `env:"AUGURU_HTTP_ADDR" envDefault:":8080"`

	// Transport flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`

	// Conversation memory
	MaxExchanges   int           `env:"AUGURU_MAX_EXCHANGES" envDefault:"10"`
	SessionTimeout time.Duration `env:"AUGURU_SESSION_TIMEOUT" envDefault:"30m"`
	SweepInterval  time.Duration `env:"AUGURU_SWEEP_INTERVAL" envDefault:"5m"`

	// Transcript journal
	EnableTranscripts bool `env:"AUGURU_TRANSCRIPTS" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	path := c.RuntimePath
	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.GetRuntimePath(), "auguru.db")
}
