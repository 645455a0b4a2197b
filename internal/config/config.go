package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fatih/color"
)

// Config is the runtime configuration shared by the server and the CLIs.
type Config struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	DataDir      string        `env:"BOTDB_DATA_DIR" envDefault:"database"`
	DataURL      string        `env:"BOTDB_DATA_URL"`
	ImageURL     string        `env:"BOTDB_IMAGE_URL"`
	ImageDir     string        `env:"BOTDB_IMAGE_DIR" envDefault:"."`
	DeckKey      string        `env:"BOTDB_DECK_KEY" envDefault:"BOTDB"`
	RedisAddr    string        `env:"BOTDB_REDIS_ADDR"`
	SessionIdle  time.Duration `env:"BOTDB_SESSION_IDLE" envDefault:"24h"`
	ShareTTL     time.Duration `env:"BOTDB_SHARE_TTL" envDefault:"720h"`
	FetchTimeout time.Duration `env:"BOTDB_FETCH_TIMEOUT" envDefault:"12s"`
	GinMode      string        `env:"GIN_MODE" envDefault:"debug"`
}

// Load reads Config from the environment. Malformed values are reported
// with a "parse env:" prefix.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Exitf is the fatal path of the botdb binaries: the message goes to stderr
// in red and the process stops with status 1.
func Exitf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
