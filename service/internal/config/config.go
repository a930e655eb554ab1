// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jason-s-yu/monodeal/engine"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds the server settings read from the environment.
type Config struct {
	ListenAddr      string        `env:"LISTEN_ADDR" envDefault:":8080"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	SnapshotTTL     time.Duration `env:"SNAPSHOT_TTL" envDefault:"24h"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// House rules applied to new rooms.
	MaxPlayers      int     `env:"MAX_PLAYERS" envDefault:"5"`
	MaxCardsPerTurn int     `env:"MAX_CARDS_PER_TURN" envDefault:"3"`
	HandLimit       int     `env:"HAND_LIMIT" envDefault:"7"`
	SetsToWin       int     `env:"SETS_TO_WIN" envDefault:"3"`
	ShuffleSeed     *uint64 `env:"SHUFFLE_SEED"` // fixed seed for reproducible games
}

// Load reads an optional .env file, then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxCardsPerTurn < 1 {
		return fmt.Errorf("MAX_CARDS_PER_TURN must be at least 1, got %d", c.MaxCardsPerTurn)
	}
	if c.HandLimit < 0 {
		return fmt.Errorf("HAND_LIMIT must not be negative, got %d", c.HandLimit)
	}
	if c.MaxPlayers < 2 {
		return fmt.Errorf("MAX_PLAYERS must be at least 2, got %d", c.MaxPlayers)
	}
	if c.SetsToWin < 1 {
		return fmt.Errorf("SETS_TO_WIN must be at least 1, got %d", c.SetsToWin)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// HouseRules returns the default rules with the configured overrides applied.
func (c *Config) HouseRules() engine.HouseRules {
	rules := engine.DefaultHouseRules()
	rules.MaxPlayers = c.MaxPlayers
	rules.MaxCardsPerTurn = c.MaxCardsPerTurn
	rules.HandLimit = c.HandLimit
	rules.SetsToWin = c.SetsToWin
	return rules
}

// ConfigureLogging applies the log level and format to the standard logger.
func (c *Config) ConfigureLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)
	if strings.EqualFold(c.LogFormat, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
