package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
)

// Config holds all settlement job configuration.
type Config struct {
	// Live store (bets, users, hierarchy, partitioned ledgers)
	DatabaseURL      string `env:"DATABASE_URL,required"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"5"`

	// Reporting archive store (flattened bets + detail staging)
	ArchiveDatabaseURL      string `env:"ARCHIVE_DATABASE_URL,required"`
	ArchiveDatabaseMaxConns int    `env:"ARCHIVE_DATABASE_MAX_CONNS" envDefault:"5"`

	// Batch sizing
	BetChunkSize    int `env:"BET_CHUNK_SIZE" envDefault:"1000"`
	PlayersPageSize int `env:"PLAYERS_PAGE_SIZE" envDefault:"100"`

	// Provider detail lookups
	ProviderTimeoutSeconds int `env:"PROVIDER_TIMEOUT_SECONDS" envDefault:"30"`

	// Environment: "development", "production" or "test"
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance.
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

func load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
