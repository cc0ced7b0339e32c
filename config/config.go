// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the server binary needs. All values come from
// HOTEL_-prefixed environment variables.
type Config struct {
	Port int `envconfig:"PORT" default:"8080"`

	// Backend selects the storage implementation: "flatfile" or "sqlite".
	Backend string `envconfig:"BACKEND" default:"flatfile"`

	// DataDir is the flat-file table directory (flatfile backend).
	DataDir string `envconfig:"DATA_DIR" default:"./data"`

	// DBPath is the database file (sqlite backend).
	DBPath string `envconfig:"DB_PATH" default:"./hotel.db"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads .env if present, then the environment.
func Load() (Config, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("HOTEL", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.Backend != "flatfile" && cfg.Backend != "sqlite" {
		return Config{}, fmt.Errorf("load config: unknown backend %q", cfg.Backend)
	}
	return cfg, nil
}
