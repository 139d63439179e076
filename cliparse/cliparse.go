// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

// Server defaults
const (
	DefaultPort            = 5328
	DefaultDatabaseURL     = "file:pokepick.db"
	DefaultUpstreamURL     = "https://pokeapi.co/api/v2"
	DefaultPageSize        = 20
	DefaultRefreshInterval = 24 * time.Hour
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	UpstreamURL     string
	PageSize        int
	RefreshInterval time.Duration
	AdminKey        string
}

// LoadDotEnv loads .env from the working directory if present.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ParseFlags parses the catalog server configuration
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("pokepick-server", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.UpstreamURL, "upstream", "", "Upstream catalog API base URL")
	fs.IntVar(&cfg.PageSize, "page-size", 0, "Creatures per page")
	fs.DurationVar(&cfg.RefreshInterval, "refresh", 0, "Catalog refresh interval")

	// Secret (prefer env, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key for forced refresh (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = getenv("DATABASE_URL", DefaultDatabaseURL)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = getenv("DATABASE_TYPE", DatabaseSQLite)
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.UpstreamURL == "" {
		cfg.UpstreamURL = getenv("UPSTREAM_URL", DefaultUpstreamURL)
	}

	if cfg.PageSize == 0 {
		if s := os.Getenv("PAGE_SIZE"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid PAGE_SIZE env variable")
			}
			cfg.PageSize = n
		} else {
			cfg.PageSize = DefaultPageSize
		}
	}
	if cfg.PageSize < 1 {
		return Config{}, errors.New("page size must be positive")
	}

	if cfg.RefreshInterval == 0 {
		if s := os.Getenv("REFRESH_INTERVAL"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid REFRESH_INTERVAL env variable")
			}
			cfg.RefreshInterval = d
		} else {
			cfg.RefreshInterval = DefaultRefreshInterval
		}
	}

	// Optional: refresh endpoint is disabled without it
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}

	return cfg, nil
}

// DriverName maps the configured database type to its database/sql driver.
func (c Config) DriverName() string {
	if c.DatabaseType == DatabasePostgres {
		return "postgres"
	}
	return "sqlite"
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
