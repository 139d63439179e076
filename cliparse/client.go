// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Selection store types
const (
	StoreBolt   = "bolt"
	StoreSQLite = "sqlite"
)

// Client defaults
const (
	DefaultAPIBase  = "http://127.0.0.1:5328"
	DefaultIconBase = "https://img.pokemondb.net/sprites/sword-shield/icon/"
)

// ClientConfig configures the terminal client.
type ClientConfig struct {
	APIBase   string `toml:"api_base"`
	StorePath string `toml:"store_path"`
	StoreType string `toml:"store_type"`
	IconBase  string `toml:"icon_base"`
	LogPath   string `toml:"log_path"`
	Debug     bool   `toml:"debug"`

	ConfigPath string `toml:"-"`
}

// ParseClientFlags resolves the client configuration.
// Precedence: flags, then env, then the TOML file, then defaults.
func ParseClientFlags(args []string) (ClientConfig, error) {
	var flags ClientConfig

	fs := flag.NewFlagSet("pokepick", flag.ContinueOnError)
	fs.StringVar(&flags.APIBase, "api", "", "Catalog API base URL")
	fs.StringVar(&flags.StorePath, "store", "", "Selection store path")
	fs.StringVar(&flags.StoreType, "store-type", "", "Selection store type (bolt or sqlite)")
	fs.StringVar(&flags.IconBase, "icons", "", "Selection icon base URL")
	fs.StringVar(&flags.LogPath, "log", "", "Log file path")
	fs.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&flags.ConfigPath, "config", "", "Config file (TOML)")

	if err := fs.Parse(args); err != nil {
		return ClientConfig{}, err
	}

	dir, err := clientDir()
	if err != nil {
		return ClientConfig{}, err
	}

	configPath := flags.ConfigPath
	if configPath == "" {
		configPath = getenv("POKEPICK_CONFIG", filepath.Join(dir, "config.toml"))
	}

	file, err := LoadClientFile(configPath)
	if err != nil {
		return ClientConfig{}, err
	}

	cfg := ClientConfig{
		APIBase:    firstNonEmpty(flags.APIBase, os.Getenv("POKEPICK_API"), file.APIBase, DefaultAPIBase),
		StoreType:  firstNonEmpty(flags.StoreType, os.Getenv("POKEPICK_STORE_TYPE"), file.StoreType, StoreBolt),
		IconBase:   firstNonEmpty(flags.IconBase, os.Getenv("POKEPICK_ICON_BASE"), file.IconBase, DefaultIconBase),
		LogPath:    firstNonEmpty(flags.LogPath, os.Getenv("POKEPICK_LOG"), file.LogPath, filepath.Join(dir, "pokepick.log")),
		Debug:      flags.Debug || os.Getenv("POKEPICK_DEBUG") == "1" || file.Debug,
		ConfigPath: configPath,
	}

	if cfg.StoreType != StoreBolt && cfg.StoreType != StoreSQLite {
		return ClientConfig{}, errors.New("store type must be bolt or sqlite")
	}

	defaultStore := filepath.Join(dir, "selection.db")
	if cfg.StoreType == StoreSQLite {
		defaultStore = filepath.Join(dir, "selection.sqlite")
	}
	cfg.StorePath = firstNonEmpty(flags.StorePath, os.Getenv("POKEPICK_STORE"), file.StorePath, defaultStore)

	return cfg, nil
}

// LoadClientFile reads a TOML client config. A missing file yields an empty
// config.
func LoadClientFile(path string) (ClientConfig, error) {
	var cfg ClientConfig

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the config as TOML to ConfigPath.
func (c ClientConfig) Save() error {
	if c.ConfigPath == "" {
		return errors.New("config path is required")
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.ConfigPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := os.WriteFile(c.ConfigPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// clientDir returns the per-user directory for client state.
func clientDir() (string, error) {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "pokepick"), nil
	}
	if dir, err := os.UserHomeDir(); err == nil && dir != "" {
		return filepath.Join(dir, ".pokepick"), nil
	}
	return "", errors.New("no config dir")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
