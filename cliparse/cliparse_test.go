// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseFlags_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "UPSTREAM_URL", "PAGE_SIZE", "REFRESH_INTERVAL", "ADMIN_KEY"} {
		t.Setenv(k, "")
	}

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.PageSize != 20 {
		t.Errorf("expected page size 20, got %d", cfg.PageSize)
	}
	if cfg.RefreshInterval != 24*time.Hour {
		t.Errorf("expected 24h refresh, got %s", cfg.RefreshInterval)
	}
	if cfg.DriverName() != "sqlite" {
		t.Errorf("expected sqlite driver, got %s", cfg.DriverName())
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("PAGE_SIZE", "12")
	t.Setenv("REFRESH_INTERVAL", "1h")
	t.Setenv("ADMIN_KEY", "secret")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DriverName() != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.DriverName())
	}
	if cfg.PageSize != 12 {
		t.Errorf("expected page size 12, got %d", cfg.PageSize)
	}
	if cfg.RefreshInterval != time.Hour {
		t.Errorf("expected 1h, got %s", cfg.RefreshInterval)
	}
	if cfg.AdminKey != "secret" {
		t.Errorf("expected admin key from env, got %q", cfg.AdminKey)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-page-size", "5"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.PageSize != 5 {
		t.Errorf("expected page size 5, got %d", cfg.PageSize)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"bad port env", nil, map[string]string{"PORT": "abc"}},
		{"bad database type", []string{"-t", "mysql"}, nil},
		{"negative page size", []string{"-page-size", "-1"}, nil},
		{"bad refresh env", nil, map[string]string{"REFRESH_INTERVAL": "daily"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", "")
			t.Setenv("REFRESH_INTERVAL", "")
			t.Setenv("DATABASE_TYPE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func clearClientEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, k := range []string{"POKEPICK_API", "POKEPICK_STORE", "POKEPICK_STORE_TYPE", "POKEPICK_ICON_BASE", "POKEPICK_LOG", "POKEPICK_DEBUG", "POKEPICK_CONFIG"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestParseClientFlags_Defaults(t *testing.T) {
	clearClientEnv(t)

	cfg, err := ParseClientFlags(nil)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.APIBase != DefaultAPIBase {
		t.Errorf("expected %s, got %s", DefaultAPIBase, cfg.APIBase)
	}
	if cfg.StoreType != StoreBolt {
		t.Errorf("expected bolt store, got %s", cfg.StoreType)
	}
	if filepath.Base(cfg.StorePath) != "selection.db" {
		t.Errorf("unexpected store path %s", cfg.StorePath)
	}
}

func TestParseClientFlags_Precedence(t *testing.T) {
	dir := clearClientEnv(t)

	path := filepath.Join(dir, "custom.toml")
	file := ClientConfig{
		APIBase:    "http://from-file",
		StoreType:  StoreSQLite,
		IconBase:   "http://icons-from-file/",
		ConfigPath: path,
	}
	if err := file.Save(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("POKEPICK_API", "http://from-env")

	cfg, err := ParseClientFlags([]string{"-config", path, "-icons", "http://icons-from-flag/"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.APIBase != "http://from-env" {
		t.Errorf("env should beat file: got %s", cfg.APIBase)
	}
	if cfg.IconBase != "http://icons-from-flag/" {
		t.Errorf("flag should beat file: got %s", cfg.IconBase)
	}
	if cfg.StoreType != StoreSQLite {
		t.Errorf("file value should apply: got %s", cfg.StoreType)
	}
	if filepath.Base(cfg.StorePath) != "selection.sqlite" {
		t.Errorf("sqlite store should default to selection.sqlite, got %s", cfg.StorePath)
	}
}

func TestLoadClientFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("api_base = [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadClientFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestParseClientFlags_BadStoreType(t *testing.T) {
	clearClientEnv(t)

	if _, err := ParseClientFlags([]string{"-store-type", "redis"}); err == nil {
		t.Error("expected error for unknown store type")
	}
}
