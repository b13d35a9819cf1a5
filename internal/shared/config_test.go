package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tu "github.com/desertthunder/tunevault/internal/testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./tunevault.db" {
			t.Errorf("expected database path ./tunevault.db, got %s", config.Database.Path)
		}

		if config.Database.BusyTimeoutMS != 10000 {
			t.Errorf("expected busy timeout 10000, got %d", config.Database.BusyTimeoutMS)
		}

		if config.Seed.Username != "admin" {
			t.Errorf("expected seed username admin, got %s", config.Seed.Username)
		}

		if !config.Seed.UsesDefaultPassword() {
			t.Error("expected default config to carry the well-known seed password")
		}

		if config.Log.Level != "info" {
			t.Errorf("expected log level info, got %s", config.Log.Level)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		tu.AssertFileExists(t, configPath)

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 4
busy_timeout_ms = 2500

[seed]
username = "admin"
password = "s3cret"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Database.BusyTimeoutMS != 2500 {
			t.Errorf("expected busy timeout 2500, got %d", config.Database.BusyTimeoutMS)
		}

		if config.Database.MaxIdleConns != 1 {
			t.Errorf("expected unset max_idle_conns to keep default 1, got %d", config.Database.MaxIdleConns)
		}

		if config.Seed.UsesDefaultPassword() {
			t.Error("expected custom seed password")
		}

		if config.Log.Level != "info" {
			t.Errorf("expected default log level to survive, got %s", config.Log.Level)
		}
	})

	t.Run("LoadConfig rejects empty seed", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[seed]\npassword = \"\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig rejects a seed account other than admin", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[seed]\nusername = \"root\"\npassword = \"s3cret\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig malformed", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[database\npath = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("ResolveConfig", func(t *testing.T) {
		config, loaded, err := ResolveConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("ResolveConfig() error = %v", err)
		}
		if loaded {
			t.Error("missing file should not be reported as loaded")
		}
		if config.Database.Path != DefaultConfig().Database.Path {
			t.Error("missing file should fall back to defaults")
		}

		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}
		if _, loaded, err := ResolveConfig(configPath); err != nil || !loaded {
			t.Errorf("ResolveConfig() loaded = %v, err = %v", loaded, err)
		}
	})

	t.Run("ResolveConfig unreadable path", func(t *testing.T) {
		dir := t.TempDir()
		notADir := filepath.Join(dir, "file")
		if err := os.WriteFile(notADir, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		config, loaded, err := ResolveConfig(filepath.Join(notADir, "config.toml"))
		if err == nil {
			t.Fatal("expected stat error for a path below a regular file")
		}
		if loaded || config != nil {
			t.Errorf("ResolveConfig() should not fall back to defaults, got loaded = %v, config = %v", loaded, config)
		}
	})
}
