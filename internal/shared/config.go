package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// AdminUsername is the account allowed to add and delete artifacts as an administrator.
// The seeded account must use it.
const AdminUsername = "admin"

// DefaultSeedPassword is the well-known password of the seeded account.
//
// It exists for local setups and tests only.
const DefaultSeedPassword = "admin123"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Seed     SeedConfig     `toml:"seed"`
	Log      LogConfig      `toml:"log"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path          string `toml:"path"`
	MaxOpenConns  int    `toml:"max_open_conns"`
	MaxIdleConns  int    `toml:"max_idle_conns"`
	BusyTimeoutMS int    `toml:"busy_timeout_ms"`
}

// SeedConfig names the account inserted when the store is initialized.
type SeedConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// UsesDefaultPassword reports whether the seed still carries the well-known password.
func (s SeedConfig) UsesDefaultPassword() bool {
	return s.Password == DefaultSeedPassword
}

// Validate checks the settings the store cannot run without.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required", ErrInvalidConfig)
	}
	if c.Database.BusyTimeoutMS < 0 {
		return fmt.Errorf("%w: database.busy_timeout_ms must not be negative", ErrInvalidConfig)
	}
	if c.Seed.Username == "" || c.Seed.Password == "" {
		return fmt.Errorf("%w: seed.username and seed.password are required", ErrInvalidConfig)
	}
	if c.Seed.Username != AdminUsername {
		return fmt.Errorf("%w: seed.username must be %q, got %q", ErrInvalidConfig, AdminUsername, c.Seed.Username)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveConfig loads the config at path when the file exists and falls back to defaults otherwise.
//
// The boolean reports whether a file was read.
func ResolveConfig(path string) (*Config, bool, error) {
	if path == "" {
		return DefaultConfig(), false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), false, nil
		}
		return nil, false, fmt.Errorf("failed to stat config file: %w", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		return nil, false, err
	}
	return config, true, nil
}
