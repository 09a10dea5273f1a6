package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Library  LibraryConfig  `toml:"library"`
	UI       UIConfig       `toml:"ui"`
	Logging  LoggingConfig  `toml:"logging"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// AuthConfig contains account validation settings.
type AuthConfig struct {
	MinPasswordLength int `toml:"min_password_length"`
}

// LibraryConfig contains favorites/history settings.
type LibraryConfig struct {
	HistoryLimit int `toml:"history_limit"`
}

// UIConfig contains TUI timings in milliseconds.
type UIConfig struct {
	NotificationMS int `toml:"notification_ms"`
	FadeMS         int `toml:"fade_ms"`
	ModalMS        int `toml:"modal_ms"`
	RefreshMS      int `toml:"refresh_ms"`
}

// LoggingConfig contains log level and the TUI log file location.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Notification is how long a notification stays fully visible.
func (c UIConfig) Notification() time.Duration { return ms(c.NotificationMS) }

// Fade is the fade-out duration of a notification.
func (c UIConfig) Fade() time.Duration { return ms(c.FadeMS) }

// Modal is the hide transition duration of the login modal.
func (c UIConfig) Modal() time.Duration { return ms(c.ModalMS) }

// Refresh is the delay before the library view rebuilds after a login or logout.
func (c UIConfig) Refresh() time.Duration { return ms(c.RefreshMS) }

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the embedded defaults.
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

// Validate rejects values the application cannot run with.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is empty", ErrInvalidConfig)
	}
	if c.Auth.MinPasswordLength < 1 {
		return fmt.Errorf("%w: auth.min_password_length must be positive", ErrInvalidConfig)
	}
	if c.Library.HistoryLimit < 1 {
		return fmt.Errorf("%w: library.history_limit must be positive", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
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
