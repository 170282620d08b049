package adapter

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Breaker BreakerConfig `mapstructure:"breaker"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds recommendation service configuration
type APIConfig struct {
	URL     string        `mapstructure:"url"`     // Base URL of the recommendation service
	Timeout time.Duration `mapstructure:"timeout"` // Per-request timeout
}

// BreakerConfig holds circuit breaker configuration
type BreakerConfig struct {
	Failures uint32        `mapstructure:"failures"` // Consecutive failures before failing fast (0 = off)
	Timeout  time.Duration `mapstructure:"timeout"`  // How long to fail fast before trying again
}

// StorageConfig holds preference storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // BoltDB file; empty keeps preferences in memory
}

// UIConfig holds UI configuration
type UIConfig struct {
	Count int `mapstructure:"count"` // Movies requested per listing
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			URL:     "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		Breaker: BreakerConfig{
			Failures: 5,
			Timeout:  30 * time.Second,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "cinematch.db"),
		},
		UI: UIConfig{
			Count: 12,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "cinematch.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the directory for the database and log file
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinematch")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinematch")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinematch")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cinematch")
	}
}

// DefaultConfigFile returns the path SaveConfig writes to
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

func newViper(cfg *Config) *viper.Viper {
	v := viper.New()

	v.SetDefault("api.url", cfg.API.URL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("breaker.failures", cfg.Breaker.Failures)
	v.SetDefault("breaker.timeout", cfg.Breaker.Timeout)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("ui.count", cfg.UI.Count)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	// Environment variable overrides: CINEMATCH_API_URL, CINEMATCH_UI_COUNT, ...
	v.SetEnvPrefix("CINEMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from file and environment.
// An explicit configFile must exist; otherwise the default locations are
// searched and a missing file just means defaults.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks the values the application cannot run without
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.url %q", c.API.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.url must be http or https, got %q", u.Scheme)
	}
	if c.UI.Count <= 0 {
		return fmt.Errorf("ui.count must be positive, got %d", c.UI.Count)
	}
	return nil
}

// SaveConfig writes cfg to path as YAML
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("api.url", cfg.API.URL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("breaker.failures", cfg.Breaker.Failures)
	v.Set("breaker.timeout", cfg.Breaker.Timeout.String())
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("ui.count", cfg.UI.Count)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
