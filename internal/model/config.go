package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ServerConfig points the client at the records backend.
type ServerConfig struct {
	// BaseURL is the root URL of the backend API
	// (e.g. https://records.internal.example.com/api).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// StreamPath is the SSE endpoint path, relative to BaseURL.
	StreamPath string `mapstructure:"stream_path" yaml:"stream_path"`
}

// MailboxConfig holds IMAP settings for the agency-response inbox.
// The inbox page renders an empty state when Enabled is false.
type MailboxConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	TLS      bool   `mapstructure:"tls" yaml:"tls"`

	// TrackingPattern is the regexp used to pull FOIA tracking numbers
	// out of subject lines.
	TrackingPattern string `mapstructure:"tracking_pattern" yaml:"tracking_pattern"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme           string `mapstructure:"theme" yaml:"theme"`
	PageSize        int    `mapstructure:"page_size" yaml:"page_size"`
	PollIntervalSec int    `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server   ServerConfig  `mapstructure:"server" yaml:"server"`
	Mailbox  MailboxConfig `mapstructure:"mailbox" yaml:"mailbox"`
	Display  DisplayConfig `mapstructure:"display" yaml:"display"`
	CacheDir string        `mapstructure:"cache_dir" yaml:"cache_dir"`
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/foiadesk/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "foiadesk", "config.yaml")
}

// DefaultCacheDir returns the default location for the snapshot cache,
// lock file, and log file.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".foiadesk")
	}
	return filepath.Join(home, ".local", "state", "foiadesk")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			StreamPath: "/events/stream",
		},
		Mailbox: MailboxConfig{
			Port:            "993",
			TLS:             true,
			TrackingPattern: `[A-Z]{1,4}-\d{4}-\d{3,6}`,
		},
		Display: DisplayConfig{
			Theme:           "default",
			PageSize:        20,
			PollIntervalSec: 60,
		},
		CacheDir: DefaultCacheDir(),
		LogLevel: "info",
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("server.stream_path", "/events/stream")
	v.SetDefault("mailbox.port", "993")
	v.SetDefault("mailbox.tls", true)
	v.SetDefault("mailbox.tracking_pattern", `[A-Z]{1,4}-\d{4}-\d{3,6}`)
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.page_size", 20)
	v.SetDefault("display.poll_interval_sec", 60)
	v.SetDefault("cache_dir", DefaultCacheDir())
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Display.PageSize <= 0 {
		cfg.Display.PageSize = 20
	}
	if cfg.Display.PollIntervalSec <= 0 {
		cfg.Display.PollIntervalSec = 60
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("mailbox", cfg.Mailbox)
	v.Set("display", cfg.Display)
	v.Set("cache_dir", cfg.CacheDir)
	v.Set("log_level", cfg.LogLevel)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
