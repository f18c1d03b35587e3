// Package config loads cutout's runtime configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config is the top-level configuration.
type Config struct {
	Host    HostConfig    `mapstructure:"host"`
	UI      UIConfig      `mapstructure:"ui"`
	Prefs   PrefsConfig   `mapstructure:"prefs"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// HostConfig points at the host process that does the image work.
type HostConfig struct {
	// URL is the host's base address, e.g. http://127.0.0.1:8765.
	URL string `mapstructure:"url"`

	// Timeout bounds a single bridge call.
	Timeout time.Duration `mapstructure:"timeout"`

	// ReconnectDelay is the pause before re-opening a dropped event stream.
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
}

// UIConfig controls the terminal program.
type UIConfig struct {
	AltScreen       bool          `mapstructure:"alt_screen"`
	Mouse           bool          `mapstructure:"mouse"`
	NotificationTTL time.Duration `mapstructure:"notification_ttl"`
	WelcomeDelay    time.Duration `mapstructure:"welcome_delay"`
}

// PrefsConfig locates the persisted preferences file.
type PrefsConfig struct {
	Path string `mapstructure:"path"`
}

// ExportConfig controls local saves of processed images.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Host: HostConfig{
			URL:            "http://127.0.0.1:8765",
			Timeout:        30 * time.Second,
			ReconnectDelay: 2 * time.Second,
		},
		UI: UIConfig{
			AltScreen:       true,
			Mouse:           true,
			NotificationTTL: 5 * time.Second,
			WelcomeDelay:    time.Second,
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Host.URL) == "" {
		errs = append(errs, errors.New("host.url must not be empty"))
	}
	if c.Host.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("host.timeout must be positive, got %s", c.Host.Timeout))
	}
	if c.Host.ReconnectDelay < 0 {
		errs = append(errs, fmt.Errorf("host.reconnect_delay must not be negative, got %s", c.Host.ReconnectDelay))
	}
	if c.UI.NotificationTTL <= 0 {
		errs = append(errs, fmt.Errorf("ui.notification_ttl must be positive, got %s", c.UI.NotificationTTL))
	}
	if c.UI.WelcomeDelay < 0 {
		errs = append(errs, fmt.Errorf("ui.welcome_delay must not be negative, got %s", c.UI.WelcomeDelay))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}
