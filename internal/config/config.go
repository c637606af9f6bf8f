// Package config handles configuration loading and defaults for selah.
// Configuration is loaded from XDG-compliant paths (typically
// ~/.config/selah/config.yaml), then overridden by SELAH_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.selah)
	DataDir string `yaml:"data_dir,omitempty" envconfig:"DATA_DIR"`

	// Platform selects the notification platform variant: "local" or "web"
	Platform string `yaml:"platform,omitempty" envconfig:"PLATFORM"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level,omitempty" envconfig:"LOG_LEVEL"`

	// LogFile redirects log output; empty means stderr (or silent in the TUI)
	LogFile string `yaml:"log_file,omitempty" envconfig:"LOG_FILE"`

	// UserID identifies the signed-in user for the push-token hand-off
	UserID string `yaml:"user_id,omitempty" envconfig:"USER_ID"`

	// ProfileEndpoint is the user-profile service URL; empty disables the hand-off
	ProfileEndpoint string `yaml:"profile_endpoint,omitempty" envconfig:"PROFILE_ENDPOINT"`

	// WeeklyCueDay is the weekday for the standing weekly encouragement
	WeeklyCueDay string `yaml:"weekly_cue_day,omitempty" envconfig:"WEEKLY_CUE_DAY"`

	// WeeklyCueTime is the HH:MM slot for the weekly encouragement
	WeeklyCueTime string `yaml:"weekly_cue_time,omitempty" envconfig:"WEEKLY_CUE_TIME"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir:       defaultDataDir(),
		Platform:      "local",
		LogLevel:      "warn",
		WeeklyCueDay:  "sunday",
		WeeklyCueTime: "18:00",
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".selah"
	}
	return filepath.Join(home, ".selah")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "selah")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "selah")
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults, and applies
// SELAH_* environment overrides last. A missing config file just means
// defaults.
func Load() (*Config, error) {
	cfg := Default()

	if path := configPath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			var userCfg Config
			if err := yaml.Unmarshal(data, &userCfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			cfg.mergeNonEmpty(&userCfg)
		}
	}

	if err := envconfig.Process("selah", cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}
	return cfg, nil
}

// mergeNonEmpty applies non-empty values from other to c. Every field is a
// string, so presence and non-emptiness coincide.
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}
	if other.Platform != "" {
		c.Platform = other.Platform
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.UserID != "" {
		c.UserID = other.UserID
	}
	if other.ProfileEndpoint != "" {
		c.ProfileEndpoint = other.ProfileEndpoint
	}
	if other.WeeklyCueDay != "" {
		c.WeeklyCueDay = other.WeeklyCueDay
	}
	if other.WeeklyCueTime != "" {
		c.WeeklyCueTime = other.WeeklyCueTime
	}
}

// GetDataDir returns the resolved data directory path, expanding a leading
// tilde.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	if c.DataDir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataDir
	}
	if strings.HasPrefix(c.DataDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(c.DataDir, "~/"))
		}
	}
	return c.DataDir
}

// WeeklyCue parses the configured weekly slot. Unknown day names or
// malformed times fall back to Sunday 18:00.
func (c *Config) WeeklyCue() (time.Weekday, int, int) {
	day := time.Sunday
	if d, ok := weekdays[strings.ToLower(c.WeeklyCueDay)]; ok {
		day = d
	}

	hour, minute := 18, 0
	if h, m, err := splitClock(c.WeeklyCueTime); err == nil {
		hour, minute = h, m
	}
	return day, hour, minute
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// splitClock parses an HH:MM string with range checks.
func splitClock(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed clock %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("bad hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("bad minute in %q", s)
	}
	return h, m, nil
}
