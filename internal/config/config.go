// Package config loads and validates the editor configuration from a
// JSON file, merging it over built-in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"outpad/internal/renderer"
	"outpad/internal/renderer/core"
)

// Validation errors.
var (
	ErrBadTabWidth = errors.New("tab_width must be between 1 and 16")
	ErrBadColor    = errors.New("invalid color")
	ErrBadLogLevel = errors.New("log_level must be debug, info, warn, or error")
)

// ThemeConfig holds the configurable colors as hex strings. Empty fields
// keep the built-in default.
type ThemeConfig struct {
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`
	Whitespace string `json:"whitespace,omitempty"`
	Selection  string `json:"selection,omitempty"`
}

// Config is the editor configuration.
type Config struct {
	// TabWidth is the tab stop distance in cells.
	TabWidth int `json:"tab_width"`
	// WordWrap soft-wraps lines at the viewport width.
	WordWrap bool `json:"word_wrap"`
	// ShowWhitespace draws visible glyphs for spaces, tabs, and breaks.
	ShowWhitespace bool `json:"show_whitespace"`
	// MatchCase makes searches case sensitive by default.
	MatchCase bool `json:"match_case"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`
	// LogFile receives log output; empty discards it.
	LogFile string `json:"log_file,omitempty"`

	Theme ThemeConfig `json:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TabWidth:       4,
		WordWrap:       true,
		ShowWhitespace: false,
		MatchCase:      false,
		LogLevel:       "info",
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "outpad", "config.json")
}

// Load reads the file at path over the defaults. A missing file is not an
// error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return ErrBadTabWidth
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrBadLogLevel
	}
	for _, hex := range []string{c.Theme.Foreground, c.Theme.Background, c.Theme.Whitespace, c.Theme.Selection} {
		if hex == "" {
			continue
		}
		if _, err := core.ColorFromHex(hex); err != nil {
			return fmt.Errorf("%w: %v", ErrBadColor, err)
		}
	}
	return nil
}

// BuildTheme resolves the configured colors over the default theme.
func (c Config) BuildTheme() renderer.Theme {
	theme := renderer.DefaultTheme()

	if col, err := core.ColorFromHex(c.Theme.Foreground); err == nil && c.Theme.Foreground != "" {
		theme.Text.Foreground = col
	}
	if col, err := core.ColorFromHex(c.Theme.Background); err == nil && c.Theme.Background != "" {
		theme.Text.Background = col
	}
	if col, err := core.ColorFromHex(c.Theme.Whitespace); err == nil && c.Theme.Whitespace != "" {
		theme.Whitespace.Foreground = col
	}
	if col, err := core.ColorFromHex(c.Theme.Selection); err == nil && c.Theme.Selection != "" {
		theme.Selection = col
	}
	return theme
}
