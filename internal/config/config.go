package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all settings for the demo binaries.
type Config struct {
	// History configures the undo history.
	History HistoryConfig `toml:"history"`
	// Log configures file logging.
	Log LogConfig `toml:"log"`
	// UI configures the interactive canvas.
	UI UIConfig `toml:"ui"`
	// Script configures the Lua command host.
	Script ScriptConfig `toml:"script"`
}

// HistoryConfig configures the undo history.
type HistoryConfig struct {
	// Limit caps the number of undoable entries. Zero means unbounded.
	Limit int `toml:"limit" env:"REWIND_HISTORY_LIMIT"`
}

// LogConfig configures file logging.
type LogConfig struct {
	// Path is the log file location. Empty disables file logging.
	Path string `toml:"path" env:"REWIND_LOG_PATH"`
	// Level is the minimum level to record: debug, info, warn, or error.
	Level string `toml:"level" env:"REWIND_LOG_LEVEL"`
}

// UIConfig configures the interactive canvas.
type UIConfig struct {
	// Palette lists the colors cycled by the recolor command.
	Palette []string `toml:"palette" env:"REWIND_UI_PALETTE" envSeparator:","`
	// ShowStatus toggles the status line at the bottom of the screen.
	ShowStatus bool `toml:"show_status" env:"REWIND_UI_SHOW_STATUS"`
}

// ScriptConfig configures the Lua command host.
type ScriptConfig struct {
	// Paths lists Lua files loaded at startup, in order.
	Paths []string `toml:"paths" env:"REWIND_SCRIPT_PATHS" envSeparator:","`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			Limit: 0,
		},
		Log: LogConfig{
			Path:  "",
			Level: "info",
		},
		UI: UIConfig{
			Palette:    []string{"red", "green", "yellow", "blue", "magenta", "cyan"},
			ShowStatus: true,
		},
		Script: ScriptConfig{
			Paths: nil,
		},
	}
}

// Load resolves the configuration for the given file path. Values are
// layered: defaults, then the TOML file, then a .env file in the working
// directory, then REWIND_* environment variables. A missing config file is
// not an error. A malformed one returns a *ParseError.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, &ParseError{
				Path:    path,
				Message: err.Error(),
				Err:     err,
			}
		}
	}

	// A missing .env is the common case and not an error.
	_ = godotenv.Load()

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.History.Limit < 0 {
		return &ValidationError{
			Field:   "history.limit",
			Message: fmt.Sprintf("must be >= 0, got %d", c.History.Limit),
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be debug, info, warn, or error, got %q", c.Log.Level),
		}
	}
	if len(c.UI.Palette) == 0 {
		return &ValidationError{
			Field:   "ui.palette",
			Message: "must list at least one color",
		}
	}
	return nil
}

// DefaultPath returns the conventional config file location, or an empty
// string when the user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rewind", "config.toml")
}
