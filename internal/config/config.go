// Package config loads QuickNotes settings from a YAML file, QUICKNOTES_*
// environment variables and defaults, in that order of precedence from
// lowest to highest: defaults, file, environment.
package config

import (
	"log/slog"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	List    ListConfig    `mapstructure:"list"`
	Profile ProfileConfig `mapstructure:"profile"`
	Log     LogConfig     `mapstructure:"log"`
}

// StoreConfig selects and locates the storage backend.
type StoreConfig struct {
	Adapter string `mapstructure:"adapter" validate:"required,oneof=memory fs sqlite"`
	// Path is the store root (fs) or database file or directory (sqlite).
	// Empty means the discovered or default location.
	Path string `mapstructure:"path"`
	Seed bool   `mapstructure:"seed"`
}

// ListConfig holds the defaults of the note list.
type ListConfig struct {
	Sort         string `mapstructure:"sort" validate:"oneof=date-desc date-asc title-asc title-desc"`
	LoadSort     string `mapstructure:"load_sort" validate:"oneof=date-desc date-asc title-asc title-desc"`
	ShowArchived bool   `mapstructure:"show_archived"`
}

// ProfileConfig is the identity shown on the profile.
type ProfileConfig struct {
	DisplayName string `mapstructure:"display_name" validate:"required"`
	Email       string `mapstructure:"email" validate:"omitempty,email"`
	JoinedAt    string `mapstructure:"joined_at" validate:"omitempty,datetime=2006-01-02"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// Joined returns JoinedAt as a date, or the zero time when unset.
func (p ProfileConfig) Joined() time.Time {
	t, err := time.Parse(time.DateOnly, p.JoinedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SlogLevel maps Level to a slog level.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
