// Package config provides configuration management for timelapse with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (TIMELAPSE_* prefix)
//  3. Project config (.timelapse/config.yaml)
//  4. Global config (~/.timelapse/config.yaml)
//  5. Built-in defaults
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for timelapse.
type Config struct {
	// Playback contains settings for the virtual clock.
	Playback PlaybackConfig `yaml:"playback" mapstructure:"playback"`

	// History contains settings for the edit history.
	History HistoryConfig `yaml:"history" mapstructure:"history"`

	// Keys contains keyboard shortcut overrides.
	Keys KeysConfig `yaml:"keys" mapstructure:"keys"`

	// UI contains display settings.
	UI UIConfig `yaml:"ui" mapstructure:"ui"`
}

// PlaybackConfig contains settings for the virtual clock.
type PlaybackConfig struct {
	// DefaultSpeed is the initial speed multiplier (1, 10, 30, 60 or 120).
	// Default: 1
	DefaultSpeed int `yaml:"default_speed" mapstructure:"default_speed"`

	// TickInterval is how often real time is sampled while playing.
	// Default: 50ms
	TickInterval time.Duration `yaml:"tick_interval" mapstructure:"tick_interval"`

	// SeedSeconds is the elapsed value a new session starts from.
	// Reset always returns to zero regardless of this value.
	// Default: 0
	SeedSeconds int64 `yaml:"seed_seconds" mapstructure:"seed_seconds"`
}

// HistoryConfig contains settings for the edit history.
type HistoryConfig struct {
	// Capacity bounds the number of retained snapshots.
	// Default: 50
	Capacity int `yaml:"capacity" mapstructure:"capacity"`

	// ShortcutsEnabled turns the undo/redo chords on or off.
	// Default: true
	ShortcutsEnabled bool `yaml:"shortcuts_enabled" mapstructure:"shortcuts_enabled"`
}

// KeysConfig overrides the platform undo/redo chords.
// Empty lists keep the platform defaults.
type KeysConfig struct {
	Undo []string `yaml:"undo" mapstructure:"undo"`
	Redo []string `yaml:"redo" mapstructure:"redo"`
}

// UIConfig contains display settings.
type UIConfig struct {
	// NoColor disables colour output, like the NO_COLOR environment variable.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
}
