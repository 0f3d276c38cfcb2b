package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/timelapse/internal/constants"
)

// DefaultConfig returns a new Config with default values.
// These match the viper defaults registered by setDefaults.
func DefaultConfig() *Config {
	return &Config{
		Playback: PlaybackConfig{
			DefaultSpeed: constants.DefaultSpeed,
			TickInterval: constants.DefaultTickInterval,
			SeedSeconds:  0,
		},
		History: HistoryConfig{
			Capacity:         constants.DefaultHistoryCapacity,
			ShortcutsEnabled: true,
		},
		Keys: KeysConfig{Undo: []string{}, Redo: []string{}},
		UI:   UIConfig{},
	}
}

// setDefaults configures all default values on the Viper instance.
// IMPORTANT: Keys must match the mapstructure tag names exactly.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("playback.default_speed", d.Playback.DefaultSpeed)
	v.SetDefault("playback.tick_interval", d.Playback.TickInterval.String())
	v.SetDefault("playback.seed_seconds", d.Playback.SeedSeconds)

	v.SetDefault("history.capacity", d.History.Capacity)
	v.SetDefault("history.shortcuts_enabled", d.History.ShortcutsEnabled)

	v.SetDefault("keys.undo", d.Keys.Undo)
	v.SetDefault("keys.redo", d.Keys.Redo)

	v.SetDefault("ui.no_color", d.UI.NoColor)
}
