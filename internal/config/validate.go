package config

import (
	"slices"

	"github.com/mrz1836/timelapse/internal/constants"
	"github.com/mrz1836/timelapse/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - playback.default_speed must be a supported multiplier
//   - playback.tick_interval must be between 10ms and 1s
//   - playback.seed_seconds must not be negative
//   - history.capacity must be at least 1
//   - keys.undo and keys.redo must not contain empty chords
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if err := validatePlaybackConfig(&cfg.Playback); err != nil {
		return err
	}
	if err := validateHistoryConfig(&cfg.History); err != nil {
		return err
	}
	return validateKeysConfig(&cfg.Keys)
}

func validatePlaybackConfig(cfg *PlaybackConfig) error {
	if !slices.Contains(constants.SpeedMultipliers(), cfg.DefaultSpeed) {
		return errors.Wrapf(errors.ErrConfigInvalidPlayback,
			"playback.default_speed must be one of %v, got %d", constants.SpeedMultipliers(), cfg.DefaultSpeed)
	}
	if cfg.TickInterval < constants.MinTickInterval || cfg.TickInterval > constants.MaxTickInterval {
		return errors.Wrapf(errors.ErrConfigInvalidPlayback,
			"playback.tick_interval must be between %s and %s, got %s",
			constants.MinTickInterval, constants.MaxTickInterval, cfg.TickInterval)
	}
	if cfg.SeedSeconds < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidPlayback,
			"playback.seed_seconds must not be negative, got %d", cfg.SeedSeconds)
	}
	return nil
}

func validateHistoryConfig(cfg *HistoryConfig) error {
	if cfg.Capacity < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidHistory,
			"history.capacity must be at least 1, got %d", cfg.Capacity)
	}
	return nil
}

func validateKeysConfig(cfg *KeysConfig) error {
	for name, chords := range map[string][]string{"keys.undo": cfg.Undo, "keys.redo": cfg.Redo} {
		for _, c := range chords {
			if c == "" {
				return errors.Wrapf(errors.ErrConfigInvalidKeys, "%s contains an empty chord", name)
			}
		}
	}
	return nil
}
