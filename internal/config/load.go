package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/timelapse/internal/constants"
	"github.com/mrz1836/timelapse/internal/errors"
)

// newViperInstance creates a Viper instance with the TIMELAPSE_ env prefix,
// key replacer, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// viperDecoderOption decodes duration strings such as "50ms".
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}

// unmarshalAndValidate unmarshals viper config into Config and validates it.
func unmarshalAndValidate(ctx context.Context, v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Int("playback.default_speed", cfg.Playback.DefaultSpeed).
		Dur("playback.tick_interval", cfg.Playback.TickInterval).
		Int("history.capacity", cfg.History.Capacity).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Missing config files are not an error.
func Load(ctx context.Context) (*Config, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		// Home directory unavailable: project config and env still apply.
		globalPath = ""
	}
	return LoadFromPaths(ctx, ProjectConfigPath(), globalPath)
}

// LoadFromPaths loads configuration from specific file paths.
// projectConfigPath has higher priority than globalConfigPath; either may be
// empty to skip that level.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if err := readConfigFile(v, globalConfigPath, false); err != nil {
		return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
	}
	if err := readConfigFile(v, projectConfigPath, true); err != nil {
		return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
	}

	return unmarshalAndValidate(ctx, v)
}

// readConfigFile reads (or merges) one config file, skipping missing files.
func readConfigFile(v *viper.Viper, path string, merge bool) error {
	if path == "" || !fileExists(path) {
		return nil
	}
	v.SetConfigFile(path)

	var err error
	if merge {
		err = v.MergeInConfig()
	} else {
		err = v.ReadInConfig()
	}
	if err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Overrides carries CLI flag values. Nil fields are left alone.
type Overrides struct {
	Speed       *int
	SeedSeconds *int64
	NoColor     *bool
}

// LoadWithOverrides loads configuration and applies CLI flag overrides,
// which have the highest precedence.
func LoadWithOverrides(ctx context.Context, overrides Overrides) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}
	return applyOverrides(cfg, overrides)
}

// applyOverrides applies non-nil overrides and re-validates.
func applyOverrides(cfg *Config, o Overrides) (*Config, error) {
	if o.Speed != nil {
		cfg.Playback.DefaultSpeed = *o.Speed
	}
	if o.SeedSeconds != nil {
		cfg.Playback.SeedSeconds = *o.SeedSeconds
	}
	if o.NoColor != nil {
		cfg.UI.NoColor = *o.NoColor
	}
	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}
	return cfg, nil
}
