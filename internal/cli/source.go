package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mrz1836/timelapse/internal/config"
	"github.com/mrz1836/timelapse/internal/course"
	"github.com/mrz1836/timelapse/internal/errors"
	"github.com/mrz1836/timelapse/internal/simclock"
	"github.com/mrz1836/timelapse/internal/tui"
)

// playbackFlags are the clock flags shared by play and simulate.
type playbackFlags struct {
	code    string
	speed   string
	seed    int64
	noColor bool
}

func addPlaybackFlags(cmd *cobra.Command, f *playbackFlags) {
	cmd.Flags().StringVar(&f.code, "code", "", "load the course from a share code instead of a file")
	cmd.Flags().StringVar(&f.speed, "speed", "", "initial speed: 1, 10, 30, 60 or 120 (overrides playback.default_speed)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "elapsed seconds to start from (overrides playback.seed_seconds)")
}

// addColorFlag registers --no-color on commands that draw styled output.
func addColorFlag(cmd *cobra.Command, f *playbackFlags) {
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable colour output (overrides ui.no_color)")
}

// loadCourse reads the course from the single path argument or a share code.
func loadCourse(args []string, code string) (course.Course, error) {
	switch {
	case code != "" && len(args) > 0:
		return course.Course{}, errors.NewExitCode2Error(fmt.Errorf("%w: give a course file or --code, not both", errors.ErrCourseSourceRequired))
	case code != "":
		return course.DecodeShare(code)
	case len(args) > 0:
		return course.Load(args[0])
	default:
		return course.Course{}, errors.ErrCourseSourceRequired
	}
}

// overrides converts the playback flags into config overrides. Only flags
// the user actually set take part.
func (f *playbackFlags) overrides(cmd *cobra.Command) (config.Overrides, error) {
	var o config.Overrides
	if f.speed != "" {
		s, err := simclock.ParseSpeed(f.speed)
		if err != nil {
			return o, err
		}
		v := int(s)
		o.Speed = &v
	}
	if cmd.Flags().Changed("seed") {
		if f.seed < 0 {
			return o, errors.Wrapf(errors.ErrValueOutOfRange, "--seed must not be negative, got %d", f.seed)
		}
		seed := f.seed
		o.SeedSeconds = &seed
	}
	if cmd.Flags().Changed("no-color") {
		noColor := f.noColor
		o.NoColor = &noColor
	}
	return o, nil
}

// playerConfig maps loaded configuration onto the player's settings.
func playerConfig(cfg *config.Config) tui.PlayerConfig {
	return tui.PlayerConfig{
		Speed:            simclock.Speed(cfg.Playback.DefaultSpeed),
		SeedSeconds:      cfg.Playback.SeedSeconds,
		HistoryCapacity:  cfg.History.Capacity,
		ShortcutsEnabled: cfg.History.ShortcutsEnabled,
		UndoKeys:         cfg.Keys.Undo,
		RedoKeys:         cfg.Keys.Redo,
		GOOS:             runtime.GOOS,
	}
}
