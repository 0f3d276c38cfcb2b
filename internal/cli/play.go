package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrz1836/timelapse/internal/clock"
	"github.com/mrz1836/timelapse/internal/config"
	"github.com/mrz1836/timelapse/internal/errors"
	"github.com/mrz1836/timelapse/internal/simclock"
	"github.com/mrz1836/timelapse/internal/tui"
)

const playCommandName = "play"

// AddPlayCommand adds the play command to the root command.
func AddPlayCommand(root *cobra.Command) {
	flags := &playbackFlags{}
	cmd := &cobra.Command{
		Use:   playCommandName + " [course.yaml]",
		Short: "Play a course in the terminal",
		Long: `Open the interactive player for a course file or share code.

Keys:
  space/p   play or pause        +/-   faster/slower     1-5   pick a speed
  r         reset to 0:00:00     j/k   select            [/]   pace -/+5 s/km
  e         edit the title       ?     all keys          q     quit
  undo/redo ctrl+z / ctrl+y (option+z / option+shift+z on macOS)

Examples:
  timelapse play harbour-loop.yaml
  timelapse play harbour-loop.yaml --speed 60
  timelapse play harbour-loop.yaml --no-color
  timelapse play --code tl1.eyJuIjoiSGFyYm91ciBMb29wIi...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), cmd, args, flags)
		},
	}
	addPlaybackFlags(cmd, flags)
	addColorFlag(cmd, flags)
	root.AddCommand(cmd)
}

func runPlay(ctx context.Context, cmd *cobra.Command, args []string, flags *playbackFlags) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := GetLogger()

	c, err := loadCourse(args, flags.code)
	if err != nil {
		return err
	}
	overrides, err := flags.overrides(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.LoadWithOverrides(ctx, overrides)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.ErrNotInteractive
	}
	tui.CheckNoColor(cfg.UI.NoColor)

	pcfg := playerConfig(cfg)
	pcfg.Scheduler = simclock.NewTickerScheduler(clock.RealClock{}, cfg.Playback.TickInterval)

	model := tui.NewPlayerModel(logger.WithContext(ctx), c, pcfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.Attach(p.Send)
	defer model.Clock().Dispose()

	logger.Info().
		Str("course", c.Name).
		Int("participants", len(c.Participants)).
		Stringer("speed", pcfg.Speed).
		Dur("tick_interval", cfg.Playback.TickInterval).
		Msg("player started")

	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "player failed")
	}

	elapsed := model.Clock().Elapsed()
	logger.Info().Int64("elapsed", elapsed).Bool("finished", model.Finished()).Msg("player closed")
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: stopped at %s\n", model.Course().Name, tui.FormatClock(elapsed))
	return nil
}
