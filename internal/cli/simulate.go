package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/timelapse/internal/config"
	"github.com/mrz1836/timelapse/internal/constants"
	"github.com/mrz1836/timelapse/internal/course"
	"github.com/mrz1836/timelapse/internal/errors"
	"github.com/mrz1836/timelapse/internal/simclock"
	"github.com/mrz1836/timelapse/internal/tui"
)

type simulateOptions struct {
	playbackFlags
	step time.Duration
	max  time.Duration
}

// AddSimulateCommand adds the simulate command to the root command.
func AddSimulateCommand(root *cobra.Command) {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate [course.yaml]",
		Short: "Play a course headlessly and print every clock change",
		Long: `Run the virtual clock without a terminal UI or wall-clock waiting.

Each step feeds the clock a fixed amount of real time (--step), scaled by
the speed multiplier. One line is printed per new elapsed second value until
every participant has finished or --max simulated time has passed.

Examples:
  timelapse simulate harbour-loop.yaml --speed 120
  timelapse simulate harbour-loop.yaml --step 1s -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), cmd, args, opts, cmd.OutOrStdout())
		},
	}
	addPlaybackFlags(cmd, &opts.playbackFlags)
	cmd.Flags().DurationVar(&opts.step, "step", constants.DefaultSimulateStep, "real time fed to the clock per step")
	cmd.Flags().DurationVar(&opts.max, "max", constants.DefaultSimulateMax, "stop after this much simulated time")
	root.AddCommand(cmd)
}

func runSimulate(ctx context.Context, cmd *cobra.Command, args []string, opts *simulateOptions, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := GetLogger()

	if opts.step <= 0 {
		return errors.Wrapf(errors.ErrValueOutOfRange, "--step must be positive, got %s", opts.step)
	}
	if opts.max <= 0 {
		return errors.Wrapf(errors.ErrValueOutOfRange, "--max must be positive, got %s", opts.max)
	}

	c, err := loadCourse(args, opts.code)
	if err != nil {
		return err
	}
	overrides, err := opts.overrides(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.LoadWithOverrides(ctx, overrides)
	if err != nil {
		return err
	}

	var out frameWriter = textFrameWriter{w: w}
	if cmd.Flag("output").Value.String() == OutputJSON {
		out = jsonFrameWriter{enc: json.NewEncoder(w)}
	}

	sim := simulation{
		speed:  simclock.Speed(cfg.Playback.DefaultSpeed),
		seed:   cfg.Playback.SeedSeconds,
		step:   opts.step,
		max:    opts.max,
		logger: logger,
	}
	summary, err := sim.run(ctx, c, out.frame)
	if err != nil {
		return err
	}
	return out.summary(summary)
}

// simulation is one headless playback of a course.
type simulation struct {
	speed  simclock.Speed
	seed   int64
	step   time.Duration
	max    time.Duration
	logger zerolog.Logger
}

// Frame is the course state at one clock notification.
type Frame struct {
	Type         string          `json:"type"`
	Elapsed      int64           `json:"elapsed"`
	Clock        string          `json:"clock"`
	Finished     bool            `json:"finished"`
	Participants []FrameEntrant `json:"participants"`
}

// FrameEntrant is one participant's position in a Frame.
type FrameEntrant struct {
	Name     string  `json:"name"`
	Meters   int     `json:"meters"`
	Lap      int     `json:"lap"`
	Fraction float64 `json:"fraction"`
	Started  bool    `json:"started"`
	Finished bool    `json:"finished"`
}

// Summary describes how a headless run ended.
type Summary struct {
	Type          string `json:"type"`
	Elapsed       int64  `json:"elapsed"`
	Clock         string `json:"clock"`
	Finished      bool   `json:"finished"`
	Notifications int    `json:"notifications"`
	Steps         int    `json:"steps"`
}

func newFrame(c course.Course, elapsed int64) Frame {
	positions := c.Progress(elapsed)
	entrants := make([]FrameEntrant, 0, len(positions))
	for _, p := range positions {
		entrants = append(entrants, FrameEntrant{
			Name:     p.Name,
			Meters:   p.Meters,
			Lap:      p.Lap,
			Fraction: p.Fraction,
			Started:  p.Started,
			Finished: p.Finished,
		})
	}
	return Frame{
		Type:         "tick",
		Elapsed:      elapsed,
		Clock:        tui.FormatClock(elapsed),
		Finished:     c.Finished(elapsed),
		Participants: entrants,
	}
}

// run drives a clock with a manual scheduler until the course finishes or
// max simulated time is reached. The run ends at the first step at or
// beyond max. emit is called once per clock notification.
func (s simulation) run(ctx context.Context, c course.Course, emit func(Frame) error) (Summary, error) {
	sched := simclock.NewManualScheduler()

	var (
		clk      *simclock.Clock
		emitErr  error
		notified int
	)
	clk = simclock.New(
		simclock.WithSeed(s.seed),
		simclock.WithSpeed(s.speed),
		simclock.WithScheduler(sched),
		simclock.WithLogger(s.logger),
		simclock.WithNotify(func(elapsed int64) {
			notified++
			if emitErr == nil {
				emitErr = emit(newFrame(c, elapsed))
			}
			if c.Finished(elapsed) {
				clk.SetStopped(true)
			}
		}),
	)
	defer clk.Dispose()

	clk.SetStopped(c.Finished(clk.Elapsed()))
	clk.Start()

	limit := int64(s.max / time.Second)
	steps := 0
	for clk.Running() && clk.Elapsed() < limit {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		sched.Fire(s.step)
		steps++
		if emitErr != nil {
			return Summary{}, errors.Wrap(emitErr, "failed to write frame")
		}
	}

	elapsed := clk.Elapsed()
	s.logger.Debug().
		Int64("elapsed", elapsed).
		Int("steps", steps).
		Int("notifications", notified).
		Msg("simulation finished")

	return Summary{
		Type:          "summary",
		Elapsed:       elapsed,
		Clock:         tui.FormatClock(elapsed),
		Finished:      c.Finished(elapsed),
		Notifications: notified,
		Steps:         steps,
	}, nil
}

type frameWriter interface {
	frame(Frame) error
	summary(Summary) error
}

type textFrameWriter struct {
	w io.Writer
}

func (t textFrameWriter) frame(f Frame) error {
	parts := make([]string, 0, len(f.Participants))
	for _, p := range f.Participants {
		switch {
		case p.Finished:
			parts = append(parts, p.Name+" finished")
		case !p.Started:
			parts = append(parts, p.Name+" waiting")
		default:
			parts = append(parts, fmt.Sprintf("%s %s (lap %d)", p.Name, tui.FormatDistance(p.Meters), p.Lap))
		}
	}
	_, err := fmt.Fprintf(t.w, "%s  %s\n", f.Clock, strings.Join(parts, "  "))
	return err
}

func (t textFrameWriter) summary(s Summary) error {
	state := "stopped at limit"
	if s.Finished {
		state = "finished"
	}
	_, err := fmt.Fprintf(t.w, "%s at %s after %d steps\n", state, s.Clock, s.Steps)
	return err
}

type jsonFrameWriter struct {
	enc *json.Encoder
}

func (j jsonFrameWriter) frame(f Frame) error {
	return j.enc.Encode(f)
}

func (j jsonFrameWriter) summary(s Summary) error {
	return j.enc.Encode(s)
}
