package tui

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mrz1836/timelapse/internal/constants"
	"github.com/mrz1836/timelapse/internal/course"
	"github.com/mrz1836/timelapse/internal/history"
	"github.com/mrz1836/timelapse/internal/shortcut"
	"github.com/mrz1836/timelapse/internal/simclock"
)

// ElapsedMsg carries a new elapsed value from the virtual clock.
type ElapsedMsg struct {
	Seconds int64
}

// cancelledMsg signals that the player's context was cancelled.
type cancelledMsg struct{}

// Sender delivers a message into a running program. tea.Program.Send
// satisfies it.
type Sender func(tea.Msg)

// PlayerConfig holds configuration for the player.
type PlayerConfig struct {
	// Speed is the initial multiplier.
	Speed simclock.Speed
	// SeedSeconds is the elapsed value the clock starts from.
	SeedSeconds int64
	// HistoryCapacity bounds the edit history.
	HistoryCapacity int
	// ShortcutsEnabled switches the undo/redo chords on.
	ShortcutsEnabled bool
	// UndoKeys and RedoKeys override the platform chords when non-empty.
	UndoKeys []string
	RedoKeys []string
	// GOOS selects the platform chords.
	GOOS string
	// Scheduler drives the clock. Nil uses the real-time ticker.
	Scheduler simclock.Scheduler
}

// DefaultPlayerConfig returns the default player configuration.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Speed:            simclock.Speed(constants.DefaultSpeed),
		HistoryCapacity:  constants.DefaultHistoryCapacity,
		ShortcutsEnabled: true,
		GOOS:             runtime.GOOS,
	}
}

// PlayerModel is the Bubble Tea model for course playback.
// It implements tea.Model interface (Init, Update, View).
type PlayerModel struct {
	// base is the course as loaded; course is base with the current
	// history entry applied.
	base   course.Course
	course course.Course

	clock    *simclock.Clock
	history  *history.Manager[course.Settings]
	keys     shortcut.KeyMap
	dispatch *shortcut.Dispatcher

	input  textinput.Model
	help   help.Model
	styles *PlayerStyles
	bar    *ProgressBar

	selected  int
	finished  bool
	status    string
	statusErr bool
	width     int
	quitting  bool

	// cmd is set by shortcut actions that need to hand a command back to Update.
	cmd tea.Cmd

	sendMu sync.Mutex
	send   Sender

	logger zerolog.Logger
	// baseCtx is stored for use in async Bubble Tea commands.
	baseCtx context.Context //nolint:containedctx // Required for Bubble Tea async commands
}

// NewPlayerModel creates a paused player for c. The logger is taken from ctx.
func NewPlayerModel(ctx context.Context, c course.Course, cfg PlayerConfig) *PlayerModel {
	logger := zerolog.Ctx(ctx).With().Str("component", "player").Logger()

	input := textinput.New()
	input.Prompt = "title: "
	input.CharLimit = constants.MaxTitleLength

	m := &PlayerModel{
		base:    c,
		course:  c,
		history: history.New(c.Settings(), history.WithCapacity[course.Settings](cfg.HistoryCapacity)),
		keys:    shortcut.DefaultKeyMap(cfg.GOOS, cfg.UndoKeys, cfg.RedoKeys),
		input:   input,
		help:    help.New(),
		styles:  NewPlayerStyles(),
		bar:     NewProgressBar(defaultBarWidth),
		width:   80,
		logger:  logger,
		baseCtx: ctx,
	}

	m.clock = simclock.New(
		simclock.WithSeed(cfg.SeedSeconds),
		simclock.WithSpeed(cfg.Speed),
		simclock.WithScheduler(cfg.Scheduler),
		simclock.WithNotify(m.forward),
		simclock.WithLogger(logger),
	)

	m.dispatch = shortcut.NewDispatcher(m.Editing, shortcut.WithLogger(logger))
	m.bindKeys()
	m.dispatch.Group(shortcut.GroupHistory).SetEnabled(cfg.ShortcutsEnabled)

	m.evaluate()
	return m
}

const (
	defaultBarWidth = 30
	minBarWidth     = 10
	maxBarWidth     = 40
	// rowChrome is the room a participant row needs besides its bar.
	rowChrome = 48
)

func (m *PlayerModel) bindKeys() {
	km := m.keys

	m.dispatch.Group(shortcut.GroupHistory).
		Bind(km.Undo, m.undo).
		Bind(km.Redo, m.redo)

	m.dispatch.Group(shortcut.GroupPlayback).
		Bind(km.Toggle, m.toggle).
		Bind(km.Faster, m.clock.IncreaseSpeed).
		Bind(km.Slower, m.clock.DecreaseSpeed).
		BindChord(km.SpeedPreset, m.speedPreset).
		Bind(km.Reset, m.reset)

	m.dispatch.Group(shortcut.GroupCourse).
		Bind(km.Next, func() { m.moveSelection(1) }).
		Bind(km.Prev, func() { m.moveSelection(-1) }).
		Bind(km.PaceUp, func() { m.adjustPace(constants.PaceStepSeconds) }).
		Bind(km.PaceDown, func() { m.adjustPace(-constants.PaceStepSeconds) }).
		Bind(km.EditTitle, m.startEdit)

	m.dispatch.Group(shortcut.GroupApp).
		Bind(km.Help, func() { m.help.ShowAll = !m.help.ShowAll }).
		Bind(km.Quit, func() { m.cmd = m.quit() })
}

// Attach connects the clock's notifications to a running program. Until a
// sender is attached notifications are dropped; the view reads the clock
// directly, so nothing is lost.
func (m *PlayerModel) Attach(send Sender) {
	m.sendMu.Lock()
	defer m.sendMu.Unlock()
	m.send = send
}

// forward runs on the scheduler's goroutine.
func (m *PlayerModel) forward(seconds int64) {
	m.sendMu.Lock()
	send := m.send
	m.sendMu.Unlock()

	if send != nil {
		send(ElapsedMsg{Seconds: seconds})
	}
}

// Clock returns the player's virtual clock.
func (m *PlayerModel) Clock() *simclock.Clock { return m.clock }

// Course returns the course with the current edits applied.
func (m *PlayerModel) Course() course.Course { return m.course }

// History returns the edit history.
func (m *PlayerModel) History() *history.Manager[course.Settings] { return m.history }

// Selected returns the index of the selected participant.
func (m *PlayerModel) Selected() int { return m.selected }

// Editing reports whether the title field has focus.
func (m *PlayerModel) Editing() bool { return m.input.Focused() }

// Finished reports whether every participant has crossed the line.
func (m *PlayerModel) Finished() bool { return m.finished }

// Status returns the last status line message.
func (m *PlayerModel) Status() string { return m.status }

// Init returns the initial command to run when the program starts.
func (m *PlayerModel) Init() tea.Cmd {
	done := m.baseCtx.Done()
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return cancelledMsg{}
	}
}

// Update handles messages and returns the updated model and any commands.
func (m *PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.SetWidth(min(max(msg.Width-rowChrome, minBarWidth), maxBarWidth))
		return m, nil

	case ElapsedMsg:
		m.evaluate()
		return m, nil

	case cancelledMsg:
		return m, m.quit()
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *PlayerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}

	m.cmd = nil
	if m.dispatch.Dispatch(msg) {
		cmd := m.cmd
		m.cmd = nil
		return m, cmd
	}

	if !m.input.Focused() {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEnter:
		m.commitTitle()
		return m, nil
	case tea.KeyEsc:
		m.cancelEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// evaluate asserts the clock's stop signal while the course is complete and
// releases it otherwise.
func (m *PlayerModel) evaluate() {
	elapsed := m.clock.Elapsed()
	done := m.course.Finished(elapsed)
	if done && !m.finished {
		m.logger.Info().Int64("elapsed", elapsed).Str("course", m.course.Name).Msg("course finished")
		m.setStatus("all participants finished, press r to replay")
	}
	m.finished = done
	m.clock.SetStopped(done)
}

func (m *PlayerModel) toggle() {
	if m.finished {
		m.setStatus("all participants finished, press r to replay")
		return
	}
	m.clock.Toggle()
}

func (m *PlayerModel) reset() {
	m.clock.Reset()
	m.evaluate()
	m.setStatus("reset")
}

func (m *PlayerModel) speedPreset(chord string) {
	speeds := simclock.Speeds()
	if len(chord) != 1 {
		return
	}
	i := int(chord[0] - '1')
	if i < 0 || i >= len(speeds) {
		return
	}
	m.clock.SetSpeed(speeds[i])
}

func (m *PlayerModel) moveSelection(step int) {
	n := len(m.course.Participants)
	if n == 0 {
		return
	}
	m.selected = (m.selected + step + n) % n
}

func (m *PlayerModel) adjustPace(delta int) {
	next := m.history.Current().WithPaceDelta(m.selected, delta)
	if !m.history.SetState(next) {
		m.setError("pace unchanged")
		return
	}
	m.applySettings()
	p := m.course.Participants[m.selected]
	m.setStatus(fmt.Sprintf("%s pace %s", p.Name, FormatPace(p.PaceSecondsPerKm)))
}

func (m *PlayerModel) undo() {
	if !m.history.Undo() {
		m.setError("nothing to undo")
		return
	}
	m.applySettings()
	m.setStatus("undo")
}

func (m *PlayerModel) redo() {
	if !m.history.Redo() {
		m.setError("nothing to redo")
		return
	}
	m.applySettings()
	m.setStatus("redo")
}

func (m *PlayerModel) startEdit() {
	m.input.SetValue(m.course.Name)
	m.input.CursorEnd()
	m.cmd = m.input.Focus()
}

func (m *PlayerModel) commitTitle() {
	value := strings.TrimSpace(m.input.Value())
	m.cancelEdit()
	if value == "" {
		m.setError("title unchanged")
		return
	}
	if !m.history.SetState(m.history.Current().WithTitle(value)) {
		m.setStatus("title unchanged")
		return
	}
	m.applySettings()
	m.setStatus("title updated")
}

func (m *PlayerModel) cancelEdit() {
	m.input.Blur()
	m.input.Reset()
}

// applySettings rebuilds the effective course from the current history entry.
func (m *PlayerModel) applySettings() {
	m.course = m.base.Apply(m.history.Current())
	m.logger.Debug().
		Int("history_pointer", m.history.Pointer()).
		Int("history_len", m.history.Len()).
		Msg("settings applied")
	m.evaluate()
}

func (m *PlayerModel) quit() tea.Cmd {
	m.quitting = true
	m.clock.Dispose()
	return tea.Quit
}

func (m *PlayerModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *PlayerModel) setError(s string) {
	m.status = s
	m.statusErr = true
}

// View renders the current state to a string.
func (m *PlayerModel) View() string {
	if m.quitting {
		return ""
	}

	state := m.clock.Snapshot()
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.course.Name))
	b.WriteString("  ")
	b.WriteString(m.styles.Speed.Render(fmt.Sprintf("%s × %d", FormatDistance(m.course.DistanceMeters), m.course.LapCount())))
	b.WriteString("\n")

	b.WriteString(m.indicator(state))
	b.WriteString(" ")
	b.WriteString(m.styles.Clock.Render(FormatClock(state.Elapsed)))
	b.WriteString("  ")
	b.WriteString(m.styles.Speed.Render(state.Speed.String()))
	b.WriteString("\n\n")

	names := make([]string, len(m.course.Participants))
	for i, p := range m.course.Participants {
		names[i] = p.Name
	}
	nameWidth := NameColumnWidth(names...)
	for i, pos := range m.course.Progress(state.Elapsed) {
		b.WriteString(m.renderRow(i, pos, nameWidth, state.Elapsed))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.input.Focused() {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		if m.statusErr {
			b.WriteString(m.styles.Error.Render(m.status))
		} else {
			b.WriteString(m.styles.Status.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.dispatch))

	return b.String()
}

func (m *PlayerModel) indicator(state simclock.State) string {
	switch {
	case m.finished:
		return m.styles.Finished.Render("■ finished")
	case state.Running:
		return m.styles.Clock.Render("▶")
	default:
		return m.styles.Paused.Render("⏸ paused")
	}
}

func (m *PlayerModel) renderRow(i int, pos course.Position, nameWidth int, elapsed int64) string {
	cursor := "  "
	style := m.styles.Row
	if i == m.selected {
		cursor = "> "
		style = m.styles.Selected
	}

	p := m.course.Participants[i]
	name := style.Render(PadName(pos.Name, nameWidth))

	var detail string
	switch {
	case pos.Finished:
		detail = m.styles.Finished.Render("finished " + FormatClock(pos.FinishSeconds))
	case !pos.Started:
		detail = m.styles.Waiting.Render("starts in " + FormatClock(int64(p.StartOffsetSeconds)-elapsed))
	default:
		detail = fmt.Sprintf("lap %d/%d  %s", pos.Lap, m.course.LapCount(), FormatDistance(pos.Meters))
	}

	return fmt.Sprintf("%s%s  %s  %s  %s", cursor, name, m.bar.Render(pos.Fraction), FormatPace(p.PaceSecondsPerKm), detail)
}
