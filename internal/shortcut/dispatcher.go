// Package shortcut routes keyboard chords to actions.
//
// A single Dispatcher services every subsystem. Bindings are grouped per
// subsystem so each group can be switched off on its own, and the whole
// dispatcher stands down while an editable text field has focus so native
// text editing is never shadowed.
//
// Dispatch accepts any fmt.Stringer that renders as a chord ("ctrl+z", " ",
// "alt+Z"). In the player that is a bubbletea KeyMsg; tests pass plain values.
package shortcut

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/rs/zerolog"
)

// FocusFunc reports whether an editable text field currently has focus.
type FocusFunc func() bool

// Action is run when a bound chord is dispatched.
type Action func()

// ChordAction is run with the chord that matched, for bindings that cover
// several keys with one meaning ("1" through "5").
type ChordAction func(chord string)

type entry struct {
	binding key.Binding
	run     ChordAction
}

// Group is a named, independently enabled set of bindings.
type Group struct {
	name     string
	enabled  bool
	bindings []entry
}

// Name returns the group's name.
func (g *Group) Name() string { return g.name }

// Enabled reports whether the group's bindings are live.
func (g *Group) Enabled() bool { return g.enabled }

// SetEnabled switches the whole group on or off.
func (g *Group) SetEnabled(enabled bool) { g.enabled = enabled }

// Bind adds a binding to the group. Bindings are matched in the order added.
func (g *Group) Bind(b key.Binding, run Action) *Group {
	return g.BindChord(b, func(string) { run() })
}

// BindChord adds a binding whose action receives the matching chord.
func (g *Group) BindChord(b key.Binding, run ChordAction) *Group {
	g.bindings = append(g.bindings, entry{binding: b, run: run})
	return g
}

// Bindings returns the group's bindings for help rendering. When the group is
// disabled the copies are disabled too, so help hides them.
func (g *Group) Bindings() []key.Binding {
	out := make([]key.Binding, 0, len(g.bindings))
	for _, e := range g.bindings {
		b := e.binding
		if !g.enabled {
			b.SetEnabled(false)
		}
		out = append(out, b)
	}
	return out
}

// Dispatcher maps chords to actions across groups.
type Dispatcher struct {
	groups []*Group
	focus  FocusFunc
	logger zerolog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used to trace dispatched chords.
func WithLogger(logger zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger.With().Str("component", "shortcut").Logger()
	}
}

// NewDispatcher creates a dispatcher. focus may be nil when the host has no
// editable fields.
func NewDispatcher(focus FocusFunc, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		focus:  focus,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Group returns the named group, creating an enabled one on first use.
func (d *Dispatcher) Group(name string) *Group {
	for _, g := range d.groups {
		if g.name == name {
			return g
		}
	}
	g := &Group{name: name, enabled: true}
	d.groups = append(d.groups, g)
	return g
}

// Suppressed reports whether dispatch is currently held off by text focus.
func (d *Dispatcher) Suppressed() bool {
	return d.focus != nil && d.focus()
}

// Dispatch runs the first enabled binding matching ev and reports whether one
// ran. Nothing runs while an editable field has focus.
func (d *Dispatcher) Dispatch(ev fmt.Stringer) bool {
	if ev == nil || d.Suppressed() {
		return false
	}
	for _, g := range d.groups {
		if !g.enabled {
			continue
		}
		for _, e := range g.bindings {
			if key.Matches(ev, e.binding) {
				d.logger.Debug().
					Str("group", g.name).
					Str("chord", ev.String()).
					Msg("shortcut dispatched")
				e.run(ev.String())
				return true
			}
		}
	}
	return false
}
