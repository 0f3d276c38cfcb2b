package shortcut

import "github.com/charmbracelet/bubbles/key"

// Group names used by the player.
const (
	GroupHistory  = "history"
	GroupPlayback = "playback"
	GroupCourse   = "course"
	GroupApp      = "app"
)

// KeyMap holds the player's bindings.
type KeyMap struct {
	Undo key.Binding
	Redo key.Binding

	Toggle      key.Binding
	Faster      key.Binding
	Slower      key.Binding
	Reset       key.Binding
	SpeedPreset key.Binding

	Next      key.Binding
	Prev      key.Binding
	PaceUp    key.Binding
	PaceDown  key.Binding
	EditTitle key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the bindings for goos. Non-empty undo or redo lists
// replace the platform chords.
func DefaultKeyMap(goos string, undo, redo []string) KeyMap {
	if len(undo) == 0 {
		undo = UndoKeys(goos)
	}
	if len(redo) == 0 {
		redo = RedoKeys(goos)
	}

	return KeyMap{
		Undo: key.NewBinding(key.WithKeys(undo...), key.WithHelp(helpLabel(undo), "undo")),
		Redo: key.NewBinding(key.WithKeys(redo...), key.WithHelp(helpLabel(redo), "redo")),

		Toggle:      key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/pause")),
		Faster:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:      key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		SpeedPreset: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "speed")),

		Next:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "next")),
		Prev:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "prev")),
		PaceUp:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "slower pace")),
		PaceDown:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "faster pace")),
		EditTitle: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap using the enabled groups' bindings.
func (d *Dispatcher) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, g := range d.groups {
		if g.enabled {
			out = append(out, g.Bindings()...)
		}
	}
	return out
}

// FullHelp implements help.KeyMap with one column per group.
func (d *Dispatcher) FullHelp() [][]key.Binding {
	out := make([][]key.Binding, 0, len(d.groups))
	for _, g := range d.groups {
		if g.enabled {
			out = append(out, g.Bindings())
		}
	}
	return out
}
