package shortcut

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chord is a test key event.
type chord string

func (c chord) String() string { return string(c) }

type counter struct {
	undo, redo, toggle int
}

func newTestDispatcher(focus FocusFunc, goos string) (*Dispatcher, *counter) {
	km := DefaultKeyMap(goos, nil, nil)
	c := &counter{}
	d := NewDispatcher(focus)
	d.Group(GroupHistory).
		Bind(km.Undo, func() { c.undo++ }).
		Bind(km.Redo, func() { c.redo++ })
	d.Group(GroupPlayback).
		Bind(km.Toggle, func() { c.toggle++ })
	return d, c
}

func TestDispatch_LinuxChords(t *testing.T) {
	t.Parallel()

	d, c := newTestDispatcher(nil, "linux")

	assert.True(t, d.Dispatch(tea.KeyMsg{Type: tea.KeyCtrlZ}))
	assert.True(t, d.Dispatch(tea.KeyMsg{Type: tea.KeyCtrlY}))
	assert.False(t, d.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}, Alt: true}))

	assert.Equal(t, 1, c.undo)
	assert.Equal(t, 1, c.redo)
}

func TestDispatch_DarwinChords(t *testing.T) {
	t.Parallel()

	d, c := newTestDispatcher(nil, "darwin")

	assert.True(t, d.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}, Alt: true}))
	assert.True(t, d.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Z'}, Alt: true}))
	assert.True(t, d.Dispatch(tea.KeyMsg{Type: tea.KeyCtrlZ}), "ctrl fallback still works")

	assert.Equal(t, 2, c.undo)
	assert.Equal(t, 1, c.redo)
}

func TestDispatch_SuppressedWhileEditing(t *testing.T) {
	t.Parallel()

	editing := true
	d, c := newTestDispatcher(func() bool { return editing }, "linux")

	assert.True(t, d.Suppressed())
	assert.False(t, d.Dispatch(chord("ctrl+z")))
	assert.False(t, d.Dispatch(chord(" ")))
	assert.Equal(t, counter{}, *c, "no shortcut fires while a text field has focus")

	editing = false
	assert.True(t, d.Dispatch(chord("ctrl+z")))
	assert.Equal(t, 1, c.undo)
}

func TestDispatch_DisabledGroup(t *testing.T) {
	t.Parallel()

	d, c := newTestDispatcher(nil, "linux")
	d.Group(GroupHistory).SetEnabled(false)

	assert.False(t, d.Dispatch(chord("ctrl+z")))
	assert.True(t, d.Dispatch(chord(" ")), "other groups stay live")

	assert.Equal(t, 0, c.undo)
	assert.Equal(t, 1, c.toggle)
}

func TestDispatch_UnboundChord(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(nil, "linux")

	assert.False(t, d.Dispatch(chord("ctrl+q")))
	assert.False(t, d.Dispatch(nil))
}

func TestDispatch_FirstMatchWins(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	var order []string
	b := key.NewBinding(key.WithKeys("x"))
	d.Group("a").Bind(b, func() { order = append(order, "a") })
	d.Group("b").Bind(b, func() { order = append(order, "b") })

	d.Dispatch(chord("x"))

	assert.Equal(t, []string{"a"}, order)
}

func TestGroup_ReturnsExisting(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	g := d.Group(GroupHistory)

	assert.Same(t, g, d.Group(GroupHistory))
	assert.Equal(t, GroupHistory, g.Name())
	assert.True(t, g.Enabled())
}

func TestDefaultKeyMap_Overrides(t *testing.T) {
	t.Parallel()

	km := DefaultKeyMap("linux", []string{"u"}, []string{"U"})

	assert.Equal(t, []string{"u"}, km.Undo.Keys())
	assert.Equal(t, []string{"U"}, km.Redo.Keys())
	assert.Equal(t, "u", km.Undo.Help().Key)
}

func TestPlatformKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"ctrl+z"}, UndoKeys("linux"))
	assert.Equal(t, []string{"ctrl+y"}, RedoKeys("windows"))
	assert.Equal(t, []string{"alt+z", "ctrl+z"}, UndoKeys("darwin"))
	assert.Equal(t, []string{"alt+Z", "ctrl+y"}, RedoKeys("darwin"))
}

func TestHelp_HidesDisabledGroups(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(nil, "linux")
	require.Len(t, d.ShortHelp(), 3)
	require.Len(t, d.FullHelp(), 2)

	d.Group(GroupHistory).SetEnabled(false)

	assert.Len(t, d.ShortHelp(), 1)
	assert.Len(t, d.FullHelp(), 1)
}

func TestGroupBindings_DisabledCopies(t *testing.T) {
	t.Parallel()

	d, _ := newTestDispatcher(nil, "linux")
	g := d.Group(GroupHistory)
	g.SetEnabled(false)

	for _, b := range g.Bindings() {
		assert.False(t, b.Enabled())
	}

	g.SetEnabled(true)
	for _, b := range g.Bindings() {
		assert.True(t, b.Enabled())
	}
}

func TestBindChord_ReceivesMatchingChord(t *testing.T) {
	t.Parallel()

	km := DefaultKeyMap("linux", nil, nil)
	var got []string
	d := NewDispatcher(nil)
	d.Group(GroupPlayback).BindChord(km.SpeedPreset, func(c string) { got = append(got, c) })

	assert.True(t, d.Dispatch(chord("3")))
	assert.True(t, d.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}}))
	assert.False(t, d.Dispatch(chord("6")))

	assert.Equal(t, []string{"3", "5"}, got)
}
