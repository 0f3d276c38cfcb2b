package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemanticColors(t *testing.T) {
	t.Parallel()

	for _, c := range []struct {
		name        string
		light, dark string
	}{
		{"primary", ColorPrimary.Light, ColorPrimary.Dark},
		{"success", ColorSuccess.Light, ColorSuccess.Dark},
		{"warning", ColorWarning.Light, ColorWarning.Dark},
		{"error", ColorError.Light, ColorError.Dark},
		{"muted", ColorMuted.Light, ColorMuted.Dark},
	} {
		assert.NotEmpty(t, c.light, c.name)
		assert.NotEmpty(t, c.dark, c.name)
		assert.NotEqual(t, c.light, c.dark, c.name)
	}
}

func TestHasColorSupport(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "")

	// NO_COLOR counts as set even when empty.
	assert.False(t, HasColorSupport())
}

func TestHasColorSupport_DumbTerminal(t *testing.T) {
	t.Setenv("TERM", "dumb")

	assert.False(t, HasColorSupport())
}

func TestNewPlayerStyles_NoColorIsPlain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	styles := NewPlayerStyles()
	require.NotNil(t, styles)

	assert.Equal(t, "60x", styles.Speed.Render("60x"))
	assert.Equal(t, "Ada", styles.Waiting.Render("Ada"))
}
