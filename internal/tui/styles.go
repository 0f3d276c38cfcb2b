// Package tui provides the terminal player for timelapse.
//
// Colors use lipgloss AdaptiveColor so the player reads on light and dark
// terminals. Call CheckNoColor before starting a program to honour NO_COLOR,
// TERM=dumb and the ui.no_color setting.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for the clock readout and the selected row.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for finished participants.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for the paused and stopped indicators.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for rejected edits.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for participants waiting on a wave start.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}
)

// PlayerStyles holds the styles used by the player view.
type PlayerStyles struct {
	Title    lipgloss.Style
	Clock    lipgloss.Style
	Speed    lipgloss.Style
	Paused   lipgloss.Style
	Finished lipgloss.Style
	Selected lipgloss.Style
	Row      lipgloss.Style
	Waiting  lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

// NewPlayerStyles creates the player styles. With color disabled every style
// is plain so the view stays readable in a dumb terminal.
func NewPlayerStyles() *PlayerStyles {
	if !HasColorSupport() {
		plain := lipgloss.NewStyle()
		return &PlayerStyles{
			Title:    plain.Bold(true),
			Clock:    plain.Bold(true),
			Speed:    plain,
			Paused:   plain,
			Finished: plain,
			Selected: plain.Bold(true),
			Row:      plain,
			Waiting:  plain,
			Status:   plain,
			Error:    plain,
		}
	}

	return &PlayerStyles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
		Clock: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		Speed: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Paused: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Finished: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		Row: lipgloss.NewStyle(),
		Waiting: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Status: lipgloss.NewStyle().
			Faint(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError),
	}
}

// CheckNoColor drops lipgloss to the ASCII profile when color is unsupported
// or force is set (the ui.no_color setting).
func CheckNoColor(force bool) {
	if force || !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or TERM=dumb.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}
