package tui

import (
	"github.com/charmbracelet/bubbles/progress"
)

// ProgressBar wraps the bubbles progress bar for static, per-frame rendering
// of a participant's share of the race.
type ProgressBar struct {
	bar   progress.Model
	width int
}

// NewProgressBar creates a progress bar. It uses the primary gradient when
// color is available and a solid fill otherwise.
func NewProgressBar(width int) *ProgressBar {
	var bar progress.Model
	if HasColorSupport() {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithScaledGradient("#0087AF", "#00D7FF"),
			progress.WithoutPercentage(),
		)
	} else {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithSolidFill("#808080"),
			progress.WithoutPercentage(),
		)
	}

	return &ProgressBar{bar: bar, width: width}
}

// Render returns the bar for fraction (0.0-1.0). It never animates; the
// player redraws on every elapsed change.
func (pb *ProgressBar) Render(fraction float64) string {
	return pb.bar.ViewAs(min(max(fraction, 0), 1))
}

// Width returns the current width of the progress bar.
func (pb *ProgressBar) Width() int {
	return pb.width
}

// SetWidth updates the progress bar width. Widths below one are raised to one.
func (pb *ProgressBar) SetWidth(w int) {
	w = max(w, 1)
	pb.width = w
	pb.bar.Width = w
}
