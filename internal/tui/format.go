package tui

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/mrz1836/timelapse/internal/constants"
)

// FormatClock renders simulated seconds as H:MM:SS. Negative values render as zero.
func FormatClock(seconds int64) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

// FormatPace renders a pace as M:SS/km.
func FormatPace(secondsPerKm int) string {
	if secondsPerKm <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%02d/km", secondsPerKm/60, secondsPerKm%60)
}

// FormatDistance renders meters, switching to kilometres from 1000 m.
func FormatDistance(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", max(meters, 0))
	}
	return fmt.Sprintf("%.2f km", float64(meters)/1000)
}

// NameColumnWidth returns the cell width needed to align names, capped at
// constants.MaxNameColumn.
func NameColumnWidth(names ...string) int {
	width := 0
	for _, name := range names {
		width = max(width, runewidth.StringWidth(name))
	}
	return min(width, constants.MaxNameColumn)
}

// PadName fits name into width terminal cells, truncating with an ellipsis.
// Wide characters count as two cells.
func PadName(name string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(name, width, "…"), width)
}
