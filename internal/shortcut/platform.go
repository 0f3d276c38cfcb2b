package shortcut

// Undo and redo chords per platform. Terminals on macOS deliver Option
// chords as alt; Cmd never reaches the application.
const (
	goosDarwin = "darwin"

	chordCtrlZ     = "ctrl+z"
	chordCtrlY     = "ctrl+y"
	chordAltZ      = "alt+z"
	chordAltShiftZ = "alt+Z"
)

// UndoKeys returns the default undo chords for goos.
func UndoKeys(goos string) []string {
	if goos == goosDarwin {
		return []string{chordAltZ, chordCtrlZ}
	}
	return []string{chordCtrlZ}
}

// RedoKeys returns the default redo chords for goos.
func RedoKeys(goos string) []string {
	if goos == goosDarwin {
		return []string{chordAltShiftZ, chordCtrlY}
	}
	return []string{chordCtrlY}
}

// helpLabel renders the first chord of keys in a compact form.
func helpLabel(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	switch keys[0] {
	case chordAltZ:
		return "⌥z"
	case chordAltShiftZ:
		return "⌥⇧z"
	case " ":
		return "space"
	default:
		return keys[0]
	}
}
