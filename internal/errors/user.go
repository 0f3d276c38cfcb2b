package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice (not a map) so lookups walk the error chain with errors.Is().
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	{
		err: ErrInvalidCourseData,
		info: ErrorInfo{
			Message: "The course data is invalid or corrupted.",
			Action:  "Check the course file, or ask for a fresh share code.",
		},
	},
	{
		err: ErrCourseNotFound,
		info: ErrorInfo{
			Message: "The course file could not be found.",
			Action:  "Check the path and try again.",
		},
	},
	{
		err: ErrCourseSourceRequired,
		info: ErrorInfo{
			Message: "No course was given.",
			Action:  "Pass a course file path or use --code with a share code.",
		},
	},
	{
		err: ErrInvalidSpeed,
		info: ErrorInfo{
			Message: "That speed is not supported.",
			Action:  "Use one of 1x, 10x, 30x, 60x or 120x.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Unknown output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrConfigInvalidPlayback,
		info: ErrorInfo{
			Message: "The playback configuration is invalid.",
			Action:  "Fix the playback section of your config.yaml.",
		},
	},
	{
		err: ErrConfigInvalidHistory,
		info: ErrorInfo{
			Message: "The history configuration is invalid.",
			Action:  "Set history.capacity to 1 or more.",
		},
	},
	{
		err: ErrConfigInvalidKeys,
		info: ErrorInfo{
			Message: "The keyboard shortcut configuration is invalid.",
			Action:  "Remove empty entries from keys.undo and keys.redo.",
		},
	},
	{
		err: ErrNotInteractive,
		info: ErrorInfo{
			Message: "The player needs an interactive terminal.",
			Action:  "Run 'timelapse simulate' for headless playback.",
		},
	},
}

// getErrorInfo returns the info for the first sentinel in err's chain.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for err.
// Unknown errors fall back to err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action. The action is empty when there is nothing useful to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
