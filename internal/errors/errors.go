// Package errors provides centralized error handling for timelapse.
//
// This package defines sentinel errors used for programmatic error categorization
// at the config, course and CLI boundaries. The playback clock and the edit
// history never return errors; their operations are total.
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidPlayback indicates an invalid playback configuration value.
	ErrConfigInvalidPlayback = errors.New("invalid playback configuration")

	// ErrConfigInvalidHistory indicates an invalid history configuration value.
	ErrConfigInvalidHistory = errors.New("invalid history configuration")

	// ErrConfigInvalidKeys indicates an invalid keyboard shortcut configuration.
	ErrConfigInvalidKeys = errors.New("invalid keys configuration")

	// ErrInvalidSpeed indicates a speed multiplier outside the supported set.
	ErrInvalidSpeed = errors.New("invalid speed multiplier")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidCourseData indicates a course file or share code could not be
	// decoded or failed validation.
	ErrInvalidCourseData = errors.New("invalid course data")

	// ErrCourseNotFound indicates the course file does not exist.
	ErrCourseNotFound = errors.New("course file not found")

	// ErrCourseSourceRequired indicates neither a course file nor a share code was given.
	ErrCourseSourceRequired = errors.New("course file or share code required")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrNotInteractive indicates the player was started without a terminal.
	ErrNotInteractive = errors.New("interactive terminal required")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}

// Is reports whether any error in err's chain matches target.
// It re-exports the standard library function so callers only import one errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
