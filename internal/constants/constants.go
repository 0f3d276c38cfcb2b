// Package constants provides centralized constant values used throughout timelapse.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory and file names used by timelapse.
const (
	// AppHome is the hidden directory name where timelapse stores its config and logs.
	// This directory is created in the user's home directory.
	AppHome = ".timelapse"

	// ConfigFileName is the name of the YAML configuration file.
	ConfigFileName = "config.yaml"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "timelapse.log"

	// EnvPrefix is the prefix for environment variable overrides (TIMELAPSE_*).
	EnvPrefix = "TIMELAPSE"

	// HomeEnvVar overrides the AppHome location.
	HomeEnvVar = "TIMELAPSE_HOME"
)

// Log rotation settings.
const (
	// LogMaxSizeMB is the maximum size of a log file before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of a rotated file.
	LogMaxAgeDays = 14

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)

// Playback defaults.
const (
	// DefaultTickInterval is how often the real-time scheduler samples the system clock.
	DefaultTickInterval = 50 * time.Millisecond

	// MinTickInterval and MaxTickInterval bound the configurable tick interval.
	MinTickInterval = 10 * time.Millisecond
	MaxTickInterval = time.Second

	// DefaultSpeed is the initial speed multiplier.
	DefaultSpeed = 1

	// DefaultSimulateStep is the real-time step used by the headless simulate command.
	DefaultSimulateStep = 250 * time.Millisecond

	// DefaultSimulateMax caps a headless run in simulated time.
	DefaultSimulateMax = 24 * time.Hour
)

// History defaults.
const (
	// DefaultHistoryCapacity is the number of snapshots kept when no bound is configured.
	DefaultHistoryCapacity = 50
)

// Course editing.
const (
	// PaceStepSeconds is the pace adjustment applied by a single edit keypress.
	PaceStepSeconds = 5

	// MinPaceSecondsPerKm is the fastest pace an edit may produce (2:00/km).
	MinPaceSecondsPerKm = 120

	// MaxTitleLength bounds the course title input field.
	MaxTitleLength = 60

	// MaxNameColumn is the widest participant-name column, in terminal cells.
	MaxNameColumn = 20
)

// SpeedMultipliers returns the supported speed multipliers in ascending order.
// The virtual clock's Speed type mirrors this set.
func SpeedMultipliers() []int {
	return []int{1, 10, 30, 60, 120}
}
