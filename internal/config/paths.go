package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/timelapse/internal/constants"
	"github.com/mrz1836/timelapse/internal/errors"
)

// HomeDir returns the timelapse home directory.
// TIMELAPSE_HOME overrides the default of ~/.timelapse.
func HomeDir() (string, error) {
	if dir := os.Getenv(constants.HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AppHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
func ProjectConfigPath() string {
	return filepath.Join(constants.AppHome, constants.ConfigFileName)
}

// LogFilePath returns the path to the rotating CLI log file.
func LogFilePath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir, constants.CLILogFileName), nil
}
