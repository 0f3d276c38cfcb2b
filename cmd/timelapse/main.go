// Package main provides the entry point for the timelapse CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mrz1836/timelapse/internal/cli"
	"github.com/mrz1836/timelapse/internal/errors"
	"github.com/mrz1836/timelapse/internal/signal"
)

// Set at build time via ldflags.
var (
	version = "" //nolint:gochecknoglobals // ldflags target
	commit  = "" //nolint:gochecknoglobals // ldflags target
	date    = "" //nolint:gochecknoglobals // ldflags target
)

func main() {
	os.Exit(run())
}

func run() int {
	h := signal.NewHandler(context.Background())
	defer h.Stop()

	err := cli.Execute(h.Context(), cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err != nil {
		message, action := errors.Actionable(err)
		_, _ = fmt.Fprintln(os.Stderr, "Error:", message)
		if action != "" {
			_, _ = fmt.Fprintln(os.Stderr, action)
		}
	}
	return cli.ExitCodeForError(err)
}
