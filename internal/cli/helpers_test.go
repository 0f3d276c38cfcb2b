package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const harbourLoopYAML = `name: Harbour Loop
distance_m: 2500
laps: 2
participants:
  - name: Ada
    pace: 240
  - name: Brook
    pace: 300
  - name: Cyd
    pace: 330
    start_offset: 60
`

// isolateHome points config and log files at a temp dir.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("TIMELAPSE_HOME", home)
	return home
}

func writeCourse(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "course.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// executeCmd runs the root command with args and returns stdout.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	CloseLogFile()
	return out.String(), err
}
