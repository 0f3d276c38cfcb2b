package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/timelapse/internal/constants"
	"github.com/mrz1836/timelapse/internal/errors"
)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitInvalidInput = 2
)

// Values accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// GlobalFlags are the persistent flags on the root command.
type GlobalFlags struct {
	Output  string
	Verbose bool
	// Quiet raises the log level to warn.
	Quiet bool
}

// AddGlobalFlags registers the persistent flags on cmd.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags lets TIMELAPSE_OUTPUT, TIMELAPSE_VERBOSE and TIMELAPSE_QUIET
// stand in for the flags. It works from any subcommand.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	for _, name := range []string{"output", "verbose", "quiet"} {
		if err := v.BindPFlag(name, pf.Lookup(name)); err != nil {
			return err
		}
	}
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	return nil
}

// ValidOutputFormats lists the accepted --output values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat reports whether format is an accepted --output value.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

//nolint:gochecknoglobals // lookup tables
var (
	// usageSentinels map to ExitInvalidInput.
	usageSentinels = []error{
		errors.ErrInvalidOutputFormat,
		errors.ErrInvalidSpeed,
		errors.ErrInvalidCourseData,
		errors.ErrCourseNotFound,
		errors.ErrCourseSourceRequired,
		errors.ErrValueOutOfRange,
	}

	// cobraUsageMessages are fragments of cobra and pflag argument errors,
	// which carry no sentinel.
	cobraUsageMessages = []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
		"accepts ",
		"requires at least",
	}
)

// ExitCodeForError maps err to a process exit code: 0 for nil, 2 when the
// user's input was at fault and 1 otherwise.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case isUsageError(err):
		return ExitInvalidInput
	default:
		return ExitError
	}
}

func isUsageError(err error) bool {
	if errors.IsExitCode2Error(err) {
		return true
	}
	for _, sentinel := range usageSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	msg := err.Error()
	return slices.ContainsFunc(cobraUsageMessages, func(fragment string) bool {
		return strings.Contains(msg, fragment)
	})
}
