package cli

import (
	"errors"

	"github.com/yaklabco/msgmark/internal/configloader"
)

// Exit codes for msgmark.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a general failure, or results that disagree
	// under compare --check.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates that some inputs could not be read or written.
	ExitIOError = 74
)

// Sentinel errors returned by commands. Each maps to an exit code.
var (
	// ErrNoInput is returned when parse has no paths, no --text and an
	// interactive stdin.
	ErrNoInput = errors.New("no input: pass paths, --text, or pipe text on stdin")

	// ErrFilesFailed is returned after reporting when some inputs failed.
	ErrFilesFailed = errors.New("some inputs could not be converted")

	// ErrResultsDiffer is returned by compare --check when the results differ.
	ErrResultsDiffer = errors.New("pipeline and reference results differ")
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoInput):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrFilesFailed):
		return ExitIOError
	default:
		return ExitFailure
	}
}

// IsQuiet reports whether err is only an exit status signal whose details
// were already reported, so it need not be logged again.
func IsQuiet(err error) bool {
	return errors.Is(err, ErrResultsDiffer)
}
