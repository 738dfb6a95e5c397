package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/press/internal/configloader"
	"github.com/yaklabco/press/pkg/fsutil"
	"github.com/yaklabco/press/pkg/runner"
)

// Exit codes for press.
const (
	// ExitSuccess indicates every manuscript compiled.
	ExitSuccess = 0

	// ExitManuscriptErrors indicates at least one manuscript failed to compile.
	ExitManuscriptErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrManuscriptErrors is returned when manuscripts failed to compile. The
// diagnostics have already been reported, so callers only set the exit code.
var ErrManuscriptErrors = errors.New("manuscript errors found")

// errUnreadable is returned when files could not be read but none failed.
var errUnreadable = errors.New("some files could not be read")

// usageError marks errors caused by bad arguments or flags.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// usageArgs wraps a cobra argument validator so its errors map to
// ExitInvalidUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err}
		}
		return nil
	}
}

// configError marks errors from loading or validating configuration.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// ExitCodeFromResult maps a run result to an exit code. Failing manuscripts
// take precedence over unreadable files.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasFailures():
		return ExitManuscriptErrors
	case result.HasErrors():
		return ExitIOError
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		usage *usageError
		cfg   *configError
		verr  *configloader.ValidationError
	)
	switch {
	case errors.Is(err, ErrManuscriptErrors):
		return ExitManuscriptErrors
	case errors.As(err, &usage), strings.HasPrefix(err.Error(), "unknown command"):
		return ExitInvalidUsage
	case errors.As(err, &cfg), errors.As(err, &verr):
		return ExitConfigError
	case errors.Is(err, errUnreadable),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
