package srcls

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := lister.List(ctx, root)
//	if errors.Is(err, srcls.ErrTraversal) {
//	    // A directory could not be read
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTraversal indicates the directory walk hit an I/O error.
	ErrTraversal = errors.New("traversal failed")

	// ErrUsage indicates the command line was malformed.
	ErrUsage = errors.New("usage error")
)

// TraversalError records a filesystem error hit while walking a tree.
// It matches ErrTraversal and unwraps to the underlying cause.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }

// Is reports whether target is ErrTraversal.
func (e *TraversalError) Is(target error) bool {
	return target == ErrTraversal
}

// usagePatterns are the error prefixes cobra produces for bad invocations.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts at most",
	"accepts 1 arg",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrTraversal):
		return ExitTraversalError
	}

	errStr := err.Error()
	for _, p := range usagePatterns {
		if strings.Contains(errStr, p) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
