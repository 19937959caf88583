// internal/errors/errors.go

// Package errors classifies run failures for CLI reporting. Only input
// validation aborts a run; everything network- or parse-related degrades
// into fewer records and is reported through logs instead.
package errors

import (
	"errors"
	"strings"
)

// ValidationError aggregates every input problem found in one pass, so the
// user sees all of them at once instead of fixing one per invocation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid inputs: " + strings.Join(e.Problems, "; ")
}

// NewValidation creates a ValidationError from the collected problems.
func NewValidation(problems []string) *ValidationError {
	return &ValidationError{Problems: problems}
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// ExitCode maps an error to the process exit code. Validation failures and
// unexpected top-level errors both exit non-zero; success is zero.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
