// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when no candidate location holds a file.
	// Callers usually fall back to defaults.
	ErrFileNotFound = errors.New("configuration file not found")

	// ErrInvalidPattern is the sentinel wrapped by InvalidPatternError.
	ErrInvalidPattern = errors.New("invalid file-name pattern")

	// ErrPublishEnv wraps a failure to publish the process variables.
	ErrPublishEnv = errors.New("publish environment variables")

	// ErrTraceOutput wraps a failure to write debug trace output.
	ErrTraceOutput = errors.New("write trace output")
)

// InvalidPatternError is returned when a file-name pattern lacks the
// placeholder. It wraps ErrInvalidPattern for errors.Is checks.
type InvalidPatternError struct {
	Pattern string
}

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid file-name pattern %q: missing %q placeholder", e.Pattern, Placeholder)
}

// Unwrap returns ErrInvalidPattern.
func (e *InvalidPatternError) Unwrap() error {
	return ErrInvalidPattern
}

// ShouldPrint reports whether err is worth showing to a user. A missing
// configuration file is an expected outcome and is not.
func ShouldPrint(err error) bool {
	return err != nil && !errors.Is(err, ErrFileNotFound)
}
