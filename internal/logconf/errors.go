// SPDX-License-Identifier: MPL-2.0

package logconf

import (
	"errors"
	"fmt"

	"github.com/meadows/meadows/internal/config"
)

// Steps reported in InitError.Op.
const (
	OpFind     = "find"
	OpRead     = "read"
	OpExpand   = "expand"
	OpDecode   = "decode"
	OpValidate = "validate"
)

// ErrKindMismatch is returned when Init is used for a non-binary executable
// or InitTest for a binary.
var ErrKindMismatch = errors.New("initializer does not match the executable kind")

// InitError reports the step at which log configuration failed.
type InitError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot initialize logging: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("cannot initialize logging: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}

// ShouldPrint reports whether the failure is worth showing. A missing log
// configuration file is not.
func (e *InitError) ShouldPrint() bool {
	return config.ShouldPrint(e.Err)
}
