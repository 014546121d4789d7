// SPDX-License-Identifier: MPL-2.0

package process

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DocTestSentinel is the fixed file name of inline doc-test executables.
	// It is used as the test name unchanged.
	DocTestSentinel = "rust_out"

	// hashLen is the length of the hex disambiguator that build tools append
	// to test executable names.
	hashLen = 16

	goTestSuffix = ".test"
)

// ErrInvalidTestName is returned when a test name cannot be derived from an
// executable name.
var ErrInvalidTestName = errors.New("cannot derive test name")

// DeriveTestName derives the stable test name from the canonical name of a
// test executable:
//   - DocTestSentinel is returned unchanged;
//   - "<stem>-<16 lowercase hex digits>" yields "<stem>";
//   - Go test binaries "<pkg>.test" yield "<pkg>".
//
// Any other name fails with ErrInvalidTestName. Callers must only ask for a
// test name when the executable is a test.
func DeriveTestName(name string) (string, error) {
	if name == DocTestSentinel {
		return name, nil
	}
	if stem, ok := strings.CutSuffix(name, goTestSuffix); ok && stem != "" {
		return stem, nil
	}
	idx := strings.LastIndexByte(name, '-')
	if idx > 0 && isLowerHex(name[idx+1:]) {
		return name[:idx], nil
	}
	return "", fmt.Errorf("%w from %q", ErrInvalidTestName, name)
}

func isLowerHex(s string) bool {
	if len(s) != hashLen {
		return false
	}
	for i := range len(s) {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
