// SPDX-License-Identifier: MPL-2.0

package process

import (
	"errors"
	"fmt"
)

const (
	// KindBinary is a standard binary executable.
	KindBinary Kind = iota
	// KindExample is an example executable.
	KindExample
	// KindDocTest is a doc-test executable.
	KindDocTest
	// KindUnitTest is a unit-test executable.
	KindUnitTest
	// KindIntegTest is an integration-test executable.
	KindIntegTest
	// KindBenchTest is a benchmark-test executable.
	KindBenchTest
)

// ErrUnknownKind is returned when parsing an unrecognized kind name.
var ErrUnknownKind = errors.New("unknown executable kind")

// Kind is the kind of the running executable. It is fixed for the lifetime
// of a process.
type Kind int

// Kinds returns all executable kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindBinary, KindExample, KindDocTest, KindUnitTest, KindIntegTest, KindBenchTest}
}

// IsTest reports whether k denotes a test executable. Only binaries and
// examples are not tests.
func (k Kind) IsTest() bool {
	return k != KindBinary && k != KindExample
}

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindBinary:
		return "binary"
	case KindExample:
		return "example"
	case KindDocTest:
		return "doc-test"
	case KindUnitTest:
		return "unit-test"
	case KindIntegTest:
		return "integration-test"
	case KindBenchTest:
		return "benchmark-test"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a kind name as returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
