// SPDX-License-Identifier: MPL-2.0

package config

import "strings"

// Placeholder marks where the search name goes in a file-name pattern.
const Placeholder = "{}"

// DefaultPattern is the conventional configuration file-name pattern.
const DefaultPattern = "{}config.toml"

// SubstitutePattern replaces the first placeholder in pattern with name.
// A non-empty name is separated by a dot from any text on either side of the
// placeholder, so "{}config.toml" becomes "app.config.toml" for "app" and
// "config.toml" for "".
func SubstitutePattern(pattern, name string) (string, error) {
	before, after, found := strings.Cut(pattern, Placeholder)
	if !found {
		return "", &InvalidPatternError{Pattern: pattern}
	}
	if name == "" {
		return before + after, nil
	}
	if before != "" {
		name = "." + name
	}
	if after != "" {
		name += "."
	}
	return before + name + after, nil
}
