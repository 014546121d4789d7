// SPDX-License-Identifier: MPL-2.0

package logconf

import "github.com/meadows/meadows/internal/process"

const (
	// DefaultPattern is the file-name pattern of log configuration files.
	DefaultPattern = "{}log.toml"
	// DefaultTextWidth is the width of the fenced process-start message.
	DefaultTextWidth = 110

	// EnvPaths lists extra files or directories to search, separated by the
	// OS path-list separator.
	EnvPaths = "MEADOWS_LOG"
	// EnvDebug enables search tracing and debug logging when set to "true".
	EnvDebug = "MEADOWS_LOG_DEBUG"
)

// Options controls how logging is initialized.
type Options struct {
	Kind process.Kind
	// Debug traces the file search and forces the debug level.
	Debug bool
	// LogStart logs a fenced process-start message after configuration.
	LogStart bool
	// Name is substituted into DefaultPattern.
	Name string
	// Paths is a path list searched before the standard locations.
	Paths string
	// PrintPath prints the loaded file to stdout.
	PrintPath bool
	// TextWidth is the width of the process-start message fence.
	TextWidth int
}

// NewOptions returns the defaults for pc:
//
//	Debug      $MEADOWS_LOG_DEBUG == "true"
//	LogStart   true
//	Name       invocation name (binary), canonical name (example), test name (tests)
//	Paths      $MEADOWS_LOG
//	PrintPath  true
//	TextWidth  110
func NewOptions(pc *process.Context) Options {
	return Options{
		Kind:      pc.Kind(),
		Debug:     pc.Getenv(EnvDebug) == "true",
		LogStart:  true,
		Name:      pc.SearchName(),
		Paths:     pc.Getenv(EnvPaths),
		PrintPath: true,
		TextWidth: DefaultTextWidth,
	}
}
