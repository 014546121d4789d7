// SPDX-License-Identifier: MPL-2.0

package logconf

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

var formatters = map[string]log.Formatter{
	"text":   log.TextFormatter,
	"json":   log.JSONFormatter,
	"logfmt": log.LogfmtFormatter,
}

// NewLogger builds a logger writing to stdout or stderr as selected by
// s.Output.
func (s Settings) NewLogger(stdout, stderr io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(s.Level)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	formatter, ok := formatters[s.Formatter]
	if !ok {
		return nil, fmt.Errorf("formatter: unknown %q", s.Formatter)
	}

	w := stderr
	if s.Output == "stdout" {
		w = stdout
	}

	opts := log.Options{
		Level:           level,
		Prefix:          s.Prefix,
		ReportTimestamp: s.Timestamp,
		ReportCaller:    s.Caller,
		Formatter:       formatter,
	}
	if s.TimeFormat != "" {
		opts.TimeFormat = s.TimeFormat
	}
	return log.NewWithOptions(w, opts), nil
}
