// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"io"
)

const tracePrefix = "[meadows::config]"

type (
	// TraceSink receives the debug trace of a search: free-form notes and one
	// entry per probed candidate, in probe order. A write failure aborts the
	// search.
	TraceSink interface {
		Note(msg string) error
		Candidate(c Candidate, exists bool) error
	}

	// WriterSink writes trace lines to an io.Writer:
	//
	//	[meadows::config] Instance   | + /home/u/project/app.config.toml
	//	[meadows::config] Package    | - /home/u/project/src/config.toml
	WriterSink struct {
		w io.Writer
	}

	nopSink struct{}
)

// NopSink discards all trace output.
var NopSink TraceSink = nopSink{}

// NewWriterSink creates a TraceSink that writes plain lines to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Note writes a prefixed message line.
func (s *WriterSink) Note(msg string) error {
	_, err := fmt.Fprintf(s.w, "%s %s\n", tracePrefix, msg)
	return err
}

// Candidate writes the level, an existence marker and the path.
func (s *WriterSink) Candidate(c Candidate, exists bool) error {
	_, err := fmt.Fprintf(s.w, "%s %-10s | %s %s\n", tracePrefix, c.Level, ExistsMarker(exists), c.Path)
	return err
}

// ExistsMarker returns "+" for an existing file and "-" otherwise.
func ExistsMarker(exists bool) string {
	if exists {
		return "+"
	}
	return "-"
}

func (nopSink) Note(string) error { return nil }

func (nopSink) Candidate(Candidate, bool) error { return nil }
