// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"testing"

	"github.com/meadows/meadows/internal/config"
)

func TestStyledSink_PlainOutputMatchesWriterSink(t *testing.T) {
	t.Parallel()

	var styled, plain bytes.Buffer
	sinks := []config.TraceSink{newStyledSink(&styled), config.NewWriterSink(&plain)}

	for _, sink := range sinks {
		if err := sink.Note("Current directory: /w"); err != nil {
			t.Fatalf("Note() error = %v", err)
		}
		for _, c := range []struct {
			candidate config.Candidate
			exists    bool
		}{
			{config.Candidate{Level: config.LevelPath, Path: "/p/app.config.toml"}, true},
			{config.Candidate{Level: config.LevelExecutable, Path: "/w/bin/app.config.toml"}, false},
		} {
			if err := sink.Candidate(c.candidate, c.exists); err != nil {
				t.Fatalf("Candidate() error = %v", err)
			}
		}
	}

	if styled.String() != plain.String() {
		t.Errorf("styled output differs on a non-terminal writer\nstyled:\n%s\nplain:\n%s", styled.String(), plain.String())
	}
}
