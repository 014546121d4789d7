// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/meadows/meadows/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - shared hex colors for consistent theming across all CLI output.
const (
	// ColorPrimary is purple - used for titles and precedence levels.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles and missing candidates.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for existing files.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for commands and paths.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorVerbose is light gray - used for trace prefixes and debug output.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

// Base styles built from the color palette.
var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for command names and paths.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// VerboseStyle is for verbose output and supplementary information.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)
)

const (
	tracePrefix = "[meadows::config]"
	levelWidth  = 10
)

// styledSink renders search traces with the CLI palette. Styles are bound to
// a renderer for the sink's writer, so output to a pipe or file stays plain
// and matches config.WriterSink byte for byte.
type styledSink struct {
	w       io.Writer
	prefix  lipgloss.Style
	level   lipgloss.Style
	found   lipgloss.Style
	missing lipgloss.Style
}

var _ config.TraceSink = (*styledSink)(nil)

func newStyledSink(w io.Writer) *styledSink {
	r := lipgloss.NewRenderer(w)
	return &styledSink{
		w:       w,
		prefix:  r.NewStyle().Inherit(VerboseStyle),
		level:   r.NewStyle().Inherit(TitleStyle).Width(levelWidth),
		found:   r.NewStyle().Inherit(SuccessStyle),
		missing: r.NewStyle().Inherit(SubtitleStyle),
	}
}

func (s *styledSink) Note(msg string) error {
	_, err := fmt.Fprintf(s.w, "%s %s\n", s.prefix.Render(tracePrefix), msg)
	return err
}

func (s *styledSink) Candidate(c config.Candidate, exists bool) error {
	style := s.missing
	if exists {
		style = s.found
	}
	_, err := fmt.Fprintf(s.w, "%s %s | %s %s\n",
		s.prefix.Render(tracePrefix),
		s.level.Render(c.Level.String()),
		style.Render(config.ExistsMarker(exists)),
		style.Render(c.Path),
	)
	return err
}
