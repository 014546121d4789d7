// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/meadows/meadows/internal/config"
	"github.com/meadows/meadows/internal/issue"
	"github.com/meadows/meadows/internal/logconf"

	"github.com/charmbracelet/fang"
)

// issueStyle is the glamour style used for catalog guidance.
const issueStyle = "dark"

// searchFailure turns a resolver error into the error a command returns. A
// missing file becomes a quiet exit status 1; in verbose mode the search
// locations are explained first.
func (a *App) searchFailure(err error, opts config.FindOptions) error {
	if !config.ShouldPrint(err) {
		if a.verbose {
			a.renderIssue(issue.ConfigFileNotFoundId)
		}
		return &ExitError{Code: 1, Err: err}
	}

	ec := issue.NewErrorContext().WithOperation("find configuration file").Wrap(err)
	switch {
	case errors.Is(err, config.ErrInvalidPattern):
		ec.WithResource(opts.Pattern).
			WithIssue(issue.InvalidPatternId).
			WithSuggestion("Include the {} placeholder, for example --pattern '{}config.toml'")
	case errors.Is(err, config.ErrPublishEnv):
		ec.WithIssue(issue.EnvPublishFailedId).
			WithSuggestion("Retry with --no-env to search without publishing process variables")
	case errors.Is(err, config.ErrTraceOutput):
		ec.WithSuggestion("Make sure standard error is writable, or retry without --debug")
	case errors.Is(err, context.Canceled):
		ec.WithSuggestion("The search was interrupted; run the command again")
	}
	return ec.BuildError()
}

func readFailure(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("read configuration file").
		WithResource(path).
		WithIssue(issue.PathProbeFailedId).
		WithSuggestion("Check that the file is readable").
		Wrap(err).
		BuildError()
}

func parseFailure(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("parse configuration file").
		WithResource(path).
		WithIssue(issue.ConfigParseFailedId).
		WithSuggestion("Check the TOML syntax near the reported position").
		Wrap(err).
		BuildError()
}

func logSetupFailure(err error) error {
	ec := issue.NewErrorContext().WithOperation("configure logging").Wrap(err)
	var initErr *logconf.InitError
	if errors.As(err, &initErr) {
		ec.WithResource(initErr.Path)
		switch initErr.Op {
		case logconf.OpDecode, logconf.OpValidate:
			ec.WithIssue(issue.LogConfigInvalidId).
				WithSuggestion("Fix the log configuration file; default logging is used meanwhile")
		case logconf.OpExpand:
			ec.WithSuggestion("Only ${var} references are expanded; command substitution is not supported")
		}
	}
	return ec.BuildError()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// handleError prints command errors. Quiet exits print nothing; actionable
// errors print their suggestions and, in verbose mode, the catalog entry.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && !config.ShouldPrint(exitErr.Err) {
		return
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(a.verbose))
	if a.verbose && ae.Details() != nil {
		if rendered, renderErr := ae.Details().Render(issueStyle); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

func (a *App) renderIssue(id issue.Id) {
	rendered, err := issue.Get(id).Render(issueStyle)
	if err != nil {
		a.logger.Debug("render issue", "id", id, "err", err)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}
