// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the meadows command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "meadows",
		Short: "Find layered configuration files",
		Long: TitleStyle.Render("meadows") + SubtitleStyle.Render(" - find layered configuration files") + `

A program looks for its configuration file in several places, from the
most specific (an explicit path, the current directory) to the most
general (the system configuration directory, the executable's directory).
meadows shows which files a program would find and which one wins.

` + SubtitleStyle.Render("Examples:") + `
  meadows find                      Highest-priority file for meadows itself
  meadows find --all --name app     Every file "app" would see, best first
  meadows find --debug --name app   Trace each location as it is checked
  meadows show --expand --name app  Print the winning file with ${var} expanded
  meadows env --publish             Print the environment with process variables`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.setupLogging(cmd.Context())
		},
	}
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(newFindCommand(app))
	root.AddCommand(newShowCommand(app))
	root.AddCommand(newEnvCommand(app))
	root.AddCommand(newVersionCommand(app))
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the meadows command line and exits with its status.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{ConfigureLogs: true})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
