// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/meadows/meadows/internal/issue"

	"github.com/spf13/cobra"
)

func newEnvCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the environment sorted by name",
		Long: `Print every environment variable as NAME=value, sorted by name.

With --publish the process variables (dir, name, path, pid, ...) are set
first, exactly as a search with publication would set them.`,
		Args: cobra.NoArgs,
	}
	addProcessFlags(cmd.Flags())
	cmd.Flags().Bool("publish", false, "publish the process variables first")
	cmd.Flags().Bool("quote", false, "print values as quoted strings")
	v := bindFlags(cmd)

	cmd.RunE = func(*cobra.Command, []string) error {
		kind, err := readKind(v)
		if err != nil {
			return err
		}
		if v.GetBool("publish") {
			pc := app.processFor(kind, v.GetString("exe"))
			if err := checkProcess(pc); err != nil {
				return err
			}
			if err := pc.Env().Publish(nil); err != nil {
				return issue.NewErrorContext().
					WithOperation("publish process variables").
					WithIssue(issue.EnvPublishFailedId).
					WithSuggestion("Run without --publish to print the environment as is").
					Wrap(err).
					BuildError()
			}
		}
		return app.dumpEnv(v.GetBool("quote"))
	}
	return cmd
}

type envEntry struct {
	name  string
	value string
}

func (a *App) dumpEnv(quote bool) error {
	environ := a.environ()
	entries := make([]envEntry, 0, len(environ))
	for _, kv := range environ {
		name, value, _ := strings.Cut(kv, "=")
		entries = append(entries, envEntry{name, value})
	}
	slices.SortStableFunc(entries, func(x, y envEntry) int { return cmp.Compare(x.name, y.name) })

	for _, e := range entries {
		value := e.value
		if quote {
			value = strconv.Quote(value)
		}
		if _, err := fmt.Fprintf(a.stdout, "%s=%s\n", e.name, value); err != nil {
			return err
		}
	}
	return nil
}
