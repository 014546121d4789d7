// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/meadows/meadows/internal/config"

	"github.com/spf13/cobra"
)

func newFindCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Print the configuration files a program would find",
		Long: `Print the configuration files a program would find, one per line as
"<Level>\t<path>". Without --all only the winning file is printed.

The command exits with status 1 and prints nothing when no file exists.`,
		Args: cobra.NoArgs,
	}
	addSearchFlags(cmd.Flags())
	cmd.Flags().Bool("all", false, "print every existing file, highest priority first")
	v := bindFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		req, err := readSearchRequest(v)
		if err != nil {
			return err
		}
		return app.find(cmd.Context(), req, v.GetBool("all"))
	}
	return cmd
}

func (a *App) find(ctx context.Context, req searchRequest, all bool) error {
	pc := a.processFor(req.kind, req.exe)
	if err := checkProcess(pc); err != nil {
		return err
	}

	provider := a.provider(pc)
	var matches []config.Match
	if all {
		found, err := provider.FindAll(ctx, req.opts)
		if err != nil {
			return a.searchFailure(err, req.opts)
		}
		matches = found
	} else {
		found, err := provider.Find(ctx, req.opts)
		if err != nil {
			return a.searchFailure(err, req.opts)
		}
		matches = []config.Match{found}
	}

	for _, m := range matches {
		if _, err := fmt.Fprintf(a.stdout, "%s\t%s\n", m.Level, m.Path); err != nil {
			return err
		}
	}
	return nil
}
