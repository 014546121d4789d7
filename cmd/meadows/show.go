// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/meadows/meadows/pkg/cueutil"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"mvdan.cc/sh/v3/shell"
)

func newShowCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the winning configuration file as sorted keys",
		Long: `Locate the highest-priority TOML configuration file and print its
settings as "key = value" lines sorted by key. Nested tables are flattened
with dots; keys are lower-cased.

With --expand, ${var} references are replaced before parsing: process
variables such as ${dir} and ${name} first, then the environment.`,
		Args: cobra.NoArgs,
	}
	addSearchFlags(cmd.Flags())
	cmd.Flags().Bool("expand", false, "expand ${var} references before parsing")
	v := bindFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		req, err := readSearchRequest(v)
		if err != nil {
			return err
		}
		return app.show(cmd.Context(), req, v.GetBool("expand"))
	}
	return cmd
}

func (a *App) show(ctx context.Context, req searchRequest, expand bool) error {
	pc := a.processFor(req.kind, req.exe)
	if err := checkProcess(pc); err != nil {
		return err
	}

	match, err := a.provider(pc).Find(ctx, req.opts)
	if err != nil {
		return a.searchFailure(err, req.opts)
	}

	data, err := a.readFile(match.Path)
	if err != nil {
		return readFailure(err, match.Path)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, match.Path); err != nil {
		return readFailure(err, match.Path)
	}
	if expand {
		expanded, err := shell.Expand(string(data), pc.Env().Lookup())
		if err != nil {
			return parseFailure(fmt.Errorf("expand variables: %w", err), match.Path)
		}
		data = []byte(expanded)
	}

	settings := viper.New()
	settings.SetConfigType("toml")
	if err := settings.ReadConfig(bytes.NewReader(data)); err != nil {
		return parseFailure(err, match.Path)
	}

	keys := settings.AllKeys()
	slices.Sort(keys)
	if _, err := fmt.Fprintf(a.stdout, "# %s (%s)\n", match.Path, match.Level); err != nil {
		return err
	}
	for _, key := range keys {
		if _, err := fmt.Fprintf(a.stdout, "%s = %s\n", key, formatValue(settings.Get(key))); err != nil {
			return err
		}
	}
	return nil
}

// formatValue renders a decoded TOML value: strings quoted, arrays in
// brackets, everything else as printed by fmt.
func formatValue(value any) string {
	switch value := value.(type) {
	case string:
		return strconv.Quote(value)
	case []any:
		parts := make([]string, len(value))
		for i, item := range value {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(value)
	}
}
