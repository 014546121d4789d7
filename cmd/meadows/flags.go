// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/meadows/meadows/internal/config"
	"github.com/meadows/meadows/internal/issue"
	"github.com/meadows/meadows/internal/process"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix is prepended to flag names to form their environment variables:
// --paths reads MEADOWS_PATHS, --no-env reads MEADOWS_NO_ENV.
const envPrefix = "MEADOWS"

// searchRequest is one search as described by the command line.
type searchRequest struct {
	kind process.Kind
	exe  string
	opts config.FindOptions
}

func addProcessFlags(fs *pflag.FlagSet) {
	fs.String("kind", process.KindBinary.String(),
		"executable kind: binary, example, doc-test, unit-test, integration-test or benchmark-test")
	fs.String("exe", "", "search as the given executable would (default: meadows itself)")
}

func addSearchFlags(fs *pflag.FlagSet) {
	addProcessFlags(fs)
	fs.Bool("debug", false, "trace every candidate location to stderr")
	fs.String("name", "", "name substituted into the pattern (default: derived from the executable)")
	fs.String("pattern", config.DefaultPattern, "file-name pattern; must contain {}")
	fs.String("paths", "", "files or directories searched first, separated by the OS path-list separator")
	fs.Bool("no-env", false, "do not publish the process variables before searching")
}

// bindFlags binds every flag of cmd to viper, so that each flag falls back
// to its MEADOWS_* environment variable when not given.
func bindFlags(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// BindPFlags fails only for a nil flag set.
	_ = v.BindPFlags(cmd.Flags())
	return v
}

func readKind(v *viper.Viper) (process.Kind, error) {
	name := v.GetString("kind")
	kind, err := process.ParseKind(name)
	if err != nil {
		return 0, issue.NewErrorContext().
			WithOperation("parse executable kind").
			WithResource(name).
			WithIssue(issue.UnknownKindId).
			WithSuggestion("Use one of: "+kindNames()).
			Wrap(err).
			BuildError()
	}
	return kind, nil
}

func kindNames() string {
	kinds := process.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

func readSearchRequest(v *viper.Viper) (searchRequest, error) {
	kind, err := readKind(v)
	if err != nil {
		return searchRequest{}, err
	}
	return searchRequest{
		kind: kind,
		exe:  v.GetString("exe"),
		opts: config.FindOptions{
			Pattern:    v.GetString("pattern"),
			Debug:      v.GetBool("debug"),
			Name:       v.GetString("name"),
			PathList:   v.GetString("paths"),
			PublishEnv: !v.GetBool("no-env"),
		},
	}, nil
}

// checkProcess rejects a test kind for an executable whose name carries no
// test name, which the process context cannot represent.
func checkProcess(pc *process.Context) error {
	if !pc.Kind().IsTest() {
		return nil
	}
	if _, err := process.DeriveTestName(pc.CanonicalName()); err != nil {
		return issue.NewErrorContext().
			WithOperation("inspect test executable").
			WithResource(pc.CanonicalPath()).
			WithIssue(issue.UnknownKindId).
			WithSuggestions(
				"Point --exe at a test executable such as ./target/app-0123456789abcdef or ./pkg.test",
				"Use --kind binary or --kind example for other executables",
			).
			Wrap(err).
			BuildError()
	}
	return nil
}
