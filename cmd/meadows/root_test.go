// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v0.4.0"
		Commit = "9f1c2ab"
		BuildDate = "2026-03-01T08:30:00Z"

		got := getVersionString()
		want := "v0.4.0 (commit: 9f1c2ab, built: 2026-03-01T08:30:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		// Test binaries report Main.Version == "(devel)".
		Version = "dev"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestVersionCommand(t *testing.T) {
	// Not parallel: reads the package-level version vars.

	f := newCLIFixture(t)
	if err := f.run(t, "version"); err != nil {
		t.Fatalf("version error = %v", err)
	}
	if got, want := f.stdout.String(), "meadows "+getVersionString()+"\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRootCommand_Tree(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(newCLIFixture(t).app)
	for _, name := range []string{"find", "show", "env", "version"} {
		sub, _, err := root.Find([]string{name})
		if err != nil || sub.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}

	find, _, _ := root.Find([]string{"find"})
	for _, flag := range []string{"all", "debug", "kind", "exe", "name", "pattern", "paths", "no-env"} {
		if find.Flags().Lookup(flag) == nil {
			t.Errorf("find --%s not defined", flag)
		}
	}
	if !strings.Contains(root.Long, "meadows find") {
		t.Error("root help lacks examples")
	}
}
