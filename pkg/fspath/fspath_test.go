// SPDX-License-Identifier: MPL-2.0

package fspath_test

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/meadows/meadows/pkg/fspath"
	"github.com/meadows/meadows/pkg/platform"
)

func TestIsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if !fspath.IsFile(file) {
		t.Errorf("IsFile(%q) = false, want true", file)
	}
	if fspath.IsFile(dir) {
		t.Errorf("IsFile(%q) = true for a directory", dir)
	}
	if fspath.IsFile(filepath.Join(dir, "missing")) {
		t.Error("IsFile() = true for a missing path")
	}
	if !fspath.IsDir(dir) || fspath.IsDir(file) {
		t.Error("IsDir() misclassified entries")
	}
}

func TestCanonicalize_SameFileSameResult(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "app")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(sub, "config.toml")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := fspath.Canonicalize(file)
	if err != nil {
		t.Fatalf("Canonicalize(%q) error = %v", file, err)
	}
	b, err := fspath.Canonicalize(filepath.Join(sub, "..", "app", ".", "config.toml"))
	if err != nil {
		t.Fatalf("Canonicalize(dotted) error = %v", err)
	}
	if a != b {
		t.Errorf("Canonicalize gave %q and %q for the same file", a, b)
	}
	if !filepath.IsAbs(a) {
		t.Errorf("Canonicalize(%q) = %q, want absolute", file, a)
	}
}

func TestCanonicalize_FollowsSymlinks(t *testing.T) {
	if runtime.GOOS == platform.Windows {
		t.Skip("symlinks require privileges on Windows")
	}
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "real.toml")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.toml")
	if err := os.Symlink(file, link); err != nil {
		t.Fatal(err)
	}

	a, _ := fspath.Canonicalize(file)
	b, err := fspath.Canonicalize(link)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("Canonicalize(link) = %q, want %q", b, a)
	}
}

func TestCanonicalize_Missing(t *testing.T) {
	t.Parallel()

	if _, err := fspath.Canonicalize(filepath.Join(t.TempDir(), "beetlejuice")); err == nil {
		t.Error("Canonicalize() of a missing path should fail")
	}
}

func TestAncestors(t *testing.T) {
	t.Parallel()

	start := filepath.Join(string(filepath.Separator), "a", "b", "c")
	got := slices.Collect(fspath.Ancestors(start))
	want := []string{
		start,
		filepath.Join(string(filepath.Separator), "a", "b"),
		filepath.Join(string(filepath.Separator), "a"),
		string(filepath.Separator),
	}
	if runtime.GOOS != platform.Windows && !slices.Equal(got, want) {
		t.Errorf("Ancestors(%q) = %v, want %v", start, got, want)
	}

	seq := fspath.Ancestors(start)
	if first, second := slices.Collect(seq), slices.Collect(seq); !slices.Equal(first, second) {
		t.Errorf("second walk = %v, want %v", second, first)
	}

	if got := slices.Collect(fspath.Ancestors("")); len(got) != 0 {
		t.Errorf("Ancestors(\"\") = %v, want none", got)
	}

	// Early stop must be honored.
	for dir := range fspath.Ancestors(start) {
		if dir != start {
			t.Errorf("first ancestor = %q, want %q", dir, start)
		}
		break
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	sep := string(os.PathListSeparator)
	got := fspath.SplitList(strings.Join([]string{"one", "", "two"}, sep))
	if want := []string{"one", "two"}; !slices.Equal(got, want) {
		t.Errorf("SplitList() = %v, want %v", got, want)
	}
	if got := fspath.SplitList(""); len(got) != 0 {
		t.Errorf("SplitList(\"\") = %v, want empty", got)
	}
}
