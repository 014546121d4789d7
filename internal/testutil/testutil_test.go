// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSetHomeDir(t *testing.T) {
	key := "HOME"
	if runtime.GOOS == "windows" {
		key = "USERPROFILE"
	}
	original, hadOriginal := os.LookupEnv(key)

	dir := t.TempDir()
	cleanup := SetHomeDir(t, dir)
	if got := os.Getenv(key); got != dir {
		t.Errorf("%s = %q, want %q", key, got, dir)
	}

	cleanup()
	got, has := os.LookupEnv(key)
	if has != hadOriginal || got != original {
		t.Errorf("after cleanup %s = %q (set=%v), want %q (set=%v)", key, got, has, original, hadOriginal)
	}
}

func TestMustSetenv_UnsetsWhenAbsent(t *testing.T) {
	const key = "MEADOWS_TESTUTIL_PROBE"
	t.Cleanup(MustUnsetenv(t, key))

	cleanup := MustSetenv(t, key, "value")
	if got := os.Getenv(key); got != "value" {
		t.Errorf("%s = %q, want %q", key, got, "value")
	}

	cleanup()
	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s still set after cleanup", key)
	}
}

func TestMustWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "app.config.toml")
	if got := MustWriteFile(t, path, "key = 1\n"); got != path {
		t.Errorf("MustWriteFile() = %q, want %q", got, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "key = 1\n" {
		t.Errorf("content = %q", data)
	}
}

func TestMustSymlink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := MustWriteFile(t, filepath.Join(dir, "target.toml"), "")
	link := filepath.Join(dir, "links", "alias.toml")
	MustSymlink(t, target, link)

	resolved, err := filepath.EvalSymlinks(link)
	if err != nil {
		t.Fatalf("EvalSymlinks() error = %v", err)
	}
	want, err := filepath.EvalSymlinks(target)
	if err != nil {
		t.Fatalf("EvalSymlinks() error = %v", err)
	}
	if resolved != want {
		t.Errorf("link resolves to %q, want %q", resolved, want)
	}
}

func TestMustChdir(t *testing.T) {
	dir := t.TempDir()
	before, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}

	restore := MustChdir(t, dir)
	now, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	if got, _ := filepath.EvalSymlinks(now); got != want {
		t.Errorf("working directory = %q, want %q", got, want)
	}

	restore()
	if after, _ := os.Getwd(); after != before {
		t.Errorf("restored directory = %q, want %q", after, before)
	}
}
