// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/meadows/meadows/internal/process"
)

type (
	// fakeFS is an in-memory FS: a path is a file if it is a key of files,
	// and its canonical form is the mapped value.
	fakeFS struct {
		mu     sync.Mutex
		files  map[string]string
		probes []string
	}

	stubDirs struct {
		home, local, config, system string
		calls                       int
	}

	recordingSink struct {
		notes      []string
		candidates []Candidate
		exists     []bool
		failAfter  int
	}
)

func newFakeFS(paths ...string) *fakeFS {
	f := &fakeFS{files: make(map[string]string)}
	for _, p := range paths {
		f.files[p] = p
	}
	return f
}

// alias registers path as another name for the file canonical.
func (f *fakeFS) alias(path, canonical string) {
	f.files[path] = canonical
}

func (f *fakeFS) IsFile(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probes = append(f.probes, path)
	_, ok := f.files[path]
	return ok
}

func (f *fakeFS) Canonicalize(path string) (string, error) {
	if c, ok := f.files[path]; ok {
		return c, nil
	}
	return "", fmt.Errorf("canonicalize %s: %w", path, os.ErrNotExist)
}

func (d *stubDirs) HomeDir() (string, bool) {
	d.calls++
	return d.home, d.home != ""
}

func (d *stubDirs) ConfigLocalDir() (string, bool) {
	d.calls++
	return d.local, d.local != ""
}

func (d *stubDirs) ConfigDir() (string, bool) {
	d.calls++
	return d.config, d.config != ""
}

func (d *stubDirs) SystemConfigDir() (string, bool) {
	d.calls++
	return d.system, d.system != ""
}

func (s *recordingSink) Note(msg string) error {
	if s.failAfter > 0 && len(s.notes)+len(s.candidates) >= s.failAfter {
		return errBrokenPipe
	}
	s.notes = append(s.notes, msg)
	return nil
}

func (s *recordingSink) Candidate(c Candidate, exists bool) error {
	if s.failAfter > 0 && len(s.notes)+len(s.candidates) >= s.failAfter {
		return errBrokenPipe
	}
	s.candidates = append(s.candidates, c)
	s.exists = append(s.exists, exists)
	return nil
}

var errBrokenPipe = fmt.Errorf("write: broken pipe")

// root returns an absolute path below the filesystem root.
func root(elem ...string) string {
	return filepath.Join(append([]string{string(filepath.Separator)}, elem...)...)
}

type contextSetup struct {
	kind     process.Kind
	workdir  string
	exe      string
	args0    string
	env      map[string]string
	dirs     *stubDirs
	setenv   func(string, string) error
	noGetwd  bool
	extraOpt []process.Option
}

func (s contextSetup) build() *process.Context {
	env := s.env
	dirs := s.dirs
	if dirs == nil {
		dirs = &stubDirs{}
	}
	setenv := s.setenv
	if setenv == nil {
		setenv = func(string, string) error { return nil }
	}
	exe := s.exe
	if exe == "" {
		exe = root("w", "bin", "app")
		if s.kind.IsTest() {
			exe = root("w", "target", "app-0123456789abcdef")
		}
	}
	args0 := s.args0
	if args0 == "" {
		args0 = exe
	}
	opts := []process.Option{
		process.WithArgs0(args0),
		process.WithExecutable(func() (string, error) { return exe, nil }),
		process.WithGetwd(func() (string, error) {
			if s.noGetwd {
				return "", os.ErrNotExist
			}
			return s.workdir, nil
		}),
		process.WithGetenv(func(k string) string { return env[k] }),
		process.WithDirs(dirs),
		process.WithSetenv(setenv),
		process.WithLookPath(func(name string) (string, error) { return "", os.ErrNotExist }),
	}
	opts = append(opts, s.extraOpt...)
	return process.NewContext(s.kind, opts...)
}

func levelsOf(matches []Match) string {
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, m.Level.String())
	}
	return strings.Join(parts, ",")
}
