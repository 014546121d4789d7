// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"

	"github.com/meadows/meadows/internal/process"
	"github.com/meadows/meadows/internal/testutil"
)

// fixtureName is unusual enough that no stray file in the ancestors of the
// temporary directory matches it.
const fixtureName = "meadowsfixture"

type noDirs struct{}

func (noDirs) HomeDir() (string, bool)         { return "", false }
func (noDirs) ConfigDir() (string, bool)       { return "", false }
func (noDirs) ConfigLocalDir() (string, bool)  { return "", false }
func (noDirs) SystemConfigDir() (string, bool) { return "", false }

// cliFixture runs commands against a temporary tree:
//
//	<dir>/bin/meadowsfixture   the executable
//	<dir>/proj                 the working directory
type cliFixture struct {
	dir     string
	workdir string
	exe     string
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	app     *App

	mu  sync.Mutex
	env map[string]string
}

func newCLIFixture(t *testing.T, opts ...func(*Dependencies)) *cliFixture {
	t.Helper()

	dir := t.TempDir()
	f := &cliFixture{
		dir:     dir,
		workdir: filepath.Join(dir, "proj"),
		exe:     filepath.Join(dir, "bin", fixtureName),
		env:     map[string]string{"LANG": "C"},
	}
	testutil.MustMkdirAll(t, f.workdir, 0o755)

	deps := Dependencies{
		NewProcess: f.newProcess,
		Environ:    f.environ,
		Stdout:     &f.stdout,
		Stderr:     &f.stderr,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	f.app = NewApp(deps)
	return f
}

func (f *cliFixture) newProcess(kind process.Kind, exe string) *process.Context {
	if exe == "" {
		exe = f.exe
	}
	return process.NewContext(kind,
		process.WithArgs0(exe),
		process.WithExecutable(func() (string, error) { return exe, nil }),
		process.WithGetwd(func() (string, error) { return f.workdir, nil }),
		process.WithGetenv(f.getenv),
		process.WithSetenv(f.setenv),
		process.WithPid(42),
		process.WithDirs(noDirs{}),
	)
}

func (f *cliFixture) getenv(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.env[key]
}

func (f *cliFixture) setenv(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.env[key] = value
	return nil
}

func (f *cliFixture) environ() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.env))
	for k, v := range f.env {
		out = append(out, k+"="+v)
	}
	return out
}

// write creates a file below the fixture root and returns its path.
func (f *cliFixture) write(t *testing.T, rel, content string) string {
	t.Helper()
	return testutil.MustWriteFile(t, filepath.Join(f.dir, filepath.FromSlash(rel)), content)
}

func (f *cliFixture) run(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCommand(f.app)
	root.SetArgs(args)
	return root.ExecuteContext(t.Context())
}
