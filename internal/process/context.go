// SPDX-License-Identifier: MPL-2.0

package process

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/meadows/meadows/pkg/fspath"
	"github.com/meadows/meadows/pkg/platform"
)

// ManifestDirEnv names the environment variable that points at the root
// directory of the source project the executable was built from.
const ManifestDirEnv = "MEADOWS_MANIFEST_DIR"

const manifestFile = "go.mod"

type (
	// Context describes the running process. It is created once at startup and
	// shared by pointer; every derived value is computed on first access and
	// cached for the lifetime of the Context.
	Context struct {
		kind Kind
		src  sources

		invocationPath func() string
		canonicalPath  func() string
		testName       func() string
		manifestDir    func() (string, bool)

		env *EnvPublisher
	}

	// Option customizes the OS lookups a Context performs.
	Option func(*sources)

	sources struct {
		goos         string
		args0        string
		executable   func() (string, error)
		evalSymlinks func(string) (string, error)
		lookPath     func(string) (string, error)
		getwd        func() (string, error)
		getenv       func(string) string
		setenv       func(string, string) error
		fileExists   func(string) bool
		pid          int
		dirs         platform.Dirs
	}
)

// WithArgs0 overrides the invocation path normally taken from os.Args[0].
func WithArgs0(path string) Option {
	return func(s *sources) { s.args0 = path }
}

// WithExecutable overrides os.Executable.
func WithExecutable(fn func() (string, error)) Option {
	return func(s *sources) { s.executable = fn }
}

// WithGOOS overrides runtime.GOOS for file-name rules.
func WithGOOS(goos string) Option {
	return func(s *sources) { s.goos = goos }
}

// WithGetwd overrides os.Getwd.
func WithGetwd(fn func() (string, error)) Option {
	return func(s *sources) { s.getwd = fn }
}

// WithGetenv overrides os.Getenv.
func WithGetenv(fn func(string) string) Option {
	return func(s *sources) { s.getenv = fn }
}

// WithSetenv overrides os.Setenv, which is used to publish environment
// variables.
func WithSetenv(fn func(string, string) error) Option {
	return func(s *sources) { s.setenv = fn }
}

// WithLookPath overrides exec.LookPath.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(s *sources) { s.lookPath = fn }
}

// WithPid overrides os.Getpid.
func WithPid(pid int) Option {
	return func(s *sources) { s.pid = pid }
}

// WithDirs overrides the platform directory lookup.
func WithDirs(dirs platform.Dirs) Option {
	return func(s *sources) { s.dirs = dirs }
}

// NewContext creates the process context for an executable of the given kind.
func NewContext(kind Kind, opts ...Option) *Context {
	src := sources{
		goos:         runtime.GOOS,
		executable:   os.Executable,
		evalSymlinks: filepath.EvalSymlinks,
		lookPath:     exec.LookPath,
		getwd:        os.Getwd,
		getenv:       os.Getenv,
		setenv:       os.Setenv,
		fileExists:   fspath.IsFile,
		pid:          os.Getpid(),
	}
	if len(os.Args) > 0 {
		src.args0 = os.Args[0]
	}
	for _, opt := range opts {
		opt(&src)
	}
	if src.dirs == nil {
		src.dirs = platform.NewDirsFrom(platform.DirsSource{GOOS: src.goos, Getenv: src.getenv})
	}

	c := &Context{kind: kind, src: src}
	c.invocationPath = sync.OnceValue(c.resolveInvocationPath)
	c.canonicalPath = sync.OnceValue(c.resolveCanonicalPath)
	c.testName = sync.OnceValue(c.resolveTestName)
	c.manifestDir = sync.OnceValues(c.resolveManifestDir)
	c.env = &EnvPublisher{ctx: c}
	return c
}

// Kind returns the executable kind.
func (c *Context) Kind() Kind {
	return c.kind
}

// GOOS returns the operating system the context applies file-name rules for.
func (c *Context) GOOS() string {
	return c.src.goos
}

// Pid returns the process ID.
func (c *Context) Pid() int {
	return c.src.pid
}

// Dirs returns the platform directory lookup.
func (c *Context) Dirs() platform.Dirs {
	return c.src.dirs
}

// Getenv reads an environment variable through the context's lookup.
func (c *Context) Getenv(key string) string {
	return c.src.getenv(key)
}

// Workdir returns the current working directory, or false if it cannot be
// determined. It is not cached because the working directory may change.
func (c *Context) Workdir() (string, bool) {
	wd, err := c.src.getwd()
	if err != nil || wd == "" {
		return "", false
	}
	return wd, true
}

// InvocationPath returns the path the executable was started with. It may be
// relative or point at a symlink.
func (c *Context) InvocationPath() string {
	return c.invocationPath()
}

// InvocationName returns the file name of InvocationPath (its stem on
// Windows).
func (c *Context) InvocationName() string {
	return c.fileName(c.InvocationPath())
}

// InvocationDir returns the parent directory of InvocationPath.
func (c *Context) InvocationDir() string {
	return filepath.Dir(c.InvocationPath())
}

// CanonicalPath returns the absolute, symlink-free path of the executable.
func (c *Context) CanonicalPath() string {
	return c.canonicalPath()
}

// CanonicalName returns the file name of CanonicalPath (its stem on
// Windows).
func (c *Context) CanonicalName() string {
	return c.fileName(c.CanonicalPath())
}

// CanonicalDir returns the parent directory of CanonicalPath.
func (c *Context) CanonicalDir() string {
	return filepath.Dir(c.CanonicalPath())
}

// TestName returns the stable test name derived from CanonicalName.
//
// It panics if the executable is not a test or if its name does not follow a
// test executable naming scheme; both are programming errors.
func (c *Context) TestName() string {
	if !c.kind.IsTest() {
		panic(fmt.Sprintf("process: TestName called for %s executable", c.kind))
	}
	return c.testName()
}

// ManifestDir returns the build-manifest directory: $MEADOWS_MANIFEST_DIR
// when set, otherwise, for non-binary kinds, the nearest ancestor of the
// working directory that contains a go.mod file.
func (c *Context) ManifestDir() (string, bool) {
	return c.manifestDir()
}

// Env returns the environment publisher bound to this context.
func (c *Context) Env() *EnvPublisher {
	return c.env
}

// SearchName returns the name a configuration search uses by default: the
// invocation name for binaries, the canonical name for examples and the test
// name for tests.
func (c *Context) SearchName() string {
	switch {
	case c.kind == KindBinary:
		return c.InvocationName()
	case c.kind == KindExample:
		return c.CanonicalName()
	default:
		return c.TestName()
	}
}

func (c *Context) fileName(path string) string {
	base := filepath.Base(path)
	if c.src.goos == platform.Windows {
		// filepath.Base only splits on '/' when running elsewhere.
		if i := strings.LastIndexByte(base, '\\'); i >= 0 {
			base = base[i+1:]
		}
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}

func (c *Context) resolveInvocationPath() string {
	path := c.src.args0
	if path != "" && !strings.ContainsAny(path, `/\`) {
		if found, err := c.src.lookPath(path); err == nil {
			path = found
		}
	}
	return path
}

func (c *Context) resolveCanonicalPath() string {
	path, err := c.src.executable()
	if err != nil || path == "" {
		path = c.InvocationPath()
	}
	if real, err := c.src.evalSymlinks(path); err == nil {
		path = real
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

func (c *Context) resolveTestName() string {
	name, err := DeriveTestName(c.CanonicalName())
	if err != nil {
		panic(fmt.Sprintf("process: %v", err))
	}
	return name
}

func (c *Context) resolveManifestDir() (string, bool) {
	if dir := strings.TrimSpace(c.src.getenv(ManifestDirEnv)); dir != "" {
		return dir, true
	}
	if c.kind == KindBinary {
		return "", false
	}
	dir, ok := c.Workdir()
	if !ok {
		return "", false
	}
	for {
		if c.src.fileExists(filepath.Join(dir, manifestFile)) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
