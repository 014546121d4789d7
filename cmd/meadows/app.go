// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/meadows/meadows/internal/config"
	"github.com/meadows/meadows/internal/logconf"
	"github.com/meadows/meadows/internal/process"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra command handler receives an App
	// reference and performs searches through it.
	App struct {
		newProcess    ProcessFactory
		resolverOpts  []config.ResolverOption
		environ       func() []string
		readFile      func(string) ([]byte, error)
		configureLogs bool
		stdout        io.Writer
		stderr        io.Writer

		verbose bool
		logger  *log.Logger

		mu        sync.Mutex
		processes map[processKey]*process.Context
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		// NewProcess creates the context a search runs as. exe is the --exe
		// flag value; empty means the running executable.
		NewProcess ProcessFactory
		// ResolverOptions are appended to the CLI's own resolver options.
		ResolverOptions []config.ResolverOption
		Environ         func() []string
		ReadFile        func(string) ([]byte, error)
		// ConfigureLogs loads the meadows log configuration file before a
		// command runs. It has a process-wide effect and is off in tests.
		ConfigureLogs bool
		Stdout        io.Writer
		Stderr        io.Writer
	}

	// ProcessFactory creates a process.Context for a kind and executable path.
	ProcessFactory func(kind process.Kind, exe string) *process.Context

	processKey struct {
		kind process.Kind
		exe  string
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		newProcess:    deps.NewProcess,
		resolverOpts:  deps.ResolverOptions,
		environ:       deps.Environ,
		readFile:      deps.ReadFile,
		configureLogs: deps.ConfigureLogs,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
		processes:     make(map[processKey]*process.Context),
	}
	if app.newProcess == nil {
		app.newProcess = newProcess
	}
	if app.environ == nil {
		app.environ = os.Environ
	}
	if app.readFile == nil {
		app.readFile = os.ReadFile
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	app.logger = log.NewWithOptions(app.stderr, log.Options{Prefix: "meadows"})
	return app
}

func newProcess(kind process.Kind, exe string) *process.Context {
	if exe == "" {
		return process.NewContext(kind)
	}
	return process.NewContext(kind,
		process.WithArgs0(exe),
		process.WithExecutable(func() (string, error) { return filepath.Abs(exe) }),
	)
}

// processFor returns the context for kind and exe, creating it on first use.
// Reusing it keeps environment publication to once per context.
func (a *App) processFor(kind process.Kind, exe string) *process.Context {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := processKey{kind, exe}
	pc, ok := a.processes[key]
	if !ok {
		pc = a.newProcess(kind, exe)
		a.processes[key] = pc
	}
	return pc
}

// provider creates a resolver that traces to stderr, keeping stdout for
// results.
func (a *App) provider(pc *process.Context) config.Provider {
	opts := []config.ResolverOption{
		config.WithTraceSink(newStyledSink(a.stderr)),
		config.WithLogger(a.logger),
	}
	return config.NewProvider(pc, append(opts, a.resolverOpts...)...)
}

// setupLogging replaces the fallback logger with one built from the meadows
// log configuration file, when enabled. A missing file is not reported.
func (a *App) setupLogging(ctx context.Context) {
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	if !a.configureLogs {
		return
	}

	pc := a.processFor(process.KindBinary, "")
	loader := logconf.NewLoader(pc, a.provider(pc), logconf.WithOutput(a.stdout, a.stderr))
	opts := logconf.NewOptions(pc)
	opts.LogStart = a.verbose
	opts.PrintPath = false

	logging, err := logconf.Init(ctx, loader, opts)
	if err != nil {
		var initErr *logconf.InitError
		if errors.As(err, &initErr) && !initErr.ShouldPrint() {
			return
		}
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(logSetupFailure(err), a.verbose))
		return
	}
	a.logger = logging.Logger
}
