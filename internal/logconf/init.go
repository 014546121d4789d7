// SPDX-License-Identifier: MPL-2.0

package logconf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/meadows/meadows/internal/config"
	"github.com/meadows/meadows/internal/process"

	"github.com/charmbracelet/log"
)

// Logging is the outcome of a successful initialization.
type Logging struct {
	Logger   *log.Logger
	Settings Settings
	// Path is the loaded file, or empty when defaults are in use.
	Path string
}

// global holds the once-per-process initialization result.
var global struct {
	once    sync.Once
	logging *Logging
	err     error
}

// Init configures logging for a binary executable. It should run as early as
// possible. Only the first call does any work; later calls return its
// result. On failure the process should keep running, printing the error if
// InitError.ShouldPrint reports true.
func Init(ctx context.Context, l *Loader, opts Options) (*Logging, error) {
	if opts.Kind != process.KindBinary {
		return nil, fmt.Errorf("%w: Init called for %s", ErrKindMismatch, opts.Kind)
	}
	return initOnce(func() (*Logging, error) {
		return l.Configure(ctx, opts)
	})
}

// InitTest configures logging for an example or test executable. It may be
// called from every test; only the first call does any work. A missing file
// is not an error: default settings are used instead.
func InitTest(ctx context.Context, l *Loader, opts Options) (*Logging, error) {
	if opts.Kind == process.KindBinary {
		return nil, fmt.Errorf("%w: InitTest called for %s", ErrKindMismatch, opts.Kind)
	}
	return initOnce(func() (*Logging, error) {
		logging, err := l.Configure(ctx, opts)
		if errors.Is(err, config.ErrFileNotFound) {
			return l.configureDefaults(opts)
		}
		return logging, err
	})
}

func initOnce(configure func() (*Logging, error)) (*Logging, error) {
	global.once.Do(func() {
		global.logging, global.err = configure()
		if global.err == nil {
			log.SetDefault(global.logging.Logger)
		}
	})
	return global.logging, global.err
}

// Configure loads the log configuration file and builds a logger from it.
// Unlike Init it has no process-wide effect.
func (l *Loader) Configure(ctx context.Context, opts Options) (*Logging, error) {
	loaded, err := l.Load(ctx, opts)
	if err != nil {
		return nil, err
	}

	if opts.PrintPath {
		note := fmt.Sprintf("Loaded configuration file `%s`", loaded.Path)
		if loaded.Settings.Title != "" {
			note += fmt.Sprintf(" titled %q", loaded.Settings.Title)
		}
		if err := l.note(note); err != nil {
			return nil, &InitError{Op: OpRead, Path: loaded.Path, Err: err}
		}
	}

	return l.finish(loaded.Settings, loaded.Path, opts)
}

func (l *Loader) configureDefaults(opts Options) (*Logging, error) {
	return l.finish(DefaultSettings(), "", opts)
}

func (l *Loader) finish(settings Settings, path string, opts Options) (*Logging, error) {
	logger, err := settings.NewLogger(l.stdout, l.stderr)
	if err != nil {
		return nil, &InitError{Op: OpValidate, Path: path, Err: err}
	}
	if opts.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	if opts.LogStart {
		logger.Info("\n" + l.StartMessage(path, opts.TextWidth))
	}
	return &Logging{Logger: logger, Settings: settings, Path: path}, nil
}

// note writes "{invocation name}: Note: {msg}" to stdout.
func (l *Loader) note(msg string) error {
	_, err := fmt.Fprintf(l.stdout, "%s: Note: %s\n", l.pc.InvocationName(), msg)
	return err
}

// StartMessage describes the running process inside a '#' fence of the
// given width.
func (l *Loader) StartMessage(configPath string, width int) string {
	var b strings.Builder
	quoted := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return fmt.Sprintf("%q", s)
	}
	workdir, _ := l.pc.Workdir()

	fmt.Fprintf(&b, "Process started: %s\n\n", l.pc.InvocationName())
	fmt.Fprintf(&b, "Log-configuration file: %s\n\n", quoted(configPath))
	fmt.Fprintf(&b, "Current directory: %s\n", quoted(workdir))
	fmt.Fprintf(&b, "Invocation path  : %s\n", quoted(l.pc.InvocationPath()))
	fmt.Fprintf(&b, "Path             : %s\n", quoted(l.pc.CanonicalPath()))
	if len(l.args) > 0 {
		b.WriteString("\nArguments:\n\n")
		for _, arg := range l.args {
			fmt.Fprintf(&b, "- %q\n", arg)
		}
	}
	return Fence(strings.TrimSuffix(b.String(), "\n"), '#', width)
}

// Fence frames text with rows of c and prefixes every line with c and a
// space:
//
//	#########
//	#
//	# text
//	#
//	#########
func Fence(text string, c rune, width int) string {
	mark := string(c)
	row := strings.Repeat(mark, max(width-1, 1))

	var b strings.Builder
	b.WriteString(row + "\n" + mark + "\n")
	for line := range strings.Lines(text) {
		b.WriteString(mark + " " + strings.TrimSuffix(line, "\n") + "\n")
	}
	b.WriteString(mark + "\n" + row)
	return b.String()
}

