// SPDX-License-Identifier: MPL-2.0

package logconf

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/meadows/meadows/internal/config"
	"github.com/meadows/meadows/internal/process"
	"github.com/meadows/meadows/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
	"mvdan.cc/sh/v3/shell"
)

//go:embed log_schema.cue
var schema []byte

type (
	// Settings are the validated contents of a log configuration file.
	Settings struct {
		Title      string `json:"title,omitempty"`
		Level      string `json:"level"`
		Formatter  string `json:"formatter"`
		Prefix     string `json:"prefix,omitempty"`
		Timestamp  bool   `json:"timestamp"`
		TimeFormat string `json:"time_format,omitempty"`
		Caller     bool   `json:"caller"`
		Output     string `json:"output"`
	}

	// Loaded is a located and validated log configuration file.
	Loaded struct {
		Path     string
		Settings Settings
	}

	// Loader finds and reads log configuration files for one process.
	Loader struct {
		pc       *process.Context
		finder   config.Provider
		stdout   io.Writer
		stderr   io.Writer
		args     []string
		readFile func(string) ([]byte, error)
	}

	// LoaderOption customizes a Loader.
	LoaderOption func(*Loader)
)

// defaultSettings are the schema defaults, used when no file exists.
var defaultSettings = sync.OnceValues(func() (Settings, error) {
	s, err := cueutil.Decode[Settings](schema, map[string]any{}, "#LogConfig")
	if err != nil {
		return Settings{}, err
	}
	return *s, nil
})

// DefaultSettings returns the settings used when no file is found.
func DefaultSettings() Settings {
	s, err := defaultSettings()
	if err != nil {
		panic(fmt.Sprintf("logconf: embedded schema: %v", err))
	}
	return s
}

// WithOutput sets the writers used for "stdout" and "stderr" output and for
// the loaded-path note. The defaults are os.Stdout and os.Stderr.
func WithOutput(stdout, stderr io.Writer) LoaderOption {
	return func(l *Loader) {
		l.stdout = stdout
		l.stderr = stderr
	}
}

// WithArgs sets the command-line arguments listed in the start message. The
// default is os.Args[1:].
func WithArgs(args []string) LoaderOption {
	return func(l *Loader) { l.args = args }
}

// NewLoader creates a Loader that locates files through finder.
func NewLoader(pc *process.Context, finder config.Provider, opts ...LoaderOption) *Loader {
	l := &Loader{
		pc:       pc,
		finder:   finder,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		readFile: os.ReadFile,
	}
	if len(os.Args) > 1 {
		l.args = os.Args[1:]
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load finds the highest-priority log configuration file, publishing the
// process variables first, and returns its validated settings.
func (l *Loader) Load(ctx context.Context, opts Options) (*Loaded, error) {
	match, err := l.finder.Find(ctx, config.FindOptions{
		Pattern:    DefaultPattern,
		Debug:      opts.Debug,
		Name:       opts.Name,
		PathList:   opts.Paths,
		PublishEnv: true,
	})
	if err != nil {
		return nil, &InitError{Op: OpFind, Err: err}
	}
	path := match.Path

	data, err := l.readFile(path)
	if err != nil {
		return nil, &InitError{Op: OpRead, Path: path, Err: err}
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, &InitError{Op: OpRead, Path: path, Err: err}
	}

	expanded, err := shell.Expand(string(data), l.pc.Env().Lookup())
	if err != nil {
		return nil, &InitError{Op: OpExpand, Path: path, Err: err}
	}

	var raw map[string]any
	if err := toml.Unmarshal([]byte(expanded), &raw); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			err = fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return nil, &InitError{Op: OpDecode, Path: path, Err: err}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	settings, err := cueutil.Decode[Settings](schema, raw, "#LogConfig", cueutil.WithFilename(path))
	if err != nil {
		return nil, &InitError{Op: OpValidate, Path: path, Err: err}
	}
	return &Loaded{Path: path, Settings: *settings}, nil
}
