// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"
	"os"

	"github.com/meadows/meadows/internal/process"
	"github.com/meadows/meadows/pkg/fspath"
	"github.com/meadows/meadows/pkg/uvec"

	"github.com/charmbracelet/log"
)

const (
	// FindFirst stops at the highest-priority existing file.
	FindFirst Mode = iota
	// FindAll returns every existing file, highest priority first.
	FindAll
)

type (
	// Mode selects between a single result and all results.
	Mode int

	// Match is an existing configuration file and the level it was found at.
	Match struct {
		Level Level
		Path  string
	}

	// FindOptions are the inputs of a single search.
	FindOptions struct {
		// Pattern is the file-name pattern; it must contain Placeholder.
		// Empty means DefaultPattern.
		Pattern string
		// Debug traces every candidate to the resolver's TraceSink. In debug
		// mode the full candidate list is always walked.
		Debug bool
		// Name is substituted into Pattern. Empty means the context's
		// SearchName.
		Name string
		// Paths are explicit files or directories searched first.
		Paths []string
		// PathList is an os.PathListSeparator-joined list appended to Paths.
		PathList string
		// PublishEnv publishes the process environment variables before the
		// search. This happens once per process.Context.
		PublishEnv bool
	}

	// Resolver searches for configuration files on behalf of one process. It
	// holds no mutable state and is safe for concurrent use.
	Resolver struct {
		pc     *process.Context
		fs     FS
		trace  TraceSink
		logger *log.Logger
	}

	// ResolverOption customizes a Resolver.
	ResolverOption func(*Resolver)
)

// WithFS replaces the filesystem used to probe candidates.
func WithFS(fs FS) ResolverOption {
	return func(r *Resolver) { r.fs = fs }
}

// WithTraceSink sets where debug traces go. The default writes to stdout.
func WithTraceSink(sink TraceSink) ResolverOption {
	return func(r *Resolver) { r.trace = sink }
}

// WithLogger sets a logger for debug-level diagnostics.
func WithLogger(logger *log.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a Resolver for the given process.
func NewResolver(pc *process.Context, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		pc:    pc,
		fs:    osFS{},
		trace: NewWriterSink(os.Stdout),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// String returns the mode name.
func (m Mode) String() string {
	if m == FindAll {
		return "find-all"
	}
	return "find-first"
}

// Find returns the highest-priority existing configuration file.
func (r *Resolver) Find(ctx context.Context, opts FindOptions) (Match, error) {
	matches, err := r.Resolve(ctx, opts, FindFirst)
	if err != nil {
		return Match{}, err
	}
	return matches[0], nil
}

// FindAll returns every existing configuration file, highest priority first,
// with files reachable through several candidates reported once.
func (r *Resolver) FindAll(ctx context.Context, opts FindOptions) ([]Match, error) {
	return r.Resolve(ctx, opts, FindAll)
}

// Resolve runs one search. On success the result holds at least one match;
// in FindFirst mode exactly one.
//
// Errors: an InvalidPatternError for a pattern without placeholder,
// ErrFileNotFound when no candidate exists, and wrapped I/O errors when
// trace output or environment publication fails.
func (r *Resolver) Resolve(ctx context.Context, opts FindOptions, mode Mode) ([]Match, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("resolve configuration file canceled: %w", ctx.Err())
	default:
	}

	sink := NopSink
	if opts.Debug {
		sink = r.trace
	}

	workdir, hasWorkdir := r.pc.Workdir()
	if err := r.traceHeader(sink, workdir, hasWorkdir); err != nil {
		return nil, err
	}

	if opts.PublishEnv {
		if err := r.publishEnv(sink); err != nil {
			return nil, err
		}
	}

	planner, err := NewPlanner(r.planInput(opts, workdir))
	if err != nil {
		return nil, err
	}

	var matches []Match
	if mode == FindFirst && !opts.Debug {
		matches = r.probeFirst(planner)
	} else {
		matches, err = r.probeAll(planner, sink)
		if err != nil {
			return nil, err
		}
		if mode == FindFirst && len(matches) > 0 {
			matches = matches[:1]
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: pattern %q, name %q", ErrFileNotFound, planner.in.Pattern, planner.in.Name)
	}
	if r.logger != nil {
		for _, m := range matches {
			r.logger.Debug("resolved configuration file", "level", m.Level, "path", m.Path, "mode", mode)
		}
	}
	return matches, nil
}

func (r *Resolver) planInput(opts FindOptions, workdir string) PlanInput {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	name := opts.Name
	if name == "" {
		name = r.pc.SearchName()
	}
	paths := append([]string(nil), opts.Paths...)
	if opts.PathList != "" {
		paths = append(paths, fspath.SplitList(opts.PathList)...)
	}
	manifestDir, _ := r.pc.ManifestDir()

	return PlanInput{
		Kind:          r.pc.Kind(),
		Pattern:       pattern,
		Name:          name,
		Paths:         paths,
		Workdir:       workdir,
		ManifestDir:   manifestDir,
		ExecutableDir: r.pc.InvocationDir(),
		Dirs:          r.pc.Dirs(),
		FS:            r.fs,
	}
}

// probeFirst returns the first existing candidate. Later candidates are never
// generated.
func (r *Resolver) probeFirst(planner *Planner) []Match {
	for c := range planner.Candidates() {
		if r.fs.IsFile(c.Path) {
			return []Match{{Level: c.Level, Path: c.Path}}
		}
	}
	return nil
}

// probeAll walks every candidate, tracing each one, and keeps existing files
// deduplicated by canonical path.
func (r *Resolver) probeAll(planner *Planner, sink TraceSink) ([]Match, error) {
	byCanonical := uvec.KeyFunc[string, Match](func(m Match) (string, bool) {
		canonical, err := r.fs.Canonicalize(m.Path)
		return canonical, err == nil
	})
	files := uvec.WithKey[string, Match](byCanonical)

	for c := range planner.Candidates() {
		exists := r.fs.IsFile(c.Path)
		if err := sink.Candidate(c, exists); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTraceOutput, err)
		}
		if exists {
			files.Push(Match{Level: c.Level, Path: c.Path})
		}
	}
	return files.Values(), nil
}

func (r *Resolver) traceHeader(sink TraceSink, workdir string, hasWorkdir bool) error {
	if !hasWorkdir {
		workdir = "-"
	}
	if err := sink.Note(fmt.Sprintf("Checking paths for %s executable", r.pc.Kind())); err != nil {
		return fmt.Errorf("%w: %w", ErrTraceOutput, err)
	}
	if err := sink.Note("Current directory: " + workdir); err != nil {
		return fmt.Errorf("%w: %w", ErrTraceOutput, err)
	}
	return nil
}

func (r *Resolver) publishEnv(sink TraceSink) error {
	var traceErr error
	report := func(name, value string) {
		if traceErr == nil {
			traceErr = sink.Note(fmt.Sprintf("Setting `%s` to %q", name, value))
		}
	}
	if err := r.pc.Env().Publish(report); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishEnv, err)
	}
	if traceErr != nil {
		return fmt.Errorf("%w: %w", ErrTraceOutput, traceErr)
	}
	return nil
}
