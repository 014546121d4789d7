// SPDX-License-Identifier: MPL-2.0

package config

import (
	"iter"
	"path/filepath"

	"github.com/meadows/meadows/internal/process"
	"github.com/meadows/meadows/pkg/fspath"
	"github.com/meadows/meadows/pkg/platform"
)

type (
	// Candidate is a location that may hold a configuration file. It has not
	// been checked for existence.
	Candidate struct {
		Level Level
		Path  string
	}

	// FS is the filesystem access the planner and resolver need.
	FS interface {
		// IsFile reports whether path names an existing regular file.
		IsFile(path string) bool
		// Canonicalize returns the absolute, symlink-free form of an existing
		// path.
		Canonicalize(path string) (string, error)
	}

	// PlanInput holds everything the planner derives candidates from.
	PlanInput struct {
		Kind    process.Kind
		Pattern string
		Name    string
		// Paths are explicitly supplied files or directories, highest priority
		// first.
		Paths []string
		// Workdir is the working directory; empty skips the Instance level.
		Workdir string
		// ManifestDir is the build-manifest directory; empty skips the Package
		// level.
		ManifestDir string
		// ExecutableDir is the directory of the executable; empty skips the
		// Executable level.
		ExecutableDir string
		// Dirs looks up the Local, User and System directories; nil skips them.
		Dirs platform.Dirs
		// FS defaults to the OS filesystem.
		FS FS
	}

	// Planner produces the ordered candidate locations for one search.
	Planner struct {
		in     PlanInput
		file   string // {name}.config.toml
		bare   string // config.toml
		hidden string // .{name}/config.toml
		rel    string // {name}/config.toml
	}

	osFS struct{}
)

// packageSubdirs lists the directories below the build manifest searched for
// each executable kind.
var packageSubdirs = map[process.Kind][][]string{
	process.KindBinary:    {{"src"}, {"src", "bin"}},
	process.KindExample:   {{"examples"}},
	process.KindDocTest:   {{"src"}},
	process.KindUnitTest:  {{"src"}},
	process.KindIntegTest: {{"tests"}},
	process.KindBenchTest: {{"benches"}},
}

// NewPlanner validates the pattern and prepares the file names every level
// is built from. It fails with an InvalidPatternError before touching the
// filesystem.
func NewPlanner(in PlanInput) (*Planner, error) {
	file, err := SubstitutePattern(in.Pattern, in.Name)
	if err != nil {
		return nil, err
	}
	bare, err := SubstitutePattern(in.Pattern, "")
	if err != nil {
		return nil, err
	}
	if in.FS == nil {
		in.FS = osFS{}
	}
	return &Planner{
		in:     in,
		file:   file,
		bare:   bare,
		hidden: filepath.Join("."+in.Name, bare),
		rel:    filepath.Join(in.Name, bare),
	}, nil
}

// Candidates yields candidate locations, highest priority first. Candidates
// are produced lazily, so a consumer that stops early never causes later
// levels to be computed.
func (p *Planner) Candidates() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		emit := func(level Level, path string) bool {
			return yield(Candidate{Level: level, Path: path})
		}
		levels := []func(func(Level, string) bool) bool{
			p.pathLevel,
			p.instanceLevel,
			p.packageLevel,
			p.localLevel,
			p.userLevel,
			p.systemLevel,
			p.executableLevel,
		}
		for _, level := range levels {
			if !level(emit) {
				return
			}
		}
	}
}

func (p *Planner) binary() bool {
	return p.in.Kind == process.KindBinary
}

func (p *Planner) pathLevel(emit func(Level, string) bool) bool {
	for _, path := range p.in.Paths {
		if p.in.FS.IsFile(path) {
			if !emit(LevelPath, path) {
				return false
			}
			continue
		}
		if !emit(LevelPath, filepath.Join(path, p.file)) || !emit(LevelPath, filepath.Join(path, p.hidden)) {
			return false
		}
	}
	return true
}

func (p *Planner) instanceLevel(emit func(Level, string) bool) bool {
	if !p.binary() {
		return true
	}
	for dir := range fspath.Ancestors(p.in.Workdir) {
		if !emit(LevelInstance, filepath.Join(dir, p.file)) || !emit(LevelInstance, filepath.Join(dir, p.hidden)) {
			return false
		}
	}
	return true
}

func (p *Planner) packageLevel(emit func(Level, string) bool) bool {
	if p.in.ManifestDir == "" {
		return true
	}
	for _, sub := range packageSubdirs[p.in.Kind] {
		dir := filepath.Join(append([]string{p.in.ManifestDir}, sub...)...)
		if !emit(LevelPackage, filepath.Join(dir, p.file)) || !emit(LevelPackage, filepath.Join(dir, p.bare)) {
			return false
		}
	}
	return true
}

func (p *Planner) localLevel(emit func(Level, string) bool) bool {
	if !p.binary() || p.in.Dirs == nil {
		return true
	}
	if home, ok := p.in.Dirs.HomeDir(); ok {
		if !emit(LevelLocal, filepath.Join(home, p.file)) || !emit(LevelLocal, filepath.Join(home, p.hidden)) {
			return false
		}
	}
	if dir, ok := p.in.Dirs.ConfigLocalDir(); ok {
		return emit(LevelLocal, filepath.Join(dir, p.rel))
	}
	return true
}

func (p *Planner) userLevel(emit func(Level, string) bool) bool {
	if !p.binary() || p.in.Dirs == nil {
		return true
	}
	if dir, ok := p.in.Dirs.ConfigDir(); ok {
		return emit(LevelUser, filepath.Join(dir, p.rel))
	}
	return true
}

func (p *Planner) systemLevel(emit func(Level, string) bool) bool {
	if !p.binary() || p.in.Dirs == nil {
		return true
	}
	if dir, ok := p.in.Dirs.SystemConfigDir(); ok {
		return emit(LevelSystem, filepath.Join(dir, p.file)) && emit(LevelSystem, filepath.Join(dir, p.rel))
	}
	return true
}

func (p *Planner) executableLevel(emit func(Level, string) bool) bool {
	if !p.binary() || p.in.ExecutableDir == "" {
		return true
	}
	return emit(LevelExecutable, filepath.Join(p.in.ExecutableDir, p.file))
}

func (osFS) IsFile(path string) bool { return fspath.IsFile(path) }

func (osFS) Canonicalize(path string) (string, error) { return fspath.Canonicalize(path) }
