// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/meadows/meadows/pkg/fspath"
)

type (
	// Dirs looks up well-known per-user and system directories. Every method
	// reports false when the directory cannot be determined.
	Dirs interface {
		// HomeDir returns the current user's home directory.
		HomeDir() (string, bool)
		// ConfigDir returns the user's roaming configuration directory:
		// $XDG_CONFIG_HOME or ~/.config on Linux, ~/Library/Application Support
		// on macOS, %APPDATA% on Windows.
		ConfigDir() (string, bool)
		// ConfigLocalDir returns the user's machine-local configuration
		// directory. It equals ConfigDir except on Windows, where it is
		// %LOCALAPPDATA%.
		ConfigLocalDir() (string, bool)
		// SystemConfigDir returns the system-wide configuration directory:
		// /etc on Unix, %PROGRAMDATA% on Windows. The directory must exist.
		SystemConfigDir() (string, bool)
	}

	// DirsSource supplies the OS lookups a Dirs implementation depends on.
	// Nil fields fall back to the real OS functions.
	DirsSource struct {
		GOOS        string
		Getenv      func(string) string
		UserHomeDir func() (string, error)
		IsDir       func(string) bool
	}

	unixDirs struct {
		src DirsSource
	}

	windowsDirs struct {
		src DirsSource
	}
)

// NewDirs returns the Dirs implementation for the running OS.
func NewDirs() Dirs {
	return NewDirsFrom(DirsSource{})
}

// NewDirsFrom returns the Dirs implementation selected by src.GOOS, using the
// lookups in src. This is a pure constructor that lets tests exercise every
// platform branch without touching process state.
func NewDirsFrom(src DirsSource) Dirs {
	if src.GOOS == "" {
		src.GOOS = runtime.GOOS
	}
	if src.Getenv == nil {
		src.Getenv = os.Getenv
	}
	if src.UserHomeDir == nil {
		src.UserHomeDir = os.UserHomeDir
	}
	if src.IsDir == nil {
		src.IsDir = fspath.IsDir
	}
	if src.GOOS == Windows {
		return windowsDirs{src: src}
	}
	return unixDirs{src: src}
}

func (d unixDirs) HomeDir() (string, bool) {
	return homeDir(d.src)
}

func (d unixDirs) ConfigDir() (string, bool) {
	if d.src.GOOS == Darwin {
		home, ok := d.HomeDir()
		if !ok {
			return "", false
		}
		return filepath.Join(home, "Library", "Application Support"), true
	}
	if xdg := strings.TrimSpace(d.src.Getenv("XDG_CONFIG_HOME")); filepath.IsAbs(xdg) {
		return xdg, true
	}
	home, ok := d.HomeDir()
	if !ok {
		return "", false
	}
	return filepath.Join(home, ".config"), true
}

func (d unixDirs) ConfigLocalDir() (string, bool) {
	return d.ConfigDir()
}

func (d unixDirs) SystemConfigDir() (string, bool) {
	const etc = "/etc"
	if !d.src.IsDir(etc) {
		return "", false
	}
	return etc, true
}

func (d windowsDirs) HomeDir() (string, bool) {
	return homeDir(d.src)
}

func (d windowsDirs) ConfigDir() (string, bool) {
	return d.knownFolder("APPDATA", "Roaming")
}

func (d windowsDirs) ConfigLocalDir() (string, bool) {
	return d.knownFolder("LOCALAPPDATA", "Local")
}

func (d windowsDirs) SystemConfigDir() (string, bool) {
	dir := strings.TrimSpace(d.src.Getenv("PROGRAMDATA"))
	if dir == "" || !d.src.IsDir(dir) {
		return "", false
	}
	return dir, true
}

// knownFolder reads an AppData folder from the environment, falling back to
// its default location below the user profile.
func (d windowsDirs) knownFolder(envVar, fallback string) (string, bool) {
	if dir := strings.TrimSpace(d.src.Getenv(envVar)); dir != "" {
		return dir, true
	}
	home, ok := d.HomeDir()
	if !ok {
		return "", false
	}
	return filepath.Join(home, "AppData", fallback), true
}

func homeDir(src DirsSource) (string, bool) {
	home, err := src.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "", false
	}
	return home, true
}
