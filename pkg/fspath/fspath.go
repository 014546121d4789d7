// SPDX-License-Identifier: MPL-2.0

// Package fspath provides small path helpers shared by the configuration
// resolver: file probing, canonicalization, ancestor walks and path-list
// splitting.
package fspath

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
)

// IsFile reports whether path names an existing regular file, following
// symlinks. Any error, including permission problems, counts as "no".
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Canonicalize returns the absolute path of an existing file or directory
// with every symlink resolved. Two paths that refer to the same file through
// different spellings or links have the same canonical form.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks: %w", err)
	}
	return real, nil
}

// Ancestors yields dir followed by each of its parent directories up to and
// including the filesystem root.
func Ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if dir == "" {
			return
		}
		cur := filepath.Clean(dir)
		for {
			if !yield(cur) {
				return
			}
			parent := filepath.Dir(cur)
			if parent == cur {
				return
			}
			cur = parent
		}
	}
}

// SplitList splits a list of paths joined by the OS-specific
// os.PathListSeparator, dropping empty elements.
func SplitList(list string) []string {
	parts := filepath.SplitList(list)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
