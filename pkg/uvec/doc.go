// SPDX-License-Identifier: MPL-2.0

// Package uvec provides Uvec, an insertion-ordered collection of unique
// elements.
//
// Every element needs a key, computed by a Keyer supplied at construction. A
// Keyer may decline to produce a key; such elements are never stored. This
// makes Uvec useful for collecting values while filtering and deduplicating
// them in one pass, for example paths keyed by their canonical form:
//
//	paths := uvec.WithKey[string, string](uvec.KeyFunc[string, string](func(p string) (string, bool) {
//		real, err := filepath.EvalSymlinks(p)
//		return real, err == nil
//	}))
//	paths.Push("beetlejuice") // false: does not exist
//	paths.Push(".")           // true
//	paths.Push(".")           // false: duplicate
//
// When elements are their own keys, use New or From.
package uvec
