// SPDX-License-Identifier: MPL-2.0

package uvec

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrIndexOutOfRange is returned when an index lies outside the valid range
// for the requested operation.
var ErrIndexOutOfRange = errors.New("index out of range")

type (
	// Keyer computes the uniqueness key of a value. The boolean result reports
	// whether a key could be computed; values without a key are never stored.
	Keyer[K comparable, V any] interface {
		Key(v V) (K, bool)
	}

	// KeyFunc adapts an ordinary function to the Keyer interface.
	KeyFunc[K comparable, V any] func(v V) (K, bool)

	// Uvec is an ordered collection that holds unique elements only.
	//
	// Uniqueness is decided by the key of each element, not by the element
	// itself. The keys of all stored elements are kept in a set, and the set
	// and the element slice are always updated together.
	//
	// The zero value is not usable; construct a Uvec with WithKey, New or From.
	Uvec[K comparable, V any] struct {
		vals  []V
		keys  []K
		seen  map[K]struct{}
		keyer Keyer[K, V]
	}

	identity[T comparable] struct{}
)

// Key calls f(v).
func (f KeyFunc[K, V]) Key(v V) (K, bool) {
	return f(v)
}

func (identity[T]) Key(v T) (T, bool) {
	return v, true
}

// WithKey creates an empty Uvec that derives keys with keyer.
func WithKey[K comparable, V any](keyer Keyer[K, V]) *Uvec[K, V] {
	return &Uvec[K, V]{
		seen:  make(map[K]struct{}),
		keyer: keyer,
	}
}

// New creates an empty Uvec whose elements are their own keys.
func New[T comparable]() *Uvec[T, T] {
	return WithKey[T, T](identity[T]{})
}

// From creates a Uvec whose elements are their own keys and pushes values in
// order. Duplicates are dropped, so From(1, 2, 3, 2, 1) holds [1 2 3].
func From[T comparable](values ...T) *Uvec[T, T] {
	u := New[T]()
	u.Extend(values...)
	return u
}

// Len returns the number of elements.
func (u *Uvec[K, V]) Len() int {
	return len(u.vals)
}

// IsEmpty reports whether the collection holds no elements.
func (u *Uvec[K, V]) IsEmpty() bool {
	return len(u.vals) == 0
}

// At returns the element at index i. It panics if i is out of range, like
// indexing a slice.
func (u *Uvec[K, V]) At(i int) V {
	return u.vals[i]
}

// Values returns a copy of the elements in order.
func (u *Uvec[K, V]) Values() []V {
	return slices.Clone(u.vals)
}

// All returns an iterator over index-element pairs in order.
func (u *Uvec[K, V]) All() iter.Seq2[int, V] {
	return slices.All(u.vals)
}

// Contains reports whether an element with the same key as v is stored.
// It returns false if no key can be computed for v.
func (u *Uvec[K, V]) Contains(v V) bool {
	key, ok := u.keyer.Key(v)
	if !ok {
		return false
	}
	_, found := u.seen[key]
	return found
}

// Push appends v and reports whether it was stored. It is rejected without
// any mutation if no key can be computed for v or if the key is already
// present.
func (u *Uvec[K, V]) Push(v V) bool {
	key, ok := u.admit(v)
	if !ok {
		return false
	}
	u.vals = append(u.vals, v)
	u.keys = append(u.keys, key)
	return true
}

// Insert stores v at index i, shifting later elements to the right. The
// acceptance rule is the same as for Push. It fails with ErrIndexOutOfRange
// if i is negative or greater than Len.
func (u *Uvec[K, V]) Insert(i int, v V) (bool, error) {
	if i < 0 || i > len(u.vals) {
		return false, fmt.Errorf("insert at %d with length %d: %w", i, len(u.vals), ErrIndexOutOfRange)
	}
	key, ok := u.admit(v)
	if !ok {
		return false, nil
	}
	u.vals = slices.Insert(u.vals, i, v)
	u.keys = slices.Insert(u.keys, i, key)
	return true, nil
}

// Remove deletes and returns the element at index i, shifting later elements
// to the left, and frees its key. It fails with ErrIndexOutOfRange if i is
// not a valid index.
func (u *Uvec[K, V]) Remove(i int) (V, error) {
	if i < 0 || i >= len(u.vals) {
		var zero V
		return zero, fmt.Errorf("remove at %d with length %d: %w", i, len(u.vals), ErrIndexOutOfRange)
	}
	v, key := u.vals[i], u.keys[i]
	u.vals = slices.Delete(u.vals, i, i+1)
	u.keys = slices.Delete(u.keys, i, i+1)
	u.forget(key)
	return v, nil
}

// Pop removes and returns the last element. The boolean result is false if
// the collection is empty.
func (u *Uvec[K, V]) Pop() (V, bool) {
	n := len(u.vals)
	if n == 0 {
		var zero V
		return zero, false
	}
	v, key := u.vals[n-1], u.keys[n-1]
	var zero V
	u.vals[n-1] = zero
	u.vals = u.vals[:n-1]
	u.keys = u.keys[:n-1]
	u.forget(key)
	return v, true
}

// Extend pushes every value in order. Values rejected by Push are dropped.
func (u *Uvec[K, V]) Extend(values ...V) {
	for _, v := range values {
		u.Push(v)
	}
}

// ExtendSeq pushes every value produced by seq in order. Values rejected by
// Push are dropped.
func (u *Uvec[K, V]) ExtendSeq(seq iter.Seq[V]) {
	for v := range seq {
		u.Push(v)
	}
}

// Clear removes all elements and keys.
func (u *Uvec[K, V]) Clear() {
	clear(u.vals)
	u.vals = u.vals[:0]
	u.keys = u.keys[:0]
	clear(u.seen)
}

// String formats the elements like a slice.
func (u *Uvec[K, V]) String() string {
	return fmt.Sprint(u.vals)
}

// admit computes the key of v and records it if it is new.
func (u *Uvec[K, V]) admit(v V) (K, bool) {
	key, ok := u.keyer.Key(v)
	if !ok {
		return key, false
	}
	if _, dup := u.seen[key]; dup {
		return key, false
	}
	u.seen[key] = struct{}{}
	return key, true
}

// forget drops key from the seen-set.
//
// INVARIANT: every stored element has its key in the set. A missing key means
// the element slice and the set diverged, which no sequence of public calls
// can produce.
func (u *Uvec[K, V]) forget(key K) {
	if _, ok := u.seen[key]; !ok {
		panic(fmt.Sprintf("uvec: key %v of a stored element is missing from the set", key))
	}
	delete(u.seen, key)
}

// Equal reports whether a and b hold equal elements in the same order.
// Keyers are not compared.
func Equal[K comparable, V comparable](a, b *Uvec[K, V]) bool {
	return slices.Equal(a.vals, b.vals)
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[K1, K2 comparable, V1, V2 any](a *Uvec[K1, V1], b *Uvec[K2, V2], eq func(V1, V2) bool) bool {
	return slices.EqualFunc(a.vals, b.vals, eq)
}

// Compare compares the elements of a and b lexicographically, like
// slices.Compare.
func Compare[K comparable, V cmp.Ordered](a, b *Uvec[K, V]) int {
	return slices.Compare(a.vals, b.vals)
}
