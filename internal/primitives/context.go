// Package primitives provides foundational data structures for the microstep engine.
// All implementations use only the Go standard library for zero external dependencies.
// Context is an immutable snapshot of extended state: every mutator returns a new
// Context and the receiver is never altered, so a committed snapshot can be shared
// freely without coordination.
//
//go:generate go test ./...
package primitives

import (
	"maps"
	"reflect"
)

// Context is the extended-state snapshot that accompanies a finite-state value.
// The zero value is a usable empty snapshot. Callers must treat a Context as
// read-only; With, Merge, Without and Clone return fresh snapshots.
type Context map[string]any

// NewContext creates a Context from initial data. The input map is copied,
// so later changes to it do not leak into the snapshot.
func NewContext(data map[string]any) Context {
	if len(data) == 0 {
		return Context{}
	}
	c := make(Context, len(data))
	maps.Copy(c, data)
	return c
}

// Get retrieves a value by key.
func (c Context) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// Value retrieves a value by key, returning nil if absent.
func (c Context) Value(key string) any {
	return c[key]
}

// With returns a new snapshot with key set to val.
func (c Context) With(key string, val any) Context {
	next := c.Clone()
	next[key] = val
	return next
}

// Merge returns a new snapshot with all entries of data applied as one
// shallow update over the receiver.
func (c Context) Merge(data map[string]any) Context {
	if len(data) == 0 {
		return c
	}
	next := c.Clone()
	maps.Copy(next, data)
	return next
}

// Without returns a new snapshot with key removed.
func (c Context) Without(key string) Context {
	next := c.Clone()
	delete(next, key)
	return next
}

// Clone returns a shallow copy of the snapshot.
func (c Context) Clone() Context {
	next := make(Context, len(c)+1)
	maps.Copy(next, c)
	return next
}

// Snapshot returns a serializable plain-map copy of the context data.
// The returned map is a defensive copy and modifications will not affect
// the snapshot.
func (c Context) Snapshot() map[string]any {
	snap := make(map[string]any, len(c))
	maps.Copy(snap, c)
	return snap
}

// Equal reports structural equality of two snapshots.
func (c Context) Equal(other Context) bool {
	if len(c) != len(other) {
		return false
	}
	if len(c) == 0 {
		return true
	}
	return reflect.DeepEqual(map[string]any(c), map[string]any(other))
}
