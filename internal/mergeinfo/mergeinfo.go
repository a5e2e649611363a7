// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package mergeinfo implements the per-path merged-revision-range map
// (spec §3/§4.4), its parse/serialise grammar (spec §6), and the catalog of
// mergeinfo maps keyed by target path used for batch operations.
package mergeinfo

import (
	"strings"

	"github.com/emirpasic/gods/maps/treemap"

	"github.com/antgroup/hugescm-wcmerge/internal/rangeset"
)

// Mergeinfo maps an absolute repository path to the range sequence of
// revisions merged into it. Paths with no ranges are never stored: an
// empty rangeset.List is not a permitted value (spec §3 invariant).
//
// The backing container is an ordered tree map rather than a bare Go map
// plus sort-on-read, per REDESIGN FLAGS: mergeinfo is walked by path order
// far more often than it is mutated.
type Mergeinfo struct {
	paths *treemap.Map
}

// New returns an empty Mergeinfo.
func New() *Mergeinfo {
	return &Mergeinfo{paths: treemap.NewWithStringComparator()}
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// Get returns the range list recorded for path, if any.
func (m *Mergeinfo) Get(path string) (rangeset.List, bool) {
	v, ok := m.paths.Get(normalizePath(path))
	if !ok {
		return nil, false
	}
	return v.(rangeset.List), true
}

// Set records rl for path. An empty rl deletes the path instead of storing
// an empty range list, preserving the "no empty values" invariant.
func (m *Mergeinfo) Set(path string, rl rangeset.List) {
	path = normalizePath(path)
	if len(rl) == 0 {
		m.paths.Remove(path)
		return
	}
	m.paths.Put(path, rl)
}

// Delete removes path's entry entirely.
func (m *Mergeinfo) Delete(path string) {
	m.paths.Remove(normalizePath(path))
}

// Paths returns the recorded paths in ascending lexicographic order.
func (m *Mergeinfo) Paths() []string {
	keys := m.paths.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}

// Len reports the number of paths recorded.
func (m *Mergeinfo) Len() int { return m.paths.Size() }

// Each visits every path in ascending order.
func (m *Mergeinfo) Each(fn func(path string, rl rangeset.List)) {
	it := m.paths.Iterator()
	for it.Next() {
		fn(it.Key().(string), it.Value().(rangeset.List))
	}
}

// Clone returns an independent deep copy.
func (m *Mergeinfo) Clone() *Mergeinfo {
	out := New()
	m.Each(func(path string, rl rangeset.List) {
		out.Set(path, rl.Clone())
	})
	return out
}

// Equal reports whether m and o record the same paths mapped to equal
// range lists.
func (m *Mergeinfo) Equal(o *Mergeinfo) bool {
	if m.Len() != o.Len() {
		return false
	}
	equal := true
	m.Each(func(path string, rl rangeset.List) {
		orl, ok := o.Get(path)
		if !ok || len(rl) != len(orl) {
			equal = false
			return
		}
		for i := range rl {
			if !rl[i].Equal(orl[i]) {
				equal = false
				return
			}
		}
	})
	return equal
}
