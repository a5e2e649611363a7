// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package mergeinfo

import "github.com/emirpasic/gods/maps/treemap"

// Catalog maps a (target) path to its own Mergeinfo, used for batch
// operations across an entire subtree — e.g. computing mergeinfo for every
// child of a directory in one remote round trip. Like Mergeinfo it uses an
// ordered container so catalog traversal is deterministic without a sort
// step on every walk.
type Catalog struct {
	entries *treemap.Map
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: treemap.NewWithStringComparator()}
}

// Get returns the Mergeinfo recorded for path, if any.
func (c *Catalog) Get(path string) (*Mergeinfo, bool) {
	v, ok := c.entries.Get(normalizePath(path))
	if !ok {
		return nil, false
	}
	return v.(*Mergeinfo), true
}

// Set records mi for path. A nil or empty mi deletes the entry.
func (c *Catalog) Set(path string, mi *Mergeinfo) {
	path = normalizePath(path)
	if mi == nil || mi.Len() == 0 {
		c.entries.Remove(path)
		return
	}
	c.entries.Put(path, mi)
}

// Paths returns the recorded target paths in ascending lexicographic order.
func (c *Catalog) Paths() []string {
	keys := c.entries.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}

// Len reports the number of target paths recorded.
func (c *Catalog) Len() int { return c.entries.Size() }

// Each visits every target path in ascending order.
func (c *Catalog) Each(fn func(path string, mi *Mergeinfo)) {
	it := c.entries.Iterator()
	for it.Next() {
		fn(it.Key().(string), it.Value().(*Mergeinfo))
	}
}
