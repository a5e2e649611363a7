// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package mergeinfo

import "github.com/antgroup/hugescm-wcmerge/internal/rangeset"

func unionPaths(a, b *Mergeinfo) []string {
	seen := make(map[string]struct{}, a.Len()+b.Len())
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	a.Each(func(path string, _ rangeset.List) { add(path) })
	b.Each(func(path string, _ rangeset.List) { add(path) })
	return out
}

// Merge returns the per-path union of a and b (spec §4.4's rangelist_merge
// applied path by path across a mergeinfo map).
func Merge(a, b *Mergeinfo) *Mergeinfo {
	out := New()
	for _, path := range unionPaths(a, b) {
		ra, _ := a.Get(path)
		rb, _ := b.Get(path)
		switch {
		case ra == nil:
			out.Set(path, rb)
		case rb == nil:
			out.Set(path, ra)
		default:
			out.Set(path, rangeset.Merge(ra, rb))
		}
	}
	return out
}

// Intersect returns only the paths and revisions present in both a and b.
func Intersect(a, b *Mergeinfo, considerInheritance bool) *Mergeinfo {
	out := New()
	a.Each(func(path string, ra rangeset.List) {
		rb, ok := b.Get(path)
		if !ok {
			return
		}
		out.Set(path, rangeset.Intersect(ra, rb, considerInheritance))
	})
	return out
}

// Remove returns whiteboard with every (path, revision) present in eraser
// taken out. Paths absent from eraser are copied through unchanged.
func Remove(eraser, whiteboard *Mergeinfo, considerInheritance bool) *Mergeinfo {
	out := New()
	whiteboard.Each(func(path string, rw rangeset.List) {
		re, ok := eraser.Get(path)
		if !ok {
			out.Set(path, rw.Clone())
			return
		}
		out.Set(path, rangeset.Remove(re, rw, considerInheritance))
	})
	return out
}

// Diff returns the paths/revisions present in from but not to (deleted) and
// in to but not from (added).
func Diff(from, to *Mergeinfo, considerInheritance bool) (deleted, added *Mergeinfo) {
	deleted = Remove(to, from, considerInheritance)
	added = Remove(from, to, considerInheritance)
	return deleted, added
}
