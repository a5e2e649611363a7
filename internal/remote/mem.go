// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"

	"github.com/antgroup/hugescm-wcmerge/internal/rangeset"
	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
)

// MemRemote is an in-memory reference Session used by tests. Revisions are
// recorded explicitly via AddRevision rather than derived from a working
// tree, since the engine only ever needs historical facts about specific
// paths.
type MemRemote struct {
	head     rangeset.Revnum
	entries  []*LogEntry
	files    map[string][]fileAt // path -> revisions in ascending order
	revprops map[rangeset.Revnum]map[string]string
}

type fileAt struct {
	rev     rangeset.Revnum
	kind    Kind
	content []byte
	props   map[string]string
}

// NewMemRemote returns an empty in-memory session.
func NewMemRemote() *MemRemote {
	return &MemRemote{files: make(map[string][]fileAt), revprops: make(map[rangeset.Revnum]map[string]string)}
}

// AddRevision records a fully-formed log entry and advances HEAD to its
// revision if higher. Changed-path node kinds recorded here drive
// CheckPath.
func (m *MemRemote) AddRevision(entry *LogEntry, revprops map[string]string) {
	m.entries = append(m.entries, entry)
	if entry.Revision > m.head {
		m.head = entry.Revision
	}
	m.revprops[entry.Revision] = revprops
	for _, cp := range entry.ChangedPaths {
		kind := cp.NodeKind
		if cp.Action == ActionDelete {
			kind = KindNone
		}
		m.files[cp.Path] = append(m.files[cp.Path], fileAt{rev: entry.Revision, kind: kind})
	}
}

// PutFileContent records file bytes/props visible at and after rev for
// relpath, for GetFile to serve.
func (m *MemRemote) PutFileContent(relpath string, rev rangeset.Revnum, content []byte, props map[string]string) {
	m.files[relpath] = append(m.files[relpath], fileAt{rev: rev, kind: KindFile, content: content, props: props})
}

func (m *MemRemote) history(path string) []fileAt {
	h := append([]fileAt(nil), m.files[path]...)
	sort.Slice(h, func(i, j int) bool { return h[i].rev < h[j].rev })
	return h
}

func (m *MemRemote) CheckPath(_ context.Context, relpath string, rev rangeset.Revnum) (Kind, error) {
	h := m.history(relpath)
	result := KindNone
	for _, f := range h {
		if f.rev > rev {
			break
		}
		result = f.kind
	}
	return result, nil
}

func (m *MemRemote) GetFile(_ context.Context, relpath string, rev rangeset.Revnum) (io.ReadCloser, map[string]string, error) {
	h := m.history(relpath)
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].rev <= rev && h[i].kind == KindFile {
			return io.NopCloser(bytes.NewReader(h[i].content)), h[i].props, nil
		}
	}
	return nil, nil, wcerr.NewErrPathNotFound(relpath, int64(rev))
}

func (m *MemRemote) GetLog(_ context.Context, paths []string, start, end rangeset.Revnum, limit int, needChangedPaths, _ bool, revprops []string, handler LogHandler) error {
	lo, hi := start, end
	descending := start >= end
	if descending {
		lo, hi = end, start
	}
	ordered := append([]*LogEntry(nil), m.entries...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Revision < ordered[j].Revision })
	if descending {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}
	count := 0
	for _, e := range ordered {
		if e.Revision < lo || e.Revision > hi {
			continue
		}
		if len(paths) > 0 && !touchesAny(e, paths) {
			continue
		}
		entry := *e
		if !needChangedPaths {
			entry.ChangedPaths = nil
		}
		if err := handler(&entry); err != nil {
			if wcerr.IsStopLog(err) {
				return nil
			}
			return err
		}
		count++
		if limit > 0 && count >= limit {
			return nil
		}
	}
	return nil
}

func touchesAny(e *LogEntry, paths []string) bool {
	for _, cp := range e.ChangedPaths {
		for _, p := range paths {
			if cp.Path == p || strings.HasPrefix(cp.Path, strings.TrimSuffix(p, "/")+"/") {
				return true
			}
		}
	}
	return false
}

func (m *MemRemote) GetDeletedRev(_ context.Context, path string, start, end rangeset.Revnum) (rangeset.Revnum, error) {
	ordered := append([]*LogEntry(nil), m.entries...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Revision < ordered[j].Revision })
	for _, e := range ordered {
		if e.Revision <= start || e.Revision > end {
			continue
		}
		for _, cp := range e.ChangedPaths {
			if cp.Path == path && (cp.Action == ActionDelete || cp.Action == ActionReplace) {
				return e.Revision, nil
			}
		}
	}
	return rangeset.InvalidRevnum, wcerr.NewErrPathNotFound(path, int64(end))
}

func (m *MemRemote) GetLocationSegments(_ context.Context, path string, peg, start, end rangeset.Revnum, handler SegmentHandler) error {
	h := m.history(path)
	segStart := start
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].rev > peg {
			continue
		}
		if h[i].rev < end {
			break
		}
		segStart = h[i].rev
	}
	return handler(&LocationSegment{RangeStart: segStart, RangeEnd: peg, Path: path})
}

func (m *MemRemote) RevProp(_ context.Context, rev rangeset.Revnum, name string) (string, error) {
	props, ok := m.revprops[rev]
	if !ok {
		return "", wcerr.NewErrPathNotFound("", int64(rev))
	}
	return props[name], nil
}

func (m *MemRemote) LatestRevnum(_ context.Context) (rangeset.Revnum, error) { return m.head, nil }
