// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package shelf implements the shelf/checkpoint store (spec §4.7): named,
// versioned sequences of patches over a workspace, with
// save/apply/unapply/list/diff/drop/log/squash.
package shelf

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// Backend is what the shelf store needs from the workspace: the ordinary
// Workspace surface for the modification gate, plus the content-capture
// primitives a real on-disk implementation would back with unified diffs.
type Backend interface {
	workspace.Workspace
	ReadWorkingContents(ctx context.Context, path string) ([]byte, error)
	WriteWorkingContents(ctx context.Context, path string, data []byte) error
}

// PathSnapshot is one path's captured content as of a shelf-version save.
type PathSnapshot struct {
	Path    string
	Content []byte
	Props   map[string]string
}

// Version is one shelf-version: a patch (the path snapshots it captured)
// plus its mtime (spec §3).
type Version struct {
	Number int
	Paths  []PathSnapshot
	Mtime  time.Time
}

// Shelf is a named, versioned bundle in a workspace (spec §3).
type Shelf struct {
	Name          string
	WCRootAbspath string
	MaxVersion    int
	Revprops      map[string]string
	Versions      []*Version
}

// LogMessageKey is the Revprops key the store requires to be set before
// SaveNewVersion will commit a version (spec §4.7).
const LogMessageKey = "log_message"

// Store holds every shelf for one workspace root.
type Store struct {
	mu      sync.Mutex
	backend Backend
	shelves map[string]*Shelf
}

// NewStore returns an empty shelf store backed by backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend, shelves: make(map[string]*Shelf)}
}

func (s *Store) get(name string) *Shelf {
	sh, ok := s.shelves[name]
	if !ok {
		sh = &Shelf{Name: name, Revprops: make(map[string]string)}
		s.shelves[name] = sh
	}
	return sh
}

// SetRevprop records a shelf revprop (notably the log message), which
// must be set before the shelf's next version may be saved.
func (s *Store) SetRevprop(name, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(name).Revprops[key] = value
}

// List enumerates shelves sorted by the mtime of their newest version,
// ascending (spec §4.7).
func (s *Store) List() []*Shelf {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Shelf, 0, len(s.shelves))
	for _, sh := range s.shelves {
		out = append(out, sh)
	}
	sort.Slice(out, func(i, j int) bool {
		return newestMtime(out[i]).Before(newestMtime(out[j]))
	})
	return out
}

func newestMtime(sh *Shelf) time.Time {
	if len(sh.Versions) == 0 {
		return time.Time{}
	}
	return sh.Versions[len(sh.Versions)-1].Mtime
}

// Log returns every version of name, oldest first.
func (s *Store) Log(name string) ([]*Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shelves[name]
	if !ok {
		return nil, wcerr.NewErrWorkspaceCorrupt("no such shelf '%s'", name)
	}
	return sh.Versions, nil
}

// Drop removes a shelf and every one of its versions entirely.
func (s *Store) Drop(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.shelves, name)
}
