// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package shelf

import (
	"context"
	"time"

	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
	"github.com/antgroup/hugescm-wcmerge/internal/wclog"
)

// SaveNewVersion captures the current local modifications under paths as
// shelf-version max_version+1 (spec §4.7). It aborts if no log message
// has been set via SetRevprop, per the spec's "a resolver that sets no
// log message aborts the save" rule.
func (s *Store) SaveNewVersion(ctx context.Context, name string, paths []string) (*Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh := s.get(name)
	if sh.Revprops[LogMessageKey] == "" {
		return nil, wcerr.NewErrWorkspaceCorrupt("shelf '%s' has no log message set; save aborted", name)
	}

	snapshots := make([]PathSnapshot, 0, len(paths))
	for _, p := range paths {
		content, err := s.backend.ReadWorkingContents(ctx, p)
		if err != nil {
			return nil, err
		}
		props, err := s.backend.PropList(ctx, p)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, PathSnapshot{Path: p, Content: content, Props: props})
	}

	sh.MaxVersion++
	v := &Version{Number: sh.MaxVersion, Paths: snapshots, Mtime: time.Now()}
	sh.Versions = append(sh.Versions, v)
	return v, nil
}

func (s *Store) findVersion(sh *Shelf, number int) (*Version, error) {
	for _, v := range sh.Versions {
		if v.Number == number {
			return v, nil
		}
	}
	return nil, wcerr.NewErrWorkspaceCorrupt("shelf '%s' has no version %d", sh.Name, number)
}

// checkUnmodified implements the apply gate from spec §4.7: every path a
// version touches must currently be unmodified, by Status.IsModified.
func (s *Store) checkUnmodified(ctx context.Context, v *Version) error {
	for _, snap := range v.Paths {
		st, err := s.backend.Status(ctx, snap.Path)
		if err != nil {
			return err
		}
		if st.IsModified() {
			return wcerr.NewErrWorkspaceCorrupt("'%s' has local modifications; shelf apply refused", snap.Path)
		}
	}
	return nil
}

// Apply forward-applies shelf-version number (spec §4.7).
func (s *Store) Apply(ctx context.Context, name string, number int) error {
	defer wclog.StepTimer("shelf-apply:" + name)()
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shelves[name]
	if !ok {
		return wcerr.NewErrWorkspaceCorrupt("no such shelf '%s'", name)
	}
	v, err := s.findVersion(sh, number)
	if err != nil {
		return err
	}
	if err := s.checkUnmodified(ctx, v); err != nil {
		return err
	}
	for _, snap := range v.Paths {
		if err := s.backend.WriteWorkingContents(ctx, snap.Path, snap.Content); err != nil {
			return err
		}
	}
	return nil
}

// Unapply reverse-applies shelf-version number: paths are reset to their
// content as of the version immediately before it (or left alone if this
// was the first version to touch them).
func (s *Store) Unapply(ctx context.Context, name string, number int) error {
	defer wclog.StepTimer("shelf-unapply:" + name)()
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shelves[name]
	if !ok {
		return wcerr.NewErrWorkspaceCorrupt("no such shelf '%s'", name)
	}
	v, err := s.findVersion(sh, number)
	if err != nil {
		return err
	}
	if err := s.checkUnmodified(ctx, v); err != nil {
		return err
	}
	for _, snap := range v.Paths {
		prior, ok := priorContent(sh, number, snap.Path)
		if !ok {
			continue
		}
		if err := s.backend.WriteWorkingContents(ctx, snap.Path, prior); err != nil {
			return err
		}
	}
	return nil
}

func priorContent(sh *Shelf, before int, path string) ([]byte, bool) {
	for i := len(sh.Versions) - 1; i >= 0; i-- {
		v := sh.Versions[i]
		if v.Number >= before {
			continue
		}
		for _, snap := range v.Paths {
			if snap.Path == path {
				return snap.Content, true
			}
		}
	}
	return nil, false
}

// SetCurrentVersion prunes versions strictly greater than v (spec §4.7).
func (s *Store) SetCurrentVersion(name string, v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shelves[name]
	if !ok {
		return wcerr.NewErrWorkspaceCorrupt("no such shelf '%s'", name)
	}
	kept := sh.Versions[:0]
	for _, ver := range sh.Versions {
		if ver.Number <= v {
			kept = append(kept, ver)
		}
	}
	sh.Versions = kept
	sh.MaxVersion = v
	return nil
}

// Squash folds every version into one and resets max_version to 1 (spec
// §4.7). The folded version's snapshot for each path is its latest
// recorded content across all prior versions.
func (s *Store) Squash(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shelves[name]
	if !ok {
		return wcerr.NewErrWorkspaceCorrupt("no such shelf '%s'", name)
	}
	if len(sh.Versions) == 0 {
		return nil
	}
	latest := make(map[string]PathSnapshot)
	var order []string
	for _, v := range sh.Versions {
		for _, snap := range v.Paths {
			if _, seen := latest[snap.Path]; !seen {
				order = append(order, snap.Path)
			}
			latest[snap.Path] = snap
		}
	}
	folded := make([]PathSnapshot, 0, len(order))
	for _, p := range order {
		folded = append(folded, latest[p])
	}
	sh.Versions = []*Version{{Number: 1, Paths: folded, Mtime: time.Now()}}
	sh.MaxVersion = 1
	return nil
}

// Revert is the checkpoint-surface name for set_current_version: it
// discards every version after v. Per the Open Question decision
// recorded in DESIGN.md, this is destructive of later versions and does
// not auto-save current state first; a caller that wants that must save
// a new version before reverting.
func (s *Store) Revert(name string, v int) error {
	return s.SetCurrentVersion(name, v)
}

// Finish is the checkpoint-surface name for tearing down a finished
// checkpoint series: it deletes the shelf and all of its versions. It
// does not touch any external repository (see DESIGN.md).
func (s *Store) Finish(name string) {
	s.Drop(name)
}

// Diff reports the paths touched by shelf-version number.
func (s *Store) Diff(name string, number int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shelves[name]
	if !ok {
		return nil, wcerr.NewErrWorkspaceCorrupt("no such shelf '%s'", name)
	}
	v, err := s.findVersion(sh, number)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(v.Paths))
	for i, snap := range v.Paths {
		out[i] = snap.Path
	}
	return out, nil
}
