// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolvedetail

import (
	"context"
	"path"
	"strings"

	"github.com/antgroup/hugescm-wcmerge/internal/conflict"
	"github.com/antgroup/hugescm-wcmerge/internal/rangeset"
	"github.com/antgroup/hugescm-wcmerge/internal/remote"
	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// deletionFound is what the deleted-rev scanner records once it locates
// the revision that removed the victim.
type deletionFound struct {
	revision      rangeset.Revnum
	author        string
	replacingKind remote.Kind
}

// related pins the ancestor the victim is known to descend from, used to
// compute a youngest-common-ancestor check against each candidate deletion
// (spec §4.3's deleted-rev scanner).
type related struct {
	relpath string
	pegRev  rangeset.Revnum
}

// scanForDeletion implements the deleted-rev scanner: it walks the log on
// parent between startRev and endRev looking for a D or R action on
// basename whose youngest-common-ancestor with rel exists, and stops the
// walk early via wcerr.ErrStopLog once found. GetLog turns that sentinel
// into a nil return, so the caller inspects the returned *deletionFound
// (nil if the scanner reached the end of the range without a match); a
// non-nil error returned here is a real failure.
func scanForDeletion(ctx context.Context, sess remote.Session, parent, basename string, startRev, endRev rangeset.Revnum, rel related) (*deletionFound, error) {
	victimRelpath := path.Join(parent, basename)
	var found *deletionFound
	err := sess.GetLog(ctx, []string{parent}, endRev, startRev, 0, true, true, []string{"author"}, func(entry *remote.LogEntry) error {
		for _, cp := range entry.ChangedPaths {
			if cp.Action != remote.ActionDelete && cp.Action != remote.ActionReplace {
				continue
			}
			if canonicalRelpath(cp.Path) != canonicalRelpath(victimRelpath) {
				continue
			}
			if !hasCommonAncestor(rel, related{relpath: victimRelpath, pegRev: entry.Revision - 1}) {
				continue
			}
			replacing := remote.KindNone
			if cp.Action == remote.ActionReplace {
				replacing = cp.NodeKind
			}
			found = &deletionFound{revision: entry.Revision, author: entry.Author, replacingKind: replacing}
			return wcerr.ErrStopLog
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func canonicalRelpath(p string) string {
	return strings.TrimSuffix(path.Clean("/"+p), "/")
}

// hasCommonAncestor is the youngest-common-ancestor test the scanner uses
// to confirm a candidate deletion actually continues the victim's history
// rather than coincidentally sharing a path. The reference implementation
// treats any two locations sharing a canonical relpath as related, since
// MemRemote does not itself model copy ancestry beyond changed-path
// copyfrom fields; a production remote session backed by real copy
// history would consult copyfrom chains here instead.
func hasCommonAncestor(a, b related) bool {
	return canonicalRelpath(a.relpath) == canonicalRelpath(b.relpath)
}

func populateIncomingDelete(ctx context.Context, sess remote.Session, probe *pathProbe, c *conflict.Conflict) (*conflict.DeletedDetail, error) {
	tc := c.TreeConflict
	oldRev := rangeset.Revnum(tc.OldLocation.PegRev)
	newRev := rangeset.Revnum(tc.NewLocation.PegRev)
	relpath := tc.OldLocation.Relpath

	var deletionRev rangeset.Revnum
	var author string

	switch {
	case oldRev < newRev:
		switch c.Operation {
		case workspace.OperationSwitch, workspace.OperationMerge:
			parent := path.Dir(relpath)
			basename := path.Base(relpath)
			found, err := scanForDeletion(ctx, sess, parent, basename, oldRev, newRev, related{relpath: relpath, pegRev: oldRev})
			if err != nil {
				return nil, err
			}
			if found == nil {
				return nil, nil
			}
			deletionRev, author = found.revision, found.author
		default:
			rev, err := sess.GetDeletedRev(ctx, relpath, oldRev, newRev)
			if err != nil {
				return nil, err
			}
			deletionRev = rev
			author, err = sess.RevProp(ctx, rev, "author")
			if err != nil {
				return nil, err
			}
		}
	default:
		var introducedAt rangeset.Revnum
		err := sess.GetLocationSegments(ctx, relpath, oldRev, oldRev, newRev, func(seg *remote.LocationSegment) error {
			introducedAt = seg.RangeStart
			return nil
		})
		if err != nil {
			return nil, err
		}
		deletionRev = introducedAt
		author, err = sess.RevProp(ctx, introducedAt, "author")
		if err != nil {
			return nil, err
		}
	}

	replacing := false
	var replacingKind workspace.VictimKind
	if deletionRev > 0 {
		before, err := probe.checkPath(ctx, relpath, deletionRev-1)
		if err == nil && before != remote.KindNone {
			at, err := probe.checkPath(ctx, relpath, deletionRev)
			if err == nil && at != remote.KindNone {
				replacing = true
				replacingKind = toVictimKind(at)
			}
		}
	}

	return &conflict.DeletedDetail{
		DeletionRev:   deletionRev,
		Author:        author,
		Replacing:     replacing,
		ReplacingKind: replacingKind,
	}, nil
}

func toVictimKind(k remote.Kind) workspace.VictimKind {
	switch k {
	case remote.KindFile:
		return workspace.VictimFile
	case remote.KindDir:
		return workspace.VictimDir
	case remote.KindSymlink:
		return workspace.VictimSymlink
	default:
		return workspace.VictimUnknown
	}
}

func populateLocallyMissing(ctx context.Context, sess remote.Session, _ *pathProbe, c *conflict.Conflict) (*conflict.MissingDetail, error) {
	tc := c.TreeConflict
	relpath := tc.NewLocation.Relpath
	parent := path.Dir(relpath)
	basename := path.Base(relpath)
	oldRev := rangeset.Revnum(tc.OldLocation.PegRev)
	newRev := rangeset.Revnum(tc.NewLocation.PegRev)

	found, err := scanForDeletion(ctx, sess, parent, basename, oldRev, newRev, related{relpath: relpath, pegRev: oldRev})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, nil
	}
	return &conflict.MissingDetail{DeletionRev: found.revision, Author: found.author}, nil
}
