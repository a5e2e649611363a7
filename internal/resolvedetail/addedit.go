// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolvedetail

import (
	"context"
	"strings"

	"github.com/antgroup/hugescm-wcmerge/internal/conflict"
	"github.com/antgroup/hugescm-wcmerge/internal/rangeset"
	"github.com/antgroup/hugescm-wcmerge/internal/remote"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// populateIncomingAdd finds the add-revision via GetLocationSegments, then
// for update/switch (where history direction is ambiguous) also probes
// forward to HEAD for a later deletion of the same path (spec §4.3).
func populateIncomingAdd(ctx context.Context, sess remote.Session, _ *pathProbe, c *conflict.Conflict) (*conflict.AddedDetail, error) {
	tc := c.TreeConflict
	relpath := tc.NewLocation.Relpath
	newRev := rangeset.Revnum(tc.NewLocation.PegRev)

	var addRev rangeset.Revnum
	err := sess.GetLocationSegments(ctx, relpath, newRev, newRev, 0, func(seg *remote.LocationSegment) error {
		addRev = seg.RangeStart
		return nil
	})
	if err != nil {
		return nil, err
	}
	author, err := sess.RevProp(ctx, addRev, "author")
	if err != nil {
		return nil, err
	}

	detail := &conflict.AddedDetail{AddRev: addRev, Author: author}

	if c.Operation == workspace.OperationUpdate || c.Operation == workspace.OperationSwitch {
		head, err := sess.LatestRevnum(ctx)
		if err != nil {
			return nil, err
		}
		if head > newRev {
			if delRev, err := sess.GetDeletedRev(ctx, relpath, newRev, head); err == nil {
				detail.DeletedAfter = true
				detail.DeletionRev = delRev
			}
		}
	}
	return detail, nil
}

// populateIncomingEdit walks the log on the new path between
// min(old_rev, new_rev) and max(old_rev, new_rev), recording each
// revision that touched the path or a descendant. When a changed-path
// entry carries a copyfrom_path, subsequent scanning retargets to it —
// history traces through copies (spec §4.3).
func populateIncomingEdit(ctx context.Context, sess remote.Session, c *conflict.Conflict) (*conflict.EditedDetail, error) {
	tc := c.TreeConflict
	oldRev := rangeset.Revnum(tc.OldLocation.PegRev)
	newRev := rangeset.Revnum(tc.NewLocation.PegRev)
	lo, hi := oldRev, newRev
	if lo > hi {
		lo, hi = hi, lo
	}

	relpath := tc.NewLocation.Relpath
	var revisions []conflict.EditRevision
	err := sess.GetLog(ctx, []string{relpath}, hi, lo, 0, true, true, []string{"author"}, func(entry *remote.LogEntry) error {
		var textMod, propsMod, childrenMod bool
		for _, cp := range entry.ChangedPaths {
			if canonicalRelpath(cp.Path) != canonicalRelpath(relpath) {
				if strings.HasPrefix(canonicalRelpath(cp.Path), canonicalRelpath(relpath)+"/") {
					childrenMod = true
				}
				continue
			}
			textMod = true
			propsMod = true
			if cp.CopyFromPath != "" {
				relpath = cp.CopyFromPath
			}
		}
		revisions = append(revisions, conflict.EditRevision{
			Revision:         entry.Revision,
			Author:           entry.Author,
			TextModified:     textMod,
			PropsModified:    propsMod,
			ChildrenModified: childrenMod,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &conflict.EditedDetail{Revisions: revisions}, nil
}
