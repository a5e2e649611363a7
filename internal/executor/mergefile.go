// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"bytes"
	"context"
	"io"

	"github.com/antgroup/hugescm-wcmerge/internal/conflict"
	"github.com/antgroup/hugescm-wcmerge/internal/rangeset"
	"github.com/antgroup/hugescm-wcmerge/internal/remote"
	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// mergeIncomingAddedFileTextMerge implements spec §4.6's
// merge_incoming_added_file_text_merge side effect: download the incoming
// file, create an empty stand-in for "base", run the three-way text
// merge, then clear the tree conflict.
func mergeIncomingAddedFileTextMerge(ctx context.Context, ws workspace.Workspace, sess remote.Session, c *conflict.Conflict) error {
	if sess == nil {
		return wcerr.NewErrWorkspaceCorrupt("merge_incoming_added_file_text_merge requires a remote session")
	}
	tc := c.TreeConflict
	content, _, err := sess.GetFile(ctx, tc.NewLocation.Relpath, rangeset.Revnum(tc.NewLocation.PegRev))
	if err != nil {
		return err
	}
	defer content.Close()

	working, err := ws.GetPristineContents(ctx, c.LocalPath)
	if err != nil {
		return err
	}
	defer working.Close()

	if _, _, err := ws.MergeText(ctx, c.LocalPath, emptyReader(), working, content); err != nil {
		return err
	}
	return ws.DelTreeConflict(ctx, c.LocalPath)
}

// mergeIncomingAddedFileReplace implements both
// merge_incoming_added_file_replace and its _and_merge variant: snapshot
// the file's contents as GetPristineContents returns them (the Workspace
// interface has no separate read of working text), delete it, add the
// incoming file in its place, and — when withMerge is set — run the
// three-way merge using that snapshot as the working side (spec §4.6).
func mergeIncomingAddedFileReplace(ctx context.Context, ws workspace.Workspace, sess remote.Session, c *conflict.Conflict, withMerge bool) error {
	if sess == nil {
		return wcerr.NewErrWorkspaceCorrupt("merge_incoming_added_file_replace requires a remote session")
	}
	tc := c.TreeConflict

	var snapshot bytes.Buffer
	if withMerge {
		prior, err := ws.GetPristineContents(ctx, c.LocalPath)
		if err != nil {
			return err
		}
		if _, err := io.Copy(&snapshot, prior); err != nil {
			prior.Close()
			return err
		}
		prior.Close()
	}

	if err := ws.Delete(ctx, c.LocalPath); err != nil {
		return err
	}

	content, props, err := sess.GetFile(ctx, tc.NewLocation.Relpath, rangeset.Revnum(tc.NewLocation.PegRev))
	if err != nil {
		return err
	}
	buf, err := io.ReadAll(content)
	content.Close()
	if err != nil {
		return err
	}
	sourceURL := tc.NewLocation.ReposRoot + tc.NewLocation.Relpath
	if err := ws.AddReposFile(ctx, c.LocalPath, bytes.NewReader(buf), props, sourceURL, tc.NewLocation.PegRev); err != nil {
		return err
	}

	if withMerge {
		if _, _, err := ws.MergeText(ctx, c.LocalPath, emptyReader(), &snapshot, bytes.NewReader(buf)); err != nil {
			return err
		}
	}

	return ws.DelTreeConflict(ctx, c.LocalPath)
}
