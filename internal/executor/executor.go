// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package executor runs a chosen resolution option under the workspace
// write-lock envelope described in spec §4.6: acquire, perform side
// effects, release (even on error, via a compose-on-unwind join), then
// record the resolution on the conflict object.
package executor

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/antgroup/hugescm-wcmerge/internal/conflict"
	"github.com/antgroup/hugescm-wcmerge/internal/option"
	"github.com/antgroup/hugescm-wcmerge/internal/remote"
	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
	"github.com/antgroup/hugescm-wcmerge/internal/wclog"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// mtimeGranularity is the sleep the executor performs before releasing
// the write lock, guaranteeing monotonically increasing mtimes on touched
// files across back-to-back resolver runs (spec §4.6 step 3).
var mtimeGranularity = time.Millisecond

// Resolve runs opt against c, following the envelope from spec §4.6:
//  1. acquire the workspace write lock rooted at c.LocalPath
//  2. perform opt's side effect (the table in §4.6)
//  3. release the lock, composing any release error with a side-effect
//     error via errors.Join rather than discarding one
//  4. on success, record the resolution on c
//
// sess is consulted only by the merge_incoming_added_file_* options,
// which download repository content; it may be nil for every other
// option.
func Resolve(ctx context.Context, ws workspace.Workspace, sess remote.Session, c *conflict.Conflict, propName string, opt option.ID) (err error) {
	defer wclog.StepTimer("resolve:" + string(opt))()

	opt = option.Remap(c, opt)

	lockPath, lockErr := ws.AcquireWriteLockForResolve(ctx, c.LocalPath)
	if lockErr != nil {
		return lockErr
	}
	defer func() {
		time.Sleep(mtimeGranularity)
		if relErr := ws.ReleaseWriteLock(ctx, lockPath); relErr != nil {
			err = errors.Join(err, relErr)
		}
	}()

	sideEffect, err := dispatch(ctx, ws, sess, c, propName, opt)
	if err != nil {
		return err
	}
	sideEffect.recordOn(c, propName)
	return nil
}

// resolutionRecord is what a successful side effect writes back onto the
// conflict object (spec §4.6 step 4): exactly one of TextResolution,
// TreeResolution or a PropConflicts[name].Resolution entry is updated,
// matching which sub-kind the option targeted.
type resolutionRecord struct {
	isText bool
	isTree bool
	isProp bool
	choice option.ID
}

func (r resolutionRecord) recordOn(c *conflict.Conflict, propName string) {
	switch {
	case r.isText:
		c.TextResolution = conflict.ResolutionID(r.choice)
	case r.isTree:
		c.TreeResolution = conflict.ResolutionID(r.choice)
	case r.isProp:
		c.SetResolvedProp(propName, conflict.ResolutionID(r.choice))
	}
}

func dispatch(ctx context.Context, ws workspace.Workspace, sess remote.Session, c *conflict.Conflict, propName string, opt option.ID) (resolutionRecord, error) {
	switch opt {
	case option.Postpone:
		return resolutionRecord{}, nil

	case option.BaseText, option.IncomingText, option.WorkingText,
		option.IncomingTextWhereConflicted, option.WorkingTextWhereConflicted, option.MergedText:
		choice := toWorkspaceChoice(opt)
		if propName != "" {
			if err := ws.ConflictPropMarkResolved(ctx, c.LocalPath, propName, choice); err != nil {
				return resolutionRecord{}, err
			}
			return resolutionRecord{isProp: true, choice: opt}, nil
		}
		if err := ws.ConflictTextMarkResolved(ctx, c.LocalPath, choice); err != nil {
			return resolutionRecord{}, err
		}
		return resolutionRecord{isText: true, choice: opt}, nil

	case option.AcceptCurrentWCState:
		tc := c.TreeConflict
		if tc != nil &&
			(tc.LocalChange == workspace.LocalMovedAway || tc.LocalChange == workspace.LocalDeleted || tc.LocalChange == workspace.LocalReplaced) &&
			tc.IncomingChange == workspace.IncomingEdit {
			if err := ws.TreeUpdateBreakMovedAway(ctx, c.LocalPath); err != nil {
				return resolutionRecord{}, err
			}
		}
		if err := ws.DelTreeConflict(ctx, c.LocalPath); err != nil {
			return resolutionRecord{}, err
		}
		return resolutionRecord{isTree: true, choice: opt}, nil

	case option.UpdateMoveDestination:
		if err := ws.TreeUpdateMovedAwayNode(ctx, c.LocalPath); err != nil {
			return resolutionRecord{}, err
		}
		return resolutionRecord{isTree: true, choice: opt}, nil

	case option.UpdateAnyMovedAwayChildren:
		if err := ws.TreeUpdateRaiseMovedAway(ctx, c.LocalPath); err != nil {
			return resolutionRecord{}, err
		}
		return resolutionRecord{isTree: true, choice: opt}, nil

	case option.MergeIncomingAddedFileTextMerge:
		if err := mergeIncomingAddedFileTextMerge(ctx, ws, sess, c); err != nil {
			return resolutionRecord{}, err
		}
		return resolutionRecord{isTree: true, choice: opt}, nil

	case option.MergeIncomingAddedFileReplace:
		if err := mergeIncomingAddedFileReplace(ctx, ws, sess, c, false); err != nil {
			return resolutionRecord{}, err
		}
		return resolutionRecord{isTree: true, choice: opt}, nil

	case option.MergeIncomingAddedFileReplaceAndMerge:
		if err := mergeIncomingAddedFileReplace(ctx, ws, sess, c, true); err != nil {
			return resolutionRecord{}, err
		}
		return resolutionRecord{isTree: true, choice: opt}, nil

	default:
		return resolutionRecord{}, wcerr.NewErrOptionNotApplicable(string(opt))
	}
}

func toWorkspaceChoice(opt option.ID) workspace.ConflictChoice {
	switch opt {
	case option.BaseText:
		return workspace.ChoiceBase
	case option.IncomingText:
		return workspace.ChoiceTheirsFull
	case option.WorkingText:
		return workspace.ChoiceMineFull
	case option.IncomingTextWhereConflicted:
		return workspace.ChoiceTheirsConflict
	case option.WorkingTextWhereConflicted:
		return workspace.ChoiceMineConflict
	case option.MergedText:
		return workspace.ChoiceMerged
	default:
		return workspace.ChoiceUndefined
	}
}

func emptyReader() io.Reader { return io.MultiReader() }
