// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package option implements the resolution-option enumeration (spec
// §4.5): for a given conflict, which option identifiers are valid and
// what each one's human-readable description is.
package option

import (
	"fmt"

	"github.com/antgroup/hugescm-wcmerge/internal/conflict"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// ID is a resolution option identifier, one of the stable enumerants
// listed in spec §4.5.
type ID string

const (
	Postpone ID = "postpone"

	BaseText                    ID = "base_text"
	IncomingText                ID = "incoming_text"
	WorkingText                 ID = "working_text"
	IncomingTextWhereConflicted ID = "incoming_text_where_conflicted"
	WorkingTextWhereConflicted  ID = "working_text_where_conflicted"
	MergedText                  ID = "merged_text"

	AcceptCurrentWCState ID = "accept_current_wc_state"

	UpdateMoveDestination      ID = "update_move_destination"
	UpdateAnyMovedAwayChildren ID = "update_any_moved_away_children"

	MergeIncomingAddedFileTextMerge       ID = "merge_incoming_added_file_text_merge"
	MergeIncomingAddedFileReplace         ID = "merge_incoming_added_file_replace"
	MergeIncomingAddedFileReplaceAndMerge ID = "merge_incoming_added_file_replace_and_merge"
)

// Option is an (id, description) pair; the resolver for each id is the
// matching case of the executor package's dispatch switch. Text and
// property options may additionally carry a caller-supplied pre-merged
// value via PreMerged.
type Option struct {
	ID          ID
	Description string
	PreMerged   []byte
}

// TextOptions enumerates the valid options for c's text conflict, per
// spec §4.5. Binary files (a non-empty MIME type that is not a text/*
// type) get a reduced set without the merged-text and the
// incoming/working-where-conflicted options, since those only make sense
// for textual three-way merges.
func TextOptions(c *conflict.Conflict) []Option {
	if !c.HasTextConflict() {
		return nil
	}
	opts := []Option{
		{ID: Postpone, Description: "mark the conflict to be resolved later"},
		{ID: BaseText, Description: fmt.Sprintf("accept the base (pre-conflict) text of '%s'", c.LocalPath)},
		{ID: IncomingText, Description: fmt.Sprintf("accept the incoming text of '%s' in full", c.LocalPath)},
		{ID: WorkingText, Description: fmt.Sprintf("keep the working text of '%s' in full", c.LocalPath)},
	}
	if isTextMime(c.TextConflict.MimeType) {
		opts = append(opts,
			Option{ID: IncomingTextWhereConflicted, Description: fmt.Sprintf("accept incoming text only where conflicted, in '%s'", c.LocalPath)},
			Option{ID: WorkingTextWhereConflicted, Description: fmt.Sprintf("keep working text only where conflicted, in '%s'", c.LocalPath)},
			Option{ID: MergedText, Description: fmt.Sprintf("accept a caller-supplied merged text for '%s'", c.LocalPath)},
		)
	}
	return opts
}

func isTextMime(mime string) bool {
	if mime == "" {
		return true
	}
	return len(mime) >= 5 && mime[:5] == "text/"
}

// PropOptions enumerates the valid options for the named property
// conflict. The set mirrors TextOptions minus the where-conflicted
// variants, since property values are not line-oriented.
func PropOptions(c *conflict.Conflict, propName string) []Option {
	if c.PropConflicts == nil {
		return nil
	}
	if _, ok := c.PropConflicts.Get(propName); !ok {
		return nil
	}
	return []Option{
		{ID: Postpone, Description: "mark the conflict to be resolved later"},
		{ID: BaseText, Description: fmt.Sprintf("accept the base value of '%s' on '%s'", propName, c.LocalPath)},
		{ID: IncomingText, Description: fmt.Sprintf("accept the incoming value of '%s' on '%s'", propName, c.LocalPath)},
		{ID: WorkingText, Description: fmt.Sprintf("keep the working value of '%s' on '%s'", propName, c.LocalPath)},
		{ID: MergedText, Description: fmt.Sprintf("accept a caller-supplied merged value for '%s' on '%s'", propName, c.LocalPath)},
	}
}

// TreeOptions enumerates the valid options for c's tree conflict, per the
// predicate table in spec §4.5.
func TreeOptions(c *conflict.Conflict) []Option {
	if !c.HasTreeConflict() {
		return nil
	}
	tc := c.TreeConflict
	opts := []Option{
		{ID: Postpone, Description: "mark the conflict to be resolved later"},
		{ID: AcceptCurrentWCState, Description: fmt.Sprintf("accept the current working copy state of '%s'", c.LocalPath)},
	}

	isUpdateLike := c.Operation == workspace.OperationUpdate || c.Operation == workspace.OperationSwitch

	if isUpdateLike && tc.LocalChange == workspace.LocalMovedAway && tc.IncomingChange == workspace.IncomingEdit {
		opts = append(opts, Option{ID: UpdateMoveDestination, Description: fmt.Sprintf("apply the incoming edit to the moved destination of '%s'", c.LocalPath)})
	}
	if isUpdateLike && (tc.LocalChange == workspace.LocalDeleted || tc.LocalChange == workspace.LocalReplaced) &&
		tc.IncomingChange == workspace.IncomingEdit && tc.VictimKind == workspace.VictimDir {
		opts = append(opts, Option{ID: UpdateAnyMovedAwayChildren, Description: fmt.Sprintf("apply the incoming edit to any children of '%s' moved away", c.LocalPath)})
	}

	incomingNewKind := incomingNewKindOf(c)
	if c.Operation == workspace.OperationMerge && tc.VictimKind == workspace.VictimFile &&
		incomingNewKind == workspace.VictimFile && tc.IncomingChange == workspace.IncomingAdd &&
		tc.LocalChange == workspace.LocalObstructed {
		opts = append(opts,
			Option{ID: MergeIncomingAddedFileTextMerge, Description: fmt.Sprintf("merge the incoming added file into the obstructing file at '%s'", c.LocalPath)},
			Option{ID: MergeIncomingAddedFileReplace, Description: fmt.Sprintf("replace the obstructing file at '%s' with the incoming added file", c.LocalPath)},
			Option{ID: MergeIncomingAddedFileReplaceAndMerge, Description: fmt.Sprintf("replace the obstructing file at '%s', then merge in the previous local edits", c.LocalPath)},
		)
	}
	return opts
}

// incomingNewKindOf reports the node kind the incoming side will have
// after the change, used by the merge_incoming_added_file_* predicate.
// It is the NewLocation's recorded kind, cached on the tree-conflict
// record at load time per spec §9's "incoming_new_kind caching" decision.
func incomingNewKindOf(c *conflict.Conflict) workspace.VictimKind {
	return c.TreeConflict.NewLocation.Kind
}

// Remap implements the backward-compatibility id remapping from spec
// §4.5: a caller requesting the legacy working_text_where_conflicted on a
// tree conflict is silently remapped to update_move_destination or
// update_any_moved_away_children when the local-change classification
// warrants it; merged_text on a tree conflict remaps to
// accept_current_wc_state.
func Remap(c *conflict.Conflict, requested ID) ID {
	if !c.HasTreeConflict() {
		return requested
	}
	tc := c.TreeConflict
	switch requested {
	case WorkingTextWhereConflicted:
		if tc.LocalChange == workspace.LocalMovedAway {
			return UpdateMoveDestination
		}
		if tc.LocalChange == workspace.LocalDeleted || tc.LocalChange == workspace.LocalReplaced {
			return UpdateAnyMovedAwayChildren
		}
	case MergedText:
		return AcceptCurrentWCState
	}
	return requested
}
