// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package option_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/antgroup/hugescm-wcmerge/internal/conflict"
	"github.com/antgroup/hugescm-wcmerge/internal/option"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

func ids(opts []option.Option) []option.ID {
	out := make([]option.ID, len(opts))
	for i, o := range opts {
		out[i] = o.ID
	}
	return out
}

func TestTextOptionsBinaryReducedSet(t *testing.T) {
	c := &conflict.Conflict{TextConflict: &workspace.TextConflictDetail{MimeType: "application/octet-stream"}}
	got := ids(option.TextOptions(c))
	assert.ElementsMatch(t, []option.ID{option.Postpone, option.BaseText, option.IncomingText, option.WorkingText}, got)
}

func TestTextOptionsTextualFullSet(t *testing.T) {
	c := &conflict.Conflict{TextConflict: &workspace.TextConflictDetail{MimeType: "text/plain"}}
	got := ids(option.TextOptions(c))
	assert.Contains(t, got, option.MergedText)
	assert.Contains(t, got, option.IncomingTextWhereConflicted)
}

func TestTreeOptionsUpdateMoveDestination(t *testing.T) {
	c := &conflict.Conflict{
		Operation: workspace.OperationUpdate,
		TreeConflict: &conflict.TreeConflict{
			LocalChange:    workspace.LocalMovedAway,
			IncomingChange: workspace.IncomingEdit,
		},
	}
	assert.Contains(t, ids(option.TreeOptions(c)), option.UpdateMoveDestination)
}

func TestTreeOptionsMergeIncomingAddedFile(t *testing.T) {
	c := &conflict.Conflict{
		Operation: workspace.OperationMerge,
		TreeConflict: &conflict.TreeConflict{
			VictimKind:     workspace.VictimFile,
			IncomingChange: workspace.IncomingAdd,
			LocalChange:    workspace.LocalObstructed,
			NewLocation:    workspace.ReposLocation{Kind: workspace.VictimFile},
		},
	}
	got := ids(option.TreeOptions(c))
	assert.Contains(t, got, option.MergeIncomingAddedFileTextMerge)
	assert.Contains(t, got, option.MergeIncomingAddedFileReplace)
	assert.Contains(t, got, option.MergeIncomingAddedFileReplaceAndMerge)
}

func TestRemapLegacyWorkingTextWhereConflicted(t *testing.T) {
	c := &conflict.Conflict{
		TreeConflict: &conflict.TreeConflict{LocalChange: workspace.LocalMovedAway},
	}
	assert.Equal(t, option.UpdateMoveDestination, option.Remap(c, option.WorkingTextWhereConflicted))
}

func TestRemapMergedTextToAcceptCurrentState(t *testing.T) {
	c := &conflict.Conflict{TreeConflict: &conflict.TreeConflict{}}
	assert.Equal(t, option.AcceptCurrentWCState, option.Remap(c, option.MergedText))
}
