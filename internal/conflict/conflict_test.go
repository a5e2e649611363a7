// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package conflict_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antgroup/hugescm-wcmerge/internal/conflict"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

func TestLoadAssemblesTreeConflict(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	ws.PutConflicts("/wc/foo.txt", workspace.RawConflict{
		Kind: workspace.RawConflictTree,
		Tree: &workspace.TreeConflictRaw{
			IncomingChange: workspace.IncomingDelete,
			LocalChange:    workspace.LocalEdited,
			VictimKind:     workspace.VictimFile,
		},
	})

	c, err := conflict.Load(context.Background(), ws, "/wc/foo.txt")
	require.NoError(t, err)
	assert.True(t, c.HasTreeConflict())
	assert.False(t, c.HasTextConflict())
	assert.Equal(t, conflict.Unspecified, c.TreeResolution)
	assert.False(t, c.IsFullyResolved())
}

func TestLoadWithNoDescriptorsFails(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	ws.PutNode("/wc/clean.txt", workspace.KindFile, workspace.StatusNormal, nil, nil)

	_, err := conflict.Load(context.Background(), ws, "/wc/clean.txt")
	require.Error(t, err)
}

func TestDescribeTreeIncomingFallsBackToGenericBeforeDetail(t *testing.T) {
	c := &conflict.Conflict{
		Operation:         workspace.OperationUpdate,
		IncomingDescriber: conflict.DescriberIncomingDelete,
		TreeConflict: &conflict.TreeConflict{
			IncomingChange: workspace.IncomingDelete,
			LocalChange:    workspace.LocalEdited,
			VictimKind:     workspace.VictimFile,
		},
	}
	assert.Equal(t, "a file deletion", conflict.DescribeTreeIncoming(c))
}

func TestDescribeTreeIncomingUsesDeletedDetail(t *testing.T) {
	c := &conflict.Conflict{
		Operation: workspace.OperationUpdate,
		TreeConflict: &conflict.TreeConflict{
			IncomingChange: workspace.IncomingDelete,
			LocalChange:    workspace.LocalEdited,
			VictimKind:     workspace.VictimFile,
		},
		IncomingDescriber: conflict.DescriberIncomingDelete,
		IncomingDetails:   &conflict.DeletedDetail{DeletionRev: 42, Author: "alice"},
	}
	assert.Contains(t, conflict.DescribeTreeIncoming(c), "r42")
	assert.Contains(t, conflict.DescribeTreeIncoming(c), "alice")
}

func TestDescribeTreeLocalConsultsMoveSource(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	ws.PutNode("/wc/dst.txt", workspace.KindFile, workspace.StatusAdded, nil, nil)

	c := &conflict.Conflict{
		LocalPath: "/wc/dst.txt",
		TreeConflict: &conflict.TreeConflict{
			LocalChange: workspace.LocalMovedHere,
		},
	}
	desc, err := conflict.DescribeTreeLocal(context.Background(), ws, c)
	require.NoError(t, err)
	assert.Equal(t, "local moved here", desc)
}

func TestSetResolvedPropAll(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	ws.PutConflicts("/wc/f",
		workspace.RawConflict{Kind: workspace.RawConflictProperty, PropName: "svn:eol-style", Prop: &workspace.PropValues{}},
		workspace.RawConflict{Kind: workspace.RawConflictProperty, PropName: "svn:mime-type", Prop: &workspace.PropValues{}},
	)
	c, err := conflict.Load(context.Background(), ws, "/wc/f")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"svn:eol-style", "svn:mime-type"}, c.PropConflictNames())

	c.SetResolvedProp("", "merged")
	assert.True(t, c.IsFullyResolved())
}
