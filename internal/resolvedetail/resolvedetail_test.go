// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolvedetail_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antgroup/hugescm-wcmerge/internal/conflict"
	"github.com/antgroup/hugescm-wcmerge/internal/remote"
	"github.com/antgroup/hugescm-wcmerge/internal/resolvedetail"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

func TestPopulateIncomingDeleteForward(t *testing.T) {
	sess := remote.NewMemRemote()
	sess.AddRevision(&remote.LogEntry{
		Revision: 7,
		Author:   "bob",
		ChangedPaths: []remote.ChangedPath{
			{Path: "/trunk/foo.txt", Action: remote.ActionDelete},
		},
	}, map[string]string{"author": "bob"})

	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	ws.PutConflicts("/wc/foo.txt", workspace.RawConflict{
		Kind: workspace.RawConflictTree,
		Tree: &workspace.TreeConflictRaw{
			IncomingChange: workspace.IncomingDelete,
			LocalChange:    workspace.LocalEdited,
			VictimKind:     workspace.VictimFile,
			OldLocation:    workspace.ReposLocation{Relpath: "/trunk/foo.txt", PegRev: 5},
			NewLocation:    workspace.ReposLocation{Relpath: "/trunk/foo.txt", PegRev: 8},
		},
	})

	c, err := conflict.Load(context.Background(), ws, "/wc/foo.txt")
	require.NoError(t, err)

	err = resolvedetail.Populate(context.Background(), sess, ws, c)
	require.NoError(t, err)

	detail, ok := c.IncomingDetails.(*conflict.DeletedDetail)
	require.True(t, ok)
	assert.EqualValues(t, 7, detail.DeletionRev)
	assert.Equal(t, "bob", detail.Author)
}

func TestPopulateNonTreeConflictIsNoop(t *testing.T) {
	sess := remote.NewMemRemote()
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	c := &conflict.Conflict{LocalPath: "/wc/foo.txt"}
	require.NoError(t, resolvedetail.Populate(context.Background(), sess, ws, c))
	assert.Nil(t, c.IncomingDetails)
}
