// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package executor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antgroup/hugescm-wcmerge/internal/conflict"
	"github.com/antgroup/hugescm-wcmerge/internal/executor"
	"github.com/antgroup/hugescm-wcmerge/internal/option"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

func TestResolvePostponeIsNoop(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	ws.PutConflicts("/wc/foo.txt", workspace.RawConflict{
		Kind: workspace.RawConflictText,
		Text: &workspace.TextConflictDetail{},
	})
	c, err := conflict.Load(context.Background(), ws, "/wc/foo.txt")
	require.NoError(t, err)

	require.NoError(t, executor.Resolve(context.Background(), ws, nil, c, "", option.Postpone))
	assert.Equal(t, conflict.Unspecified, c.TextResolution)
}

func TestResolveTextOptionMarksResolvedAndRecords(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	ws.PutConflicts("/wc/foo.txt", workspace.RawConflict{
		Kind: workspace.RawConflictText,
		Text: &workspace.TextConflictDetail{},
	})
	c, err := conflict.Load(context.Background(), ws, "/wc/foo.txt")
	require.NoError(t, err)

	require.NoError(t, executor.Resolve(context.Background(), ws, nil, c, "", option.IncomingText))
	assert.Equal(t, conflict.ResolutionID(option.IncomingText), c.TextResolution)

	remaining, err := ws.ReadConflictDescriptions(context.Background(), "/wc/foo.txt")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestResolveAcceptCurrentWCStateClearsTreeConflict(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	ws.PutConflicts("/wc/foo.txt", workspace.RawConflict{
		Kind: workspace.RawConflictTree,
		Tree: &workspace.TreeConflictRaw{
			IncomingChange: workspace.IncomingEdit,
			LocalChange:    workspace.LocalMovedAway,
			VictimKind:     workspace.VictimFile,
		},
	})
	c, err := conflict.Load(context.Background(), ws, "/wc/foo.txt")
	require.NoError(t, err)

	require.NoError(t, executor.Resolve(context.Background(), ws, nil, c, "", option.AcceptCurrentWCState))
	assert.Equal(t, conflict.ResolutionID(option.AcceptCurrentWCState), c.TreeResolution)
}

func TestResolveUnknownOptionFails(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	ws.PutConflicts("/wc/foo.txt", workspace.RawConflict{
		Kind: workspace.RawConflictText,
		Text: &workspace.TextConflictDetail{},
	})
	c, err := conflict.Load(context.Background(), ws, "/wc/foo.txt")
	require.NoError(t, err)

	err = executor.Resolve(context.Background(), ws, nil, c, "", option.ID("bogus"))
	require.Error(t, err)
}
