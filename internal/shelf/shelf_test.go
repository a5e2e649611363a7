// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package shelf_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antgroup/hugescm-wcmerge/internal/shelf"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

func TestSaveWithoutLogMessageAborts(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	store := shelf.NewStore(ws)
	_, err := store.SaveNewVersion(context.Background(), "feature", []string{"/wc/a.txt"})
	require.Error(t, err)
}

func TestSaveApplyUnapplyRoundTrip(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	ws.PutNode("/wc/a.txt", workspace.KindFile, workspace.StatusNormal, []byte("v1"), nil)
	store := shelf.NewStore(ws)
	store.SetRevprop("feature", shelf.LogMessageKey, "wip")

	v1, err := store.SaveNewVersion(context.Background(), "feature", []string{"/wc/a.txt"})
	require.NoError(t, err)
	assert.Equal(t, 1, v1.Number)

	ws.WriteWorkingContents(context.Background(), "/wc/a.txt", []byte("v2"))
	ws.PutNode("/wc/a.txt", workspace.KindFile, workspace.StatusNormal, []byte("v2"), nil)
	v2, err := store.SaveNewVersion(context.Background(), "feature", []string{"/wc/a.txt"})
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Number)

	diff, err := store.Diff("feature", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"/wc/a.txt"}, diff)

	require.NoError(t, store.Unapply(context.Background(), "feature", 2))
	content, err := ws.ReadWorkingContents(context.Background(), "/wc/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(content))

	require.NoError(t, store.Apply(context.Background(), "feature", 2))
	content, err = ws.ReadWorkingContents(context.Background(), "/wc/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(content))
}

func TestApplyRefusedWhenLocallyModified(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	ws.PutNode("/wc/a.txt", workspace.KindFile, workspace.StatusNormal, []byte("v1"), nil)
	store := shelf.NewStore(ws)
	store.SetRevprop("feature", shelf.LogMessageKey, "wip")
	_, err := store.SaveNewVersion(context.Background(), "feature", []string{"/wc/a.txt"})
	require.NoError(t, err)

	ws.PutNode("/wc/a.txt", workspace.KindFile, workspace.StatusModified, []byte("dirty"), nil)
	err = store.Apply(context.Background(), "feature", 1)
	require.Error(t, err)
}

func TestSquashFoldsVersions(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	ws.PutNode("/wc/a.txt", workspace.KindFile, workspace.StatusNormal, []byte("v1"), nil)
	store := shelf.NewStore(ws)
	store.SetRevprop("feature", shelf.LogMessageKey, "wip")
	_, err := store.SaveNewVersion(context.Background(), "feature", []string{"/wc/a.txt"})
	require.NoError(t, err)
	ws.PutNode("/wc/a.txt", workspace.KindFile, workspace.StatusNormal, []byte("v2"), nil)
	_, err = store.SaveNewVersion(context.Background(), "feature", []string{"/wc/a.txt"})
	require.NoError(t, err)

	require.NoError(t, store.Squash("feature"))
	log, err := store.Log("feature")
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, 1, log[0].Number)
}

func TestListOrdersByMtime(t *testing.T) {
	ws := workspace.NewMemWorkspace("/wc", "file:///repo", "uuid-1")
	store := shelf.NewStore(ws)
	store.SetRevprop("a", shelf.LogMessageKey, "a")
	store.SetRevprop("b", shelf.LogMessageKey, "b")
	ws.PutNode("/wc/x.txt", workspace.KindFile, workspace.StatusNormal, []byte("x"), nil)
	_, err := store.SaveNewVersion(context.Background(), "a", []string{"/wc/x.txt"})
	require.NoError(t, err)
	_, err = store.SaveNewVersion(context.Background(), "b", []string{"/wc/x.txt"})
	require.NoError(t, err)
	got := store.List()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)
}
