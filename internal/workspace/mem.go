// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
)

type memNode struct {
	kind          Kind
	pristine      []byte
	pristineProps map[string]string
	props         map[string]string
	status        Status
	conflicts     []RawConflict
	movedTo       string
	movedFrom     string
}

// MemWorkspace is an in-memory Workspace used by tests and by callers
// exercising the engine without a real on-disk working copy. It is the
// reference implementation named in spec §6; it is not meant to be
// performant.
type MemWorkspace struct {
	mu        sync.Mutex
	root      string
	reposRoot string
	reposUUID string
	nodes     map[string]*memNode
	locked    string
}

// NewMemWorkspace returns an empty in-memory workspace rooted at root.
func NewMemWorkspace(root, reposRoot, reposUUID string) *MemWorkspace {
	return &MemWorkspace{
		root:      root,
		reposRoot: reposRoot,
		reposUUID: reposUUID,
		nodes:     make(map[string]*memNode),
	}
}

func (w *MemWorkspace) node(path string) *memNode {
	n, ok := w.nodes[path]
	if !ok {
		n = &memNode{kind: KindNone, status: StatusNone}
		w.nodes[path] = n
	}
	return n
}

// PutNode seeds a node for tests, replacing any prior record.
func (w *MemWorkspace) PutNode(path string, kind Kind, status Status, pristine []byte, props map[string]string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nodes[path] = &memNode{kind: kind, status: status, pristine: pristine, pristineProps: props, props: props}
}

// PutConflicts attaches raw conflict descriptors to path for tests.
func (w *MemWorkspace) PutConflicts(path string, raw ...RawConflict) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := w.node(path)
	n.conflicts = append(n.conflicts, raw...)
	n.status = StatusConflicted
}

func (w *MemWorkspace) ReadKind(_ context.Context, path string, _ bool) (Kind, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, ok := w.nodes[path]
	if !ok {
		return KindNone, nil
	}
	return n.kind, nil
}

func (w *MemWorkspace) GetPristineContents(_ context.Context, path string) (io.ReadCloser, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, ok := w.nodes[path]
	if !ok {
		return nil, wcerr.NewErrPathNotVersioned(path)
	}
	return io.NopCloser(bytes.NewReader(n.pristine)), nil
}

func (w *MemWorkspace) GetPristineProps(_ context.Context, path string) (map[string]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, ok := w.nodes[path]
	if !ok {
		return nil, wcerr.NewErrPathNotVersioned(path)
	}
	return n.pristineProps, nil
}

func (w *MemWorkspace) PropList(_ context.Context, path string) (map[string]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, ok := w.nodes[path]
	if !ok {
		return nil, wcerr.NewErrPathNotVersioned(path)
	}
	return n.props, nil
}

func (w *MemWorkspace) childrenOf(path string) []string {
	prefix := strings.TrimSuffix(path, "/") + "/"
	var out []string
	for p := range w.nodes {
		if strings.HasPrefix(p, prefix) && !strings.Contains(strings.TrimPrefix(p, prefix), "/") {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func (w *MemWorkspace) GetChildrenOfWorkingNode(_ context.Context, path string, _ bool) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.childrenOf(path), nil
}

func (w *MemWorkspace) GetBaseChildren(_ context.Context, path string, _ bool) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.childrenOf(path), nil
}

func (w *MemWorkspace) NodeWasMovedAway(_ context.Context, path string) (string, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, ok := w.nodes[path]
	if !ok || n.movedTo == "" {
		return "", false, nil
	}
	return n.movedTo, true, nil
}

func (w *MemWorkspace) NodeWasMovedHere(_ context.Context, path string) (string, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, ok := w.nodes[path]
	if !ok || n.movedFrom == "" {
		return "", false, nil
	}
	return n.movedFrom, true, nil
}

func (w *MemWorkspace) GetWCRoot(_ context.Context, _ string) (string, error) { return w.root, nil }

func (w *MemWorkspace) GetReposInfo(_ context.Context, path string) (string, string, string, error) {
	return w.reposRoot, w.reposUUID, strings.TrimPrefix(path, w.root), nil
}

func (w *MemWorkspace) AcquireWriteLockForResolve(_ context.Context, path string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.locked != "" {
		return "", wcerr.NewErrWorkspaceLocked(w.locked)
	}
	w.locked = path
	return path, nil
}

func (w *MemWorkspace) ReleaseWriteLock(_ context.Context, lockAbspath string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.locked == lockAbspath {
		w.locked = ""
	}
	return nil
}

func (w *MemWorkspace) ConflictTextMarkResolved(_ context.Context, path string, _ ConflictChoice) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := w.node(path)
	for i := range n.conflicts {
		if n.conflicts[i].Kind == RawConflictText {
			n.conflicts = append(n.conflicts[:i], n.conflicts[i+1:]...)
			break
		}
	}
	return nil
}

func (w *MemWorkspace) ConflictPropMarkResolved(_ context.Context, path, propName string, _ ConflictChoice) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := w.node(path)
	out := n.conflicts[:0]
	for _, c := range n.conflicts {
		if c.Kind == RawConflictProperty && (propName == "" || c.PropName == propName) {
			continue
		}
		out = append(out, c)
	}
	n.conflicts = out
	return nil
}

func (w *MemWorkspace) DelTreeConflict(_ context.Context, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := w.node(path)
	out := n.conflicts[:0]
	for _, c := range n.conflicts {
		if c.Kind != RawConflictTree {
			out = append(out, c)
		}
	}
	n.conflicts = out
	return nil
}

func (w *MemWorkspace) TreeUpdateBreakMovedAway(_ context.Context, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.node(path).movedTo = ""
	return nil
}

func (w *MemWorkspace) TreeUpdateRaiseMovedAway(_ context.Context, _ string) error { return nil }

func (w *MemWorkspace) TreeUpdateMovedAwayNode(_ context.Context, _ string) error { return nil }

func (w *MemWorkspace) Delete(_ context.Context, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.nodes, path)
	return nil
}

func (w *MemWorkspace) AddReposFile(_ context.Context, path string, contents io.Reader, props map[string]string, _ string, _ int64) error {
	buf, err := io.ReadAll(contents)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nodes[path] = &memNode{kind: KindFile, status: StatusAdded, pristine: buf, pristineProps: props, props: props}
	return nil
}

func (w *MemWorkspace) MergeText(_ context.Context, path string, base, working, incoming io.Reader) (bool, string, error) {
	b, _ := io.ReadAll(base)
	wk, _ := io.ReadAll(working)
	in, _ := io.ReadAll(incoming)
	w.mu.Lock()
	defer w.mu.Unlock()
	n := w.node(path)
	if bytes.Equal(wk, in) {
		n.pristine = wk
		return false, "merged", nil
	}
	if bytes.Equal(b, wk) {
		n.pristine = in
		return false, "merged", nil
	}
	n.conflicts = append(n.conflicts, RawConflict{Kind: RawConflictText, Text: &TextConflictDetail{
		BaseContents:        bytes.NewReader(b),
		WorkingContents:     bytes.NewReader(wk),
		IncomingNewContents: bytes.NewReader(in),
	}})
	return true, "conflicted", nil
}

func (w *MemWorkspace) ReadConflictDescriptions(_ context.Context, path string) ([]RawConflict, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, ok := w.nodes[path]
	if !ok {
		return nil, wcerr.NewErrPathNotFound(path, -1)
	}
	return n.conflicts, nil
}

// ReadWorkingContents returns the current working-copy bytes recorded for
// path. It is not part of the Workspace interface proper (spec §6 only
// exposes pristine reads); the shelf store uses it as its content-capture
// primitive since real diff/patch generation is out of scope (spec
// Non-goals).
func (w *MemWorkspace) ReadWorkingContents(_ context.Context, path string) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, ok := w.nodes[path]
	if !ok {
		return nil, wcerr.NewErrPathNotVersioned(path)
	}
	return append([]byte(nil), n.pristine...), nil
}

// WriteWorkingContents overwrites the current working-copy bytes for path,
// the shelf store's apply/unapply primitive.
func (w *MemWorkspace) WriteWorkingContents(_ context.Context, path string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := w.node(path)
	n.kind = KindFile
	n.pristine = append([]byte(nil), data...)
	n.status = StatusModified
	return nil
}

func (w *MemWorkspace) Status(_ context.Context, path string) (Status, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, ok := w.nodes[path]
	if !ok {
		return StatusNone, nil
	}
	if len(n.conflicts) > 0 {
		return StatusConflicted, nil
	}
	return n.status, nil
}
