// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package conflict implements the conflict data model (spec §3), loading
// raw descriptors into a Conflict (spec §4.1), and pure description
// logic (spec §4.2). Its only I/O is local workspace reads: the read of
// raw descriptors done by Load and DescribeTreeLocal's move queries. It
// never contacts the remote side; remote-backed detail population lives in
// the sibling resolvedetail package.
package conflict

import (
	"context"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// ResolutionID is a stable resolution-option identifier (spec §4.5).
type ResolutionID string

// Unspecified is the zero value of ResolutionID before a resolver has run.
const Unspecified ResolutionID = ""

// PropConflict is one property-named conflict record: the four value
// variants plus whatever resolution has been chosen for it.
type PropConflict struct {
	Values     workspace.PropValues
	Resolution ResolutionID
}

// IncomingDetail is the tagged union of remote-derived detail records
// populated by the resolvedetail package (spec §4.3). It replaces a
// function-pointer callback with a Go interface carrying unexported marker
// methods, per the redesign guidance to prefer tagged variants.
type IncomingDetail interface {
	incomingDetail()
}

// LocalDetail is the local-side counterpart of IncomingDetail, populated
// only for the locally-missing case (spec §4.3).
type LocalDetail interface {
	localDetail()
}

// Conflict is the assembled record attached to a single working-copy path
// (spec §3).
type Conflict struct {
	LocalPath string
	Operation workspace.Operation

	TextConflict  *workspace.TextConflictDetail
	PropConflicts *linkedhashmap.Map // string -> *PropConflict, insertion order preserved
	TreeConflict  *TreeConflict

	IncomingDetails IncomingDetail
	LocalDetails    LocalDetail

	TextResolution ResolutionID
	TreeResolution ResolutionID

	// IncomingDescriber and LocalDescriber are the two independent
	// tree-conflict detail-populator variants selected once at Load time
	// (spec §4.1); resolvedetail.Populate switches on each separately and
	// runs both populators when both apply, instead of re-deriving the
	// categorisation from TreeConflict's raw change enums. Zero values
	// (DescriberGeneric / LocalDescriberNone) when there is no tree
	// conflict, or no specialised populator applies on that axis.
	IncomingDescriber DescriberKind
	LocalDescriber    LocalDescriberKind
}

// TreeConflict is the in-memory tree-conflict record, the raw descriptor
// plus whatever detail has been populated.
type TreeConflict struct {
	IncomingChange workspace.IncomingChange
	LocalChange    workspace.LocalChange
	VictimKind     workspace.VictimKind
	OldLocation    workspace.ReposLocation
	NewLocation    workspace.ReposLocation
}

// HasTextConflict reports whether c carries a text conflict.
func (c *Conflict) HasTextConflict() bool { return c.TextConflict != nil }

// HasTreeConflict reports whether c carries a tree conflict.
func (c *Conflict) HasTreeConflict() bool { return c.TreeConflict != nil }

// PropConflictNames returns the conflicted property names in the order
// they were loaded.
func (c *Conflict) PropConflictNames() []string {
	if c.PropConflicts == nil {
		return nil
	}
	keys := c.PropConflicts.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}

// SetResolvedProp records choice as the resolution for propName. An empty
// propName resolves every outstanding property conflict with choice,
// matching the workspace's own "propname = \"\" means all" convention
// (spec §4.6).
func (c *Conflict) SetResolvedProp(propName string, choice ResolutionID) {
	if c.PropConflicts == nil {
		return
	}
	if propName != "" {
		if v, ok := c.PropConflicts.Get(propName); ok {
			v.(*PropConflict).Resolution = choice
		}
		return
	}
	for _, k := range c.PropConflicts.Keys() {
		v, _ := c.PropConflicts.Get(k)
		v.(*PropConflict).Resolution = choice
	}
}

// IsFullyResolved reports whether every sub-kind present on c has a
// resolution recorded.
func (c *Conflict) IsFullyResolved() bool {
	if c.HasTextConflict() && c.TextResolution == Unspecified {
		return false
	}
	if c.HasTreeConflict() && c.TreeResolution == Unspecified {
		return false
	}
	resolved := true
	if c.PropConflicts != nil {
		for _, k := range c.PropConflicts.Keys() {
			v, _ := c.PropConflicts.Get(k)
			if v.(*PropConflict).Resolution == Unspecified {
				resolved = false
			}
		}
	}
	return resolved
}

// Load reads every raw conflict descriptor recorded for localPath and
// assembles a Conflict, selecting the description/detail describer
// appropriate to the tree-conflict subtype if any (spec §4.1).
func Load(ctx context.Context, ws workspace.Workspace, localPath string) (*Conflict, error) {
	raws, err := ws.ReadConflictDescriptions(ctx, localPath)
	if err != nil {
		return nil, err
	}
	c := &Conflict{LocalPath: localPath, Operation: workspace.OperationNone}
	for _, raw := range raws {
		switch raw.Kind {
		case workspace.RawConflictText:
			if raw.Text == nil {
				return nil, wcerr.NewErrWorkspaceCorrupt("text conflict descriptor for '%s' has no detail", localPath)
			}
			c.TextConflict = raw.Text
			if raw.Text.BaseContents == nil {
				c.Operation = workspace.OperationMerge
			}
		case workspace.RawConflictProperty:
			if raw.Prop == nil {
				return nil, wcerr.NewErrWorkspaceCorrupt("property conflict descriptor for '%s' has no detail", localPath)
			}
			if c.PropConflicts == nil {
				c.PropConflicts = linkedhashmap.New()
			}
			c.PropConflicts.Put(raw.PropName, &PropConflict{Values: *raw.Prop})
		case workspace.RawConflictTree:
			if raw.Tree == nil {
				return nil, wcerr.NewErrWorkspaceCorrupt("tree conflict descriptor for '%s' has no detail", localPath)
			}
			c.TreeConflict = &TreeConflict{
				IncomingChange: raw.Tree.IncomingChange,
				LocalChange:    raw.Tree.LocalChange,
				VictimKind:     raw.Tree.VictimKind,
				OldLocation:    raw.Tree.OldLocation,
				NewLocation:    raw.Tree.NewLocation,
			}
		default:
			return nil, wcerr.NewErrWorkspaceCorrupt("unrecognised conflict descriptor kind %d for '%s'", raw.Kind, localPath)
		}
	}
	if c.TextConflict == nil && c.PropConflicts == nil && c.TreeConflict == nil {
		return nil, wcerr.NewErrWorkspaceCorrupt("'%s' has no recorded conflict", localPath)
	}
	if c.TreeConflict != nil {
		c.IncomingDescriber = selectDescriber(c.TreeConflict.IncomingChange)
		c.LocalDescriber = selectLocalDescriber(c.TreeConflict.LocalChange)
	}
	return c, nil
}
