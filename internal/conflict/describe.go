// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package conflict

import (
	"context"
	"fmt"

	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// DescribeText produces the text-conflict description. Property-conflict
// descriptions use the fixed "<local_change>, <incoming_change> <operation>"
// form per spec §4.2 and are produced by DescribeProp instead.
func DescribeText(c *Conflict) string {
	return fmt.Sprintf("local edit, incoming edit upon %s", c.Operation)
}

// DescribeProp produces a property conflict's description: the fixed
// "<local_change>, <incoming_change> <operation>" string (spec §4.2). Since
// the raw descriptor does not itself carry local/incoming change labels for
// properties, the generic "edited" labels are used, matching how a plain
// property edit/edit collision is described.
func DescribeProp(c *Conflict, _ string) string {
	return fmt.Sprintf("edited, edited upon %s", c.Operation)
}

// genericIncomingTable is the 4x4x3 enumeration over
// (victim_kind, incoming_change, operation) for the generic tree-conflict
// incoming-side description (spec §4.2). genericIncomingDescription uses
// the VictimUnknown row for a victim kind not in the table (VictimNone) and
// returns "an unspecified change" for a combination the table lacks.
var genericIncomingTable = map[workspace.VictimKind]map[workspace.IncomingChange]map[workspace.Operation]string{
	workspace.VictimFile: {
		workspace.IncomingEdit:    {workspace.OperationUpdate: "a file edit", workspace.OperationSwitch: "a file edit", workspace.OperationMerge: "a file edit"},
		workspace.IncomingAdd:     {workspace.OperationUpdate: "a new file", workspace.OperationSwitch: "a new file", workspace.OperationMerge: "a new file"},
		workspace.IncomingDelete:  {workspace.OperationUpdate: "a file deletion", workspace.OperationSwitch: "a file deletion", workspace.OperationMerge: "a file deletion"},
		workspace.IncomingReplace: {workspace.OperationUpdate: "a file replacement", workspace.OperationSwitch: "a file replacement", workspace.OperationMerge: "a file replacement"},
	},
	workspace.VictimDir: {
		workspace.IncomingEdit:    {workspace.OperationUpdate: "a directory edit", workspace.OperationSwitch: "a directory edit", workspace.OperationMerge: "a directory edit"},
		workspace.IncomingAdd:     {workspace.OperationUpdate: "a new directory", workspace.OperationSwitch: "a new directory", workspace.OperationMerge: "a new directory"},
		workspace.IncomingDelete:  {workspace.OperationUpdate: "a directory deletion", workspace.OperationSwitch: "a directory deletion", workspace.OperationMerge: "a directory deletion"},
		workspace.IncomingReplace: {workspace.OperationUpdate: "a directory replacement", workspace.OperationSwitch: "a directory replacement", workspace.OperationMerge: "a directory replacement"},
	},
	workspace.VictimSymlink: {
		workspace.IncomingEdit:    {workspace.OperationUpdate: "a symlink edit", workspace.OperationSwitch: "a symlink edit", workspace.OperationMerge: "a symlink edit"},
		workspace.IncomingAdd:     {workspace.OperationUpdate: "a new symlink", workspace.OperationSwitch: "a new symlink", workspace.OperationMerge: "a new symlink"},
		workspace.IncomingDelete:  {workspace.OperationUpdate: "a symlink deletion", workspace.OperationSwitch: "a symlink deletion", workspace.OperationMerge: "a symlink deletion"},
		workspace.IncomingReplace: {workspace.OperationUpdate: "a symlink replacement", workspace.OperationSwitch: "a symlink replacement", workspace.OperationMerge: "a symlink replacement"},
	},
	workspace.VictimUnknown: {
		workspace.IncomingEdit:    {workspace.OperationUpdate: "an edit", workspace.OperationSwitch: "an edit", workspace.OperationMerge: "an edit"},
		workspace.IncomingAdd:     {workspace.OperationUpdate: "a new node", workspace.OperationSwitch: "a new node", workspace.OperationMerge: "a new node"},
		workspace.IncomingDelete:  {workspace.OperationUpdate: "a deletion", workspace.OperationSwitch: "a deletion", workspace.OperationMerge: "a deletion"},
		workspace.IncomingReplace: {workspace.OperationUpdate: "a replacement", workspace.OperationSwitch: "a replacement", workspace.OperationMerge: "a replacement"},
	},
}

func genericIncomingDescription(victim workspace.VictimKind, incoming workspace.IncomingChange, op workspace.Operation) string {
	byIncoming, ok := genericIncomingTable[victim]
	if !ok {
		byIncoming = genericIncomingTable[workspace.VictimUnknown]
	}
	byOp, ok := byIncoming[incoming]
	if !ok {
		return "an unspecified change"
	}
	if desc, ok := byOp[op]; ok {
		return desc
	}
	return "an unspecified change"
}

// DescribeTreeIncoming produces the tree conflict's incoming-side
// description. c.IncomingDescriber (selected once at Load time, spec §4.1)
// picks which specialised form applies, independent of whatever
// c.LocalDescriber found; each one interpolates detail once IncomingDetails
// has been populated by resolvedetail; until then every form falls back to
// the generic table, per spec §4.2.
func DescribeTreeIncoming(c *Conflict) string {
	tc := c.TreeConflict
	generic := genericIncomingDescription(tc.VictimKind, tc.IncomingChange, c.Operation)
	switch c.IncomingDescriber {
	case DescriberIncomingDelete:
		d, ok := c.IncomingDetails.(*DeletedDetail)
		if !ok {
			return generic
		}
		if d.Replacing {
			return fmt.Sprintf("%s replaced by a %s in r%d by %s", generic, d.ReplacingKind, d.DeletionRev, d.Author)
		}
		return fmt.Sprintf("%s, deleted in r%d by %s", generic, d.DeletionRev, d.Author)
	case DescriberIncomingAdd:
		d, ok := c.IncomingDetails.(*AddedDetail)
		if !ok {
			return generic
		}
		if d.DeletedAfter {
			return fmt.Sprintf("%s, added in r%d by %s, later deleted in r%d", generic, d.AddRev, d.Author, d.DeletionRev)
		}
		return fmt.Sprintf("%s, added in r%d by %s", generic, d.AddRev, d.Author)
	case DescriberIncomingEdit:
		d, ok := c.IncomingDetails.(*EditedDetail)
		if !ok || len(d.Revisions) == 0 {
			return generic
		}
		first, last := d.Revisions[0], d.Revisions[len(d.Revisions)-1]
		return fmt.Sprintf("%s across r%d..r%d (%d revisions, last by %s)", generic, first.Revision, last.Revision, len(d.Revisions), last.Author)
	default:
		return generic
	}
}

// localTable maps each local_change to its wording for the tree
// conflict's local-side description (spec §4.2). It is keyed on
// local_change only; victim kind and operation do not change the wording.
var localTable = map[workspace.LocalChange]string{
	workspace.LocalEdited:      "edited",
	workspace.LocalDeleted:     "deleted",
	workspace.LocalMissing:     "missing",
	workspace.LocalObstructed:  "obstructed by an unversioned item",
	workspace.LocalAdded:       "added",
	workspace.LocalReplaced:    "replaced",
	workspace.LocalUnversioned: "unversioned",
	workspace.LocalMovedAway:   "moved away",
	workspace.LocalMovedHere:   "moved here",
}

// DescribeTreeLocal produces the tree conflict's local-side description.
// For moved_away/moved_here it additionally consults the workspace for the
// move's source/destination, a read-only local query (spec §4.2 — no I/O
// to the remote side for this).
func DescribeTreeLocal(ctx context.Context, ws workspace.Workspace, c *Conflict) (string, error) {
	tc := c.TreeConflict
	base := localTable[tc.LocalChange]
	switch tc.LocalChange {
	case workspace.LocalMovedAway:
		dest, ok, err := ws.NodeWasMovedAway(ctx, c.LocalPath)
		if err != nil {
			return "", err
		}
		if ok {
			return fmt.Sprintf("local %s (moved to '%s')", base, dest), nil
		}
	case workspace.LocalMovedHere:
		src, ok, err := ws.NodeWasMovedHere(ctx, c.LocalPath)
		if err != nil {
			return "", err
		}
		if ok {
			return fmt.Sprintf("local %s (moved from '%s')", base, src), nil
		}
	}
	return fmt.Sprintf("local %s", base), nil
}
