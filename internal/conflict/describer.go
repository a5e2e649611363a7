// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package conflict

import "github.com/antgroup/hugescm-wcmerge/internal/workspace"

// DescriberKind names which specialised incoming-side detail populator
// applies to a tree conflict, selected once at Load time by a switch on
// incomingChange rather than stored as a function pointer (spec §4.1,
// REDESIGN FLAGS' tagged-variant guidance). resolvedetail.Populate consults
// it directly instead of re-deriving the same categorisation from the raw
// change enum.
//
// This mirrors conflict_type_specific_setup in the original implementation
// (libsvn_client/conflicts.c), which sets an incoming-details callback and a
// local-details callback via two independent if-chains and invokes both
// when both are non-nil — incoming categorisation and local categorisation
// are orthogonal, not mutually exclusive. LocalDescriberKind is the
// independent local-side axis; a conflict can carry both an
// IncomingDescriber of DescriberIncomingDelete and a LocalDescriber of
// LocalDescriberMissing at once, and resolvedetail.Populate runs both
// populators in that case.
type DescriberKind int

const (
	DescriberGeneric DescriberKind = iota
	DescriberIncomingDelete
	DescriberIncomingAdd
	DescriberIncomingEdit
)

// selectDescriber implements the incoming-side categorisation rule from
// spec §4.1: incoming delete or replace gets the "incoming delete" pair;
// incoming add gets "incoming add"; incoming edit gets "incoming edit";
// everything else falls back to generic. It does not consider the local
// change at all — see LocalDescriberKind for that axis.
func selectDescriber(incoming workspace.IncomingChange) DescriberKind {
	switch incoming {
	case workspace.IncomingDelete, workspace.IncomingReplace:
		return DescriberIncomingDelete
	case workspace.IncomingAdd:
		return DescriberIncomingAdd
	case workspace.IncomingEdit:
		return DescriberIncomingEdit
	default:
		return DescriberGeneric
	}
}

// LocalDescriberKind names which specialised local-side detail populator
// applies. Only the locally-missing case currently has a specialised
// populator; LocalDescriberNone means no local-side detail is populated.
type LocalDescriberKind int

const (
	LocalDescriberNone LocalDescriberKind = iota
	LocalDescriberMissing
)

// selectLocalDescriber implements the local-side categorisation rule from
// spec §4.1: locally missing gets the "local missing" pair, independent of
// whatever the incoming change is.
func selectLocalDescriber(local workspace.LocalChange) LocalDescriberKind {
	if local == workspace.LocalMissing {
		return LocalDescriberMissing
	}
	return LocalDescriberNone
}
