// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package conflict

import (
	"github.com/antgroup/hugescm-wcmerge/internal/rangeset"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// DeletedDetail is the IncomingDetail populated for an incoming delete or
// replace (spec §4.3's "incoming delete").
type DeletedDetail struct {
	DeletionRev   rangeset.Revnum
	Author        string
	Replacing     bool
	ReplacingKind workspace.VictimKind
}

func (*DeletedDetail) incomingDetail() {}

// AddedDetail is the IncomingDetail populated for an incoming add.
type AddedDetail struct {
	AddRev       rangeset.Revnum
	Author       string
	DeletedAfter bool
	DeletionRev  rangeset.Revnum
}

func (*AddedDetail) incomingDetail() {}

// EditRevision is one revision that touched the victim during an
// incoming-edit scan.
type EditRevision struct {
	Revision        rangeset.Revnum
	Author          string
	TextModified    bool
	PropsModified   bool
	ChildrenModified bool
}

// EditedDetail is the IncomingDetail populated for an incoming edit.
type EditedDetail struct {
	Revisions []EditRevision
}

func (*EditedDetail) incomingDetail() {}

// MissingDetail is the LocalDetail populated for the locally-missing case:
// the revision on the merge target branch in which the victim disappeared.
type MissingDetail struct {
	DeletionRev rangeset.Revnum
	Author      string
}

func (*MissingDetail) localDetail() {}
