// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package workspace declares the local working-copy surface the conflict
// engine reads and mutates (spec §6). It carries no implementation of its
// own beyond the in-memory reference backend in mem.go, used by this
// module's tests and by callers that want to exercise the engine without a
// real on-disk working copy.
package workspace

import (
	"context"
	"io"

	"github.com/antgroup/hugescm-wcmerge/internal/remote"
)

// Kind mirrors remote.Kind for nodes inside the working copy.
type Kind = remote.Kind

// The Kind values, re-exported from remote.
const (
	KindNone    = remote.KindNone
	KindFile    = remote.KindFile
	KindDir     = remote.KindDir
	KindSymlink = remote.KindSymlink
	KindUnknown = remote.KindUnknown
)

// Status classifies a versioned path's modification state. The shelf
// store's modification gate (spec §4.7) decides "modified" with
// IsModified; conflict description does not consult Status.
type Status int

const (
	StatusNone Status = iota
	StatusUnversioned
	StatusNormal
	StatusAdded
	StatusDeleted
	StatusModified
	StatusReplaced
	StatusMissing
	StatusObstructed
	StatusConflicted
)

// IsModified reports whether s counts as a local modification for the
// purposes of the shelf store's apply gate: anything other than none,
// unversioned or normal, or anything conflicted.
func (s Status) IsModified() bool {
	switch s {
	case StatusNone, StatusUnversioned, StatusNormal:
		return false
	default:
		return true
	}
}

// Operation is the working-copy operation that produced a conflict.
type Operation int

const (
	OperationNone Operation = iota
	OperationUpdate
	OperationSwitch
	OperationMerge
)

func (o Operation) String() string {
	switch o {
	case OperationUpdate:
		return "update"
	case OperationSwitch:
		return "switch"
	case OperationMerge:
		return "merge"
	default:
		return "none"
	}
}

// IncomingChange is the kind of change the incoming side made.
type IncomingChange int

const (
	IncomingEdit IncomingChange = iota
	IncomingAdd
	IncomingDelete
	IncomingReplace
)

func (c IncomingChange) String() string {
	switch c {
	case IncomingAdd:
		return "add"
	case IncomingDelete:
		return "delete"
	case IncomingReplace:
		return "replace"
	default:
		return "edit"
	}
}

// LocalChange is the kind of state the local side is in relative to the
// incoming change.
type LocalChange int

const (
	LocalEdited LocalChange = iota
	LocalDeleted
	LocalMissing
	LocalObstructed
	LocalAdded
	LocalReplaced
	LocalUnversioned
	LocalMovedAway
	LocalMovedHere
)

func (c LocalChange) String() string {
	switch c {
	case LocalDeleted:
		return "deleted"
	case LocalMissing:
		return "missing"
	case LocalObstructed:
		return "obstructed"
	case LocalAdded:
		return "added"
	case LocalReplaced:
		return "replaced"
	case LocalUnversioned:
		return "unversioned"
	case LocalMovedAway:
		return "moved_away"
	case LocalMovedHere:
		return "moved_here"
	default:
		return "edited"
	}
}

// VictimKind is the node kind of the conflict victim.
type VictimKind int

const (
	VictimNone VictimKind = iota
	VictimFile
	VictimDir
	VictimSymlink
	VictimUnknown
)

func (k VictimKind) String() string {
	switch k {
	case VictimNone:
		return "none"
	case VictimFile:
		return "file"
	case VictimDir:
		return "directory"
	case VictimSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// ReposLocation pins a node to a specific place and time in history.
type ReposLocation struct {
	ReposRoot string
	ReposUUID string
	Relpath   string
	PegRev    int64
	Kind      VictimKind
}

// ConflictChoice is the workspace's own resolution-choice enum, the target
// of the executor's option-id-to-choice mapping (spec §4.6).
type ConflictChoice int

const (
	ChoiceUndefined ConflictChoice = iota
	ChoiceBase
	ChoiceTheirsFull
	ChoiceMineFull
	ChoiceTheirsConflict
	ChoiceMineConflict
	ChoiceMerged
)

// RawConflictKind distinguishes the three raw descriptor shapes read from
// the working copy, before they are sorted into a Conflict's slots.
type RawConflictKind int

const (
	RawConflictText RawConflictKind = iota
	RawConflictProperty
	RawConflictTree
)

// TextConflictDetail carries the four content variants of a text conflict.
type TextConflictDetail struct {
	MimeType            string
	BaseContents        io.Reader // nil when Operation == merge
	WorkingContents     io.Reader
	IncomingOldContents io.Reader
	IncomingNewContents io.Reader
}

// PropValues carries the four property-value variants of a single
// property conflict.
type PropValues struct {
	Base        []byte
	Working     []byte
	IncomingOld []byte
	IncomingNew []byte
}

// TreeConflictRaw is the raw tree-conflict descriptor as stored by the
// working copy, before detail population.
type TreeConflictRaw struct {
	IncomingChange IncomingChange
	LocalChange    LocalChange
	VictimKind     VictimKind
	OldLocation    ReposLocation
	NewLocation    ReposLocation
}

// RawConflict is one descriptor as returned by ReadConflictDescriptions.
// Exactly one of Text, PropName/Prop, Tree is populated, per Kind.
type RawConflict struct {
	Kind     RawConflictKind
	Text     *TextConflictDetail
	PropName string
	Prop     *PropValues
	Tree     *TreeConflictRaw
}

// Workspace is the local working-copy surface the conflict engine reads
// and mutates (spec §6).
type Workspace interface {
	ReadKind(ctx context.Context, path string, showHidden bool) (Kind, error)
	GetPristineContents(ctx context.Context, path string) (io.ReadCloser, error)
	GetPristineProps(ctx context.Context, path string) (map[string]string, error)
	PropList(ctx context.Context, path string) (map[string]string, error)
	GetChildrenOfWorkingNode(ctx context.Context, path string, showHidden bool) ([]string, error)
	GetBaseChildren(ctx context.Context, path string, showHidden bool) ([]string, error)
	NodeWasMovedAway(ctx context.Context, path string) (movedTo string, ok bool, err error)
	NodeWasMovedHere(ctx context.Context, path string) (movedFrom string, ok bool, err error)
	GetWCRoot(ctx context.Context, path string) (string, error)
	GetReposInfo(ctx context.Context, path string) (reposRoot, reposUUID, relpath string, err error)

	AcquireWriteLockForResolve(ctx context.Context, path string) (lockAbspath string, err error)
	ReleaseWriteLock(ctx context.Context, lockAbspath string) error

	ConflictTextMarkResolved(ctx context.Context, path string, choice ConflictChoice) error
	ConflictPropMarkResolved(ctx context.Context, path, propName string, choice ConflictChoice) error
	DelTreeConflict(ctx context.Context, path string) error
	TreeUpdateBreakMovedAway(ctx context.Context, path string) error
	TreeUpdateRaiseMovedAway(ctx context.Context, path string) error
	TreeUpdateMovedAwayNode(ctx context.Context, path string) error

	Delete(ctx context.Context, path string) error
	AddReposFile(ctx context.Context, path string, contents io.Reader, props map[string]string, sourceURL string, sourceRev int64) error
	MergeText(ctx context.Context, path string, base, working, incoming io.Reader) (textConflicted bool, propStatus string, err error)

	ReadConflictDescriptions(ctx context.Context, path string) ([]RawConflict, error)

	// Status reports a path's modification state, used by the shelf
	// store's apply gate (spec §4.7).
	Status(ctx context.Context, path string) (Status, error)
}
