// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package remote declares the read-only repository session the conflict
// engine consults to back-fill tree-conflict detail (spec §4.3/§6). The
// engine never writes through this interface; mutation happens through
// internal/workspace instead.
package remote

import (
	"context"
	"io"

	"github.com/antgroup/hugescm-wcmerge/internal/rangeset"
)

// Kind classifies a node at a given path and revision.
type Kind int

const (
	KindNone Kind = iota
	KindFile
	KindDir
	KindSymlink
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// ChangeAction identifies how a path was touched in a single log revision.
type ChangeAction byte

const (
	ActionModify  ChangeAction = 'M'
	ActionAdd     ChangeAction = 'A'
	ActionDelete  ChangeAction = 'D'
	ActionReplace ChangeAction = 'R'
)

// ChangedPath is one entry of a log revision's changed-paths list.
type ChangedPath struct {
	Path         string
	Action       ChangeAction
	CopyFromPath string
	CopyFromRev  rangeset.Revnum
	NodeKind     Kind
}

// LogEntry is a single revision as returned by GetLog, with whatever
// revprops the caller asked for (commonly just "author").
type LogEntry struct {
	Revision     rangeset.Revnum
	Author       string
	Date         string
	Message      string
	ChangedPaths []ChangedPath
}

// LogHandler is invoked once per revision during a GetLog walk, in the
// order GetLog walks from start to end (descending when start > end, as
// the callers in this module request). Returning
// wcerr.ErrStopLog ends the walk without it being treated as a failure;
// GetLog implementations must recognise that sentinel with wcerr.IsStopLog
// and translate it to a nil return. Any other non-nil error aborts the
// walk and propagates to the caller of GetLog.
type LogHandler func(entry *LogEntry) error

// LocationSegment is one run of a path's history sharing a single
// repository-relative location, as returned by GetLocationSegments.
type LocationSegment struct {
	RangeStart rangeset.Revnum
	RangeEnd   rangeset.Revnum
	Path       string
}

// SegmentHandler is invoked once per location segment, youngest first.
type SegmentHandler func(seg *LocationSegment) error

// Session is the read-only repository access the engine needs to populate
// tree-conflict detail. Implementations are expected to be safe for
// sequential use from a single goroutine; the engine does not call it
// concurrently.
type Session interface {
	// CheckPath reports the kind of relpath at rev, or KindNone if it did
	// not exist there.
	CheckPath(ctx context.Context, relpath string, rev rangeset.Revnum) (Kind, error)

	// GetFile returns the full text and versioned properties of relpath at
	// rev.
	GetFile(ctx context.Context, relpath string, rev rangeset.Revnum) (content io.ReadCloser, props map[string]string, err error)

	// GetLog walks revisions start..end (in either direction) touching any
	// of paths, calling handler once per revision. limit <= 0 means
	// unbounded. When needChangedPaths is false, handler receives entries
	// with a nil ChangedPaths slice.
	GetLog(ctx context.Context, paths []string, start, end rangeset.Revnum, limit int, needChangedPaths, strictHistory bool, revprops []string, handler LogHandler) error

	// GetDeletedRev returns the oldest revision in (start, end] in which
	// path was deleted (a replacement counts as a deletion), or
	// wcerr.ErrPathNotFound if it was never deleted in that range.
	GetDeletedRev(ctx context.Context, path string, start, end rangeset.Revnum) (rangeset.Revnum, error)

	// GetLocationSegments walks path's history backward from peg between
	// start (the younger bound) and end (the older bound), calling handler
	// once per segment.
	GetLocationSegments(ctx context.Context, path string, peg, start, end rangeset.Revnum, handler SegmentHandler) error

	// RevProp returns a single revision property (notably "author").
	RevProp(ctx context.Context, rev rangeset.Revnum, name string) (string, error)

	// LatestRevnum returns HEAD.
	LatestRevnum(ctx context.Context) (rangeset.Revnum, error)
}
