// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package rangeset implements the half-open revision range algebra used by
// the mergeinfo subsystem (spec §4.4); its Revnum type is also the revision
// number of the conflict, remote and resolvedetail packages. Every function
// here is pure: it takes canonical range lists and returns fresh range
// lists, canonical except for Reverse's. Cancellation is intentionally not supported — these operations are
// expected to be fast (spec §5).
package rangeset

import (
	"fmt"
	"sort"
)

// Revnum is a repository revision number. InvalidRevnum is the sentinel
// used where spec.md calls for "no revision" (e.g. an unbounded
// Inheritable query).
type Revnum int64

// InvalidRevnum is the sentinel for "no revision".
const InvalidRevnum Revnum = -1

// Valid reports whether r is a real, nonnegative revision number.
func (r Revnum) Valid() bool { return r >= 0 }

// Range is a half-open interval (Start, End] over revisions, tagged with
// whether it is inherited by descendants of its mergeinfo path key.
// Ranges are stored normalised: Start < End. The one exception is the
// result of Reverse, whose ranges are reversed (Start > End).
type Range struct {
	Start       Revnum
	End         Revnum
	Inheritable bool
}

// Contains reports whether rev falls within the half-open interval.
func (r Range) Contains(rev Revnum) bool {
	return r.Start < rev && rev <= r.End
}

// Equal reports whether r and o describe the same range, including
// inheritability.
func (r Range) Equal(o Range) bool {
	return r.Start == o.Start && r.End == o.End && r.Inheritable == o.Inheritable
}

// Swapped returns r with its endpoints swapped, used internally by Reverse.
func (r Range) Swapped() Range {
	return Range{Start: r.End, End: r.Start, Inheritable: r.Inheritable}
}

func (r Range) String() string {
	flag := ""
	if !r.Inheritable {
		flag = "*"
	}
	if r.Start+1 == r.End {
		return fmt.Sprintf("%d%s", r.End, flag)
	}
	return fmt.Sprintf("%d-%d%s", r.Start+1, r.End, flag)
}

// List is a sequence of ranges. A canonical List is sorted ascending by
// Start, contains no overlapping ranges, and has no two adjacent elements
// that are combinable (see combineWithLast). Every function in this
// package accepts canonical lists and, except Reverse, returns canonical
// lists; an empty list is always
// represented as a nil or zero-length List, never as a List containing an
// empty Range.
type List []Range

func (l List) String() string {
	s := ""
	for i, r := range l {
		if i > 0 {
			s += ","
		}
		s += r.String()
	}
	return s
}

// Clone returns an independent copy of l.
func (l List) Clone() List {
	if len(l) == 0 {
		return nil
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

func compareRanges(a, b Range) int {
	switch {
	case a.Start < b.Start:
		return -1
	case a.Start > b.Start:
		return 1
	case a.End < b.End:
		return -1
	case a.End > b.End:
		return 1
	default:
		return 0
	}
}

func minRev(a, b Revnum) Revnum {
	if a < b {
		return a
	}
	return b
}

func maxRev(a, b Revnum) Revnum {
	if a > b {
		return a
	}
	return b
}

// combineRanges attempts to fuse in1 and in2 into a single range. With
// considerInheritance set, ranges whose inheritability differs are never
// fused here, even if they overlap. The result is only non-inheritable when
// both inputs were.
func combineRanges(in1, in2 Range, considerInheritance bool) (Range, bool) {
	if in1.Start <= in2.End && in2.Start <= in1.End {
		if !considerInheritance || in1.Inheritable == in2.Inheritable {
			return Range{
				Start:       minRev(in1.Start, in2.Start),
				End:         maxRev(in1.End, in2.End),
				Inheritable: in1.Inheritable || in2.Inheritable,
			}, true
		}
	}
	return Range{}, false
}

type intersectionKind int

const (
	intersectNone intersectionKind = iota
	intersectEqual
	intersectAdjoining
	intersectOverlapping
	intersectProperSubset
)

// classifyIntersection mirrors get_type_of_intersection: r1 is the range
// being combined in (new_range), r2 is the last range already in the
// accumulator. Inheritability is not considered here.
func classifyIntersection(r1, r2 Range) intersectionKind {
	switch {
	case !(r1.Start <= r2.End && r2.Start <= r1.End):
		return intersectNone
	case r1.Start == r2.Start && r1.End == r2.End:
		return intersectEqual
	case r1.End == r2.Start || r2.End == r1.Start:
		return intersectAdjoining
	case r1.Start <= r2.Start && r1.End >= r2.End:
		return intersectProperSubset
	case r2.Start <= r1.Start && r2.End >= r1.End:
		return intersectProperSubset
	default:
		return intersectOverlapping
	}
}

// combineWithLast appends newRange to output, fusing it with the last
// element when the two intersect. This is the shared primitive behind
// Merge, Intersect, Remove and Inheritable (spec §4.4's combine_with_last).
func combineWithLast(output List, newRange Range, considerInheritance bool) List {
	if len(output) == 0 {
		return append(output, newRange)
	}
	last := output[len(output)-1]
	if combined, ok := combineRanges(last, newRange, considerInheritance); ok {
		output[len(output)-1] = combined
		return output
	}
	if !considerInheritance {
		return append(output, newRange)
	}

	switch classifyIntersection(newRange, last) {
	case intersectNone:
		output = append(output, newRange)
	case intersectEqual:
		output[len(output)-1].Inheritable = true
	case intersectAdjoining:
		output = append(output, newRange)
	case intersectOverlapping:
		r1, r2 := last, newRange
		output = output[:len(output)-1]
		if r2.Start < r1.Start {
			r1, r2 = r2, r1
		}
		if r1.Inheritable {
			r2.Start = r1.End
		} else {
			r1.End = r2.Start
		}
		output = append(output, r1, r2)
		sort.Slice(output, func(i, j int) bool { return compareRanges(output[i], output[j]) < 0 })
	case intersectProperSubset:
		r1, r2 := last, newRange
		var r3 *Range
		output = output[:len(output)-1]
		if r2.Start < r1.Start || r2.End > r1.End {
			r1, r2 = r2, r1
		}
		switch {
		case r1.Inheritable:
			r1.Start = minRev(r1.Start, r2.Start)
			r1.End = maxRev(r1.End, r2.End)
			output = append(output, r1)
		case r1.Start == r2.Start:
			tmp := r1.End
			r1.End = r2.End
			r2.Inheritable = r1.Inheritable
			r1.Inheritable = true
			r2.Start = r1.End
			r2.End = tmp
			output = append(output, r1, r2)
		case r1.End == r2.End:
			r1.End = r2.Start
			r2.Inheritable = true
			output = append(output, r1, r2)
		default:
			r3 = &Range{Start: r2.End, End: r1.End, Inheritable: r1.Inheritable}
			r2.Inheritable = true
			r1.End = r2.Start
			output = append(output, r1, r2, *r3)
		}
		sort.Slice(output, func(i, j int) bool { return compareRanges(output[i], output[j]) < 0 })
	}
	return output
}
