// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package rangeset

// Merge returns the union of a and b, always honouring inheritance: two
// equal ranges merge into one inheritable range even if one side was not,
// matching svn_rangelist_merge's "only non-inheritable+non-inheritable
// stays non-inheritable" rule (spec S4).
func Merge(a, b List) List {
	var out List
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		e1, e2 := a[i], b[j]
		switch {
		case e1.Start == e2.Start && e1.End == e2.End:
			if e1.Inheritable || e2.Inheritable {
				e1.Inheritable = true
			}
			out = combineWithLast(out, e1, true)
			i++
			j++
		case compareRanges(e1, e2) < 0:
			out = combineWithLast(out, e1, true)
			i++
		default:
			out = combineWithLast(out, e2, true)
			j++
		}
	}
	for ; i < len(a); i++ {
		out = combineWithLast(out, a[i], true)
	}
	for ; j < len(b); j++ {
		out = combineWithLast(out, b[j], true)
	}
	return out
}

// rangeContains reports whether second lies entirely within first.
func rangeContains(first, second Range, considerInheritance bool) bool {
	return first.Start <= second.Start && second.End <= first.End &&
		(!considerInheritance || first.Inheritable == second.Inheritable)
}

// rangeIntersect reports whether first and second share any revision.
func rangeIntersect(first, second Range, considerInheritance bool) bool {
	return first.Start+1 <= second.End && second.Start+1 <= first.End &&
		(!considerInheritance || first.Inheritable == second.Inheritable)
}

// intersectOrRemove is the shared engine behind Intersect and Remove. When
// doRemove is false it computes rangelist1 ∩ rangelist2; when true it
// computes rangelist2 - rangelist1 (rangelist1 is the "eraser").
func intersectOrRemove(rangelist1, rangelist2 List, doRemove, considerInheritance bool) List {
	var out List
	i, j := 0, 0
	lasti := -1
	var wboardelt Range

	for i < len(rangelist2) && j < len(rangelist1) {
		elt2 := rangelist1[j]
		if i != lasti {
			wboardelt = rangelist2[i]
			lasti = i
		}
		elt1 := wboardelt

		switch {
		case rangeContains(elt2, elt1, considerInheritance):
			if !doRemove {
				tmp := Range{Start: elt1.Start, End: elt1.End, Inheritable: elt1.Inheritable || elt2.Inheritable}
				out = combineWithLast(out, tmp, considerInheritance)
			}
			i++
			if elt1.Start == elt2.Start && elt1.End == elt2.End {
				j++
			}
		case rangeIntersect(elt2, elt1, considerInheritance):
			if elt1.Start < elt2.Start {
				var tmp Range
				if doRemove {
					tmp = Range{Start: elt1.Start, End: elt2.Start, Inheritable: elt1.Inheritable}
				} else {
					tmp = Range{Start: elt2.Start, End: minRev(elt1.End, elt2.End), Inheritable: elt1.Inheritable || elt2.Inheritable}
				}
				out = combineWithLast(out, tmp, considerInheritance)
			}
			if elt1.End > elt2.End {
				if !doRemove {
					tmp := Range{Start: maxRev(elt1.Start, elt2.Start), End: elt2.End, Inheritable: elt1.Inheritable || elt2.Inheritable}
					out = combineWithLast(out, tmp, considerInheritance)
				}
				wboardelt.Start = elt2.End
				wboardelt.End = elt1.End
			} else {
				i++
			}
		default:
			if compareRanges(elt2, elt1) < 0 {
				j++
			} else {
				if doRemove {
					if len(out) > 0 {
						if combined, ok := combineRanges(out[len(out)-1], elt1, considerInheritance); ok {
							out[len(out)-1] = combined
						} else {
							out = append(out, elt1)
						}
					} else {
						out = append(out, elt1)
					}
				}
				i++
			}
		}
	}

	if doRemove {
		if i == lasti && i < len(rangelist2) {
			out = combineWithLast(out, wboardelt, considerInheritance)
			i++
		}
		for ; i < len(rangelist2); i++ {
			out = combineWithLast(out, rangelist2[i], considerInheritance)
		}
	}
	return out
}

// Intersect returns the revisions present in both a and b. If
// considerInheritance is false, differing-inheritance overlap still
// intersects and the result is non-inheritable only when both inputs were
// (spec §4.4).
func Intersect(a, b List, considerInheritance bool) List {
	return intersectOrRemove(a, b, false, considerInheritance)
}

// Remove returns whiteboard with every revision present in eraser taken
// out (spec S5).
func Remove(eraser, whiteboard List, considerInheritance bool) List {
	return intersectOrRemove(eraser, whiteboard, true, considerInheritance)
}

// Diff returns the ranges present in from but not to (deleted) and the
// ranges present in to but not from (added).
func Diff(from, to List, considerInheritance bool) (deleted, added List) {
	deleted = Remove(to, from, considerInheritance)
	added = Remove(from, to, considerInheritance)
	return deleted, added
}

// Reverse swaps each range's endpoints and reverses the sequence order, used
// to describe a reverse-merge (spec: "applied by reversing the ranges
// before the set algebra").
func Reverse(a List) List {
	n := len(a)
	if n == 0 {
		return nil
	}
	out := make(List, n)
	for i, r := range a {
		out[n-1-i] = r.Swapped()
	}
	return out
}

// Inheritable strips the non-inheritable ranges bounded by [start, end]
// from a, leaving everything else untouched. If start or end is invalid,
// or end < start, every non-inheritable range in a is dropped regardless
// of bound.
func Inheritable(a List, start, end Revnum) List {
	if len(a) == 0 {
		return nil
	}
	if !start.Valid() || !end.Valid() || end < start {
		var out List
		for _, r := range a {
			if r.Inheritable {
				out = append(out, r)
			}
		}
		return out
	}
	eraser := List{{Start: start, End: end, Inheritable: false}}
	return Remove(eraser, a, true)
}
