// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package rangeset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antgroup/hugescm-wcmerge/internal/rangeset"
)

func r(start, end rangeset.Revnum, inheritable bool) rangeset.Range {
	return rangeset.Range{Start: start, End: end, Inheritable: inheritable}
}

func TestMergeCombinesOverlapping(t *testing.T) {
	// spec S4
	a := rangeset.List{r(0, 5, true), r(10, 15, true)}
	b := rangeset.List{r(4, 11, true)}
	got := rangeset.Merge(a, b)
	require.Equal(t, rangeset.List{r(0, 15, true)}, got)
}

func TestRemoveSimple(t *testing.T) {
	// spec S5
	eraser := rangeset.List{r(0, 10, true)}
	whiteboard := rangeset.List{r(5, 15, true)}
	got := rangeset.Remove(eraser, whiteboard, false)
	require.Equal(t, rangeset.List{r(10, 15, true)}, got)
}

func TestInvariantSelfOps(t *testing.T) {
	lists := []rangeset.List{
		{r(0, 5, true)},
		{r(0, 5, true), r(10, 20, false)},
		{r(3, 7, false), r(7, 12, true)},
	}
	for _, l := range lists {
		assert.Equal(t, l, rangeset.Merge(l, l), "merge(r,r) == r")
		assert.Equal(t, l, rangeset.Intersect(l, l, true), "intersect(r,r) == r")
		assert.Empty(t, rangeset.Remove(l, l, true), "remove(r,r) == empty")
	}
}

func TestMergeCommutative(t *testing.T) {
	a := rangeset.List{r(0, 5, true), r(20, 30, false)}
	b := rangeset.List{r(4, 22, true)}
	assert.Equal(t, rangeset.Merge(a, b), rangeset.Merge(b, a))
}

func TestDiffReconstructsTarget(t *testing.T) {
	from := rangeset.List{r(0, 10, true), r(20, 30, true)}
	to := rangeset.List{r(5, 25, true)}
	deleted, added := rangeset.Diff(from, to, true)
	reconstructed := rangeset.Merge(rangeset.Remove(deleted, from, true), added)
	assert.Equal(t, to, reconstructed)
}

func TestReverse(t *testing.T) {
	a := rangeset.List{r(0, 5, true), r(10, 15, false)}
	got := rangeset.Reverse(a)
	require.Equal(t, rangeset.List{r(15, 10, false), r(5, 0, true)}, got)
}

func TestInheritableStripsNonInheritableInBound(t *testing.T) {
	a := rangeset.List{r(0, 5, false), r(5, 10, true)}
	got := rangeset.Inheritable(a, 0, 10)
	require.Equal(t, rangeset.List{r(5, 10, true)}, got)
}

func TestInheritableUnboundedDropsAllNonInheritable(t *testing.T) {
	a := rangeset.List{r(0, 5, false), r(5, 10, true)}
	got := rangeset.Inheritable(a, rangeset.InvalidRevnum, rangeset.InvalidRevnum)
	require.Equal(t, rangeset.List{r(5, 10, true)}, got)
}

func TestContains(t *testing.T) {
	rg := r(3, 7, true)
	assert.False(t, rg.Contains(3))
	assert.True(t, rg.Contains(4))
	assert.True(t, rg.Contains(7))
	assert.False(t, rg.Contains(8))
}
