// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package mergeinfo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antgroup/hugescm-wcmerge/internal/mergeinfo"
	"github.com/antgroup/hugescm-wcmerge/internal/rangeset"
	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
)

func TestParseAndSerialiseRoundTrip(t *testing.T) {
	// spec S1
	mi, err := mergeinfo.Parse("/trunk:3-5,7*,9-11\n")
	require.NoError(t, err)
	rl, ok := mi.Get("/trunk")
	require.True(t, ok)
	require.Equal(t, rangeset.List{
		{Start: 2, End: 5, Inheritable: true},
		{Start: 6, End: 7, Inheritable: false},
		{Start: 8, End: 11, Inheritable: true},
	}, rl)
	assert.Equal(t, "/trunk:3-5,7*,9-11\n", mergeinfo.Serialise(mi))
}

func TestParseDuplicateKeyMerges(t *testing.T) {
	// spec S2
	mi, err := mergeinfo.Parse("/a:1-10\n/a:6-13\n")
	require.NoError(t, err)
	rl, ok := mi.Get("/a")
	require.True(t, ok)
	require.Equal(t, rangeset.List{{Start: 0, End: 13, Inheritable: true}}, rl)
}

func TestParseOverlapDifferentInheritanceFails(t *testing.T) {
	// spec S3
	_, err := mergeinfo.Parse("/a:1-5,3-7*\n")
	require.Error(t, err)
	assert.True(t, wcerr.IsErrMergeinfoParse(err))
}

func TestParseTolerateRelativePath(t *testing.T) {
	mi, err := mergeinfo.Parse("trunk:5\n")
	require.NoError(t, err)
	_, ok := mi.Get("/trunk")
	assert.True(t, ok)
}

func TestParseEmptyRangeListIsAlwaysAnError(t *testing.T) {
	_, err := mergeinfo.Parse("/trunk:\n")
	require.Error(t, err)
	assert.True(t, wcerr.IsErrMergeinfoParse(err))
}

func TestParseSerialiseIdentityOnCanonicalMergeinfo(t *testing.T) {
	text := "/a:3-5,9-11\n/b:1,2,3\n"
	mi, err := mergeinfo.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "/a:3-5,9-11\n/b:1-3\n", mergeinfo.Serialise(mi))

	mi2, err := mergeinfo.Parse(mergeinfo.Serialise(mi))
	require.NoError(t, err)
	assert.True(t, mi.Equal(mi2))
}

func TestCatalogOrdering(t *testing.T) {
	cat := mergeinfo.NewCatalog()
	b, _ := mergeinfo.Parse("/trunk:1-5\n")
	a, _ := mergeinfo.Parse("/trunk:1-5\n")
	cat.Set("/zeta", b)
	cat.Set("/alpha", a)
	assert.Equal(t, []string{"/alpha", "/zeta"}, cat.Paths())
}
