// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package wcconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antgroup/hugescm-wcmerge/internal/wcconfig"
)

func TestLoadMissingFileYieldsZeroCore(t *testing.T) {
	c, err := wcconfig.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.False(t, c.Verbose)
}

func TestLoadDecodesTOML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "wcmerge.toml")
	require.NoError(t, os.WriteFile(p, []byte("verbose = true\n[remote]\nurl = \"https://example.invalid/repo\"\n"), 0o644))

	c, err := wcconfig.Load(p)
	require.NoError(t, err)
	assert.True(t, c.Verbose)
	assert.Equal(t, "https://example.invalid/repo", c.Remote.URL)
}

func TestOverwritePrioritisesOther(t *testing.T) {
	base := &wcconfig.Core{Remote: wcconfig.Remote{URL: "https://a.invalid"}}
	override := &wcconfig.Core{Remote: wcconfig.Remote{URL: "https://b.invalid"}, Verbose: true}
	base.Overwrite(override)
	assert.Equal(t, "https://b.invalid", base.Remote.URL)
	assert.True(t, base.Verbose)
}
