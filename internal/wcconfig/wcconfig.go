// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package wcconfig is the engine's TOML-backed configuration, following
// the Core/Overwrite layering pattern used by the rest of the corpus for
// settings that can come from a file, the environment, or CLI flags in
// increasing priority order.
package wcconfig

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Remote holds the coordinates for the repository session a command-line
// invocation should connect to.
type Remote struct {
	URL      string `toml:"url,omitempty"`
	Username string `toml:"username,omitempty"`
}

func (r *Remote) overwriteStr(a, b string) string {
	if len(b) != 0 {
		return b
	}
	return a
}

// Overwrite replaces each field of r with o's value where o's is non-empty;
// fields that are empty in o keep r's value.
func (r *Remote) Overwrite(o *Remote) {
	if o == nil {
		return
	}
	r.URL = r.overwriteStr(r.URL, o.URL)
	r.Username = r.overwriteStr(r.Username, o.Username)
}

// Core is the top-level configuration document, loaded from the --config
// path and then overwritten by CLI flags. No default file location is read.
type Core struct {
	Remote          Remote `toml:"remote,omitempty"`
	Verbose         bool   `toml:"verbose,omitempty"`
	JSON            bool   `toml:"json,omitempty"`
	ConsiderInherit bool   `toml:"consider_inheritance,omitempty"`
	ShelfDir        string `toml:"shelf_dir,omitempty"`
}

// Overwrite layers o on top of c, o's non-zero fields taking priority.
func (c *Core) Overwrite(o *Core) {
	if o == nil {
		return
	}
	c.Remote.Overwrite(&o.Remote)
	if o.Verbose {
		c.Verbose = true
	}
	if o.JSON {
		c.JSON = true
	}
	if o.ConsiderInherit {
		c.ConsiderInherit = true
	}
	if o.ShelfDir != "" {
		c.ShelfDir = o.ShelfDir
	}
}

// Load reads and decodes a TOML config file at path. A missing file is
// not an error; it yields a zero Core.
func Load(path string) (*Core, error) {
	c := &Core{}
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}
