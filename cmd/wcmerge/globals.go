// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/antgroup/hugescm-wcmerge/internal/remote"
	"github.com/antgroup/hugescm-wcmerge/internal/wcconfig"
	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// Globals carries the flags every subcommand shares, following the
// command.Globals pattern: one struct embedded by the top-level App,
// passed by pointer into each subcommand's Run.
type Globals struct {
	Verbose             bool   `short:"V" name:"verbose" help:"Make the operation more talkative"`
	JSON                bool   `name:"json" help:"Emit machine-readable JSON log lines"`
	ConfigPath          string `name:"config" help:"Path to a wcmerge TOML config file" placeholder:"<path>"`
	WCRoot              string `name:"wc-root" help:"Working copy root" default:"/wc"`
	ConsiderInheritance bool   `name:"consider-inheritance" help:"Consider inheritance when combining range lists"`

	config *wcconfig.Core
	ws     *workspace.MemWorkspace
	sess   *remote.MemRemote
}

// Workspace lazily constructs the in-memory reference workspace this CLI
// build operates against. A deployment backed by a real on-disk working
// copy would satisfy workspace.Workspace with its own implementation and
// plug it in here instead.
func (g *Globals) Workspace() *workspace.MemWorkspace {
	if g.ws == nil {
		g.ws = workspace.NewMemWorkspace(g.WCRoot, "file:///repo", "00000000-0000-0000-0000-000000000000")
	}
	return g.ws
}

// Session lazily constructs the in-memory reference remote session.
func (g *Globals) Session() *remote.MemRemote {
	if g.sess == nil {
		g.sess = remote.NewMemRemote()
	}
	return g.sess
}

// Exitf classifies err per spec.md §6's CLI exit-code contract (0 success,
// 1 user error, 2 engine error) and wraps it as a *wcerr.ErrExitCode, the
// concrete home for that contract mirroring the teacher's
// zeta.ErrExitCode/IsExitCode convention (pkg/zeta/misc.go). A nil err
// returns nil.
func (g *Globals) Exitf(err error) error {
	if err == nil {
		return nil
	}
	code := 2
	if isUserError(err) {
		code = 1
	}
	return &wcerr.ErrExitCode{ExitCode: code, Message: err.Error()}
}

// isUserError reports whether err stems from bad caller input (a path that
// doesn't exist, isn't versioned or isn't authorised, an unknown resolution
// option, an unparsable mergeinfo value, no auth provider) rather than an
// internal or unexpected
// failure (workspace corruption, a failed external merge helper, or
// anything not recognised as a wcerr kind).
func isUserError(err error) bool {
	return wcerr.IsErrPathNotVersioned(err) ||
		wcerr.IsErrPathNotFound(err) ||
		wcerr.IsErrPathNotAuthorised(err) ||
		wcerr.IsErrOptionNotApplicable(err) ||
		wcerr.IsErrMergeinfoParse(err) ||
		wcerr.IsErrNoProvider(err)
}
