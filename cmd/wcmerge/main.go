// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Command wcmerge is a CLI front end over the conflict and mergeinfo
// engine: conflict listing/resolution, shelf management, and mergeinfo
// algebra, in the spirit of cmd/zeta's single-binary, struct-of-commands
// layout.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/antgroup/hugescm-wcmerge/internal/wcconfig"
	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
	"github.com/antgroup/hugescm-wcmerge/internal/wclog"
)

// App is the top-level struct-of-commands kong binds flags and
// subcommands onto, mirroring cmd/zeta's App.
type App struct {
	Globals

	Conflict   ConflictCmd   `cmd:"" help:"Inspect and resolve working-copy conflicts"`
	Shelf      ShelfCmd      `cmd:"" help:"Manage shelves of uncommitted local modifications"`
	Checkpoint CheckpointCmd `cmd:"" help:"Snapshot and revert in-progress work"`
	Mergeinfo  MergeinfoCmd  `cmd:"" help:"Parse and combine svn:mergeinfo property values"`
}

func main() {
	var app App
	parser := kong.Must(&app,
		kong.Name("wcmerge"),
		kong.Description("Working-copy conflict and mergeinfo engine"),
		kong.UsageOnError(),
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg, err := wcconfig.Load(app.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wcmerge: %v\n", err)
		os.Exit(1)
	}
	cfg.Overwrite(&wcconfig.Core{
		Verbose:         app.Verbose,
		JSON:            app.JSON,
		ConsiderInherit: app.ConsiderInheritance,
	})
	app.Globals.config = cfg
	app.Globals.Verbose = cfg.Verbose
	app.Globals.JSON = cfg.JSON
	app.Globals.ConsiderInheritance = cfg.ConsiderInherit

	wclog.Configure(app.Verbose, app.JSON)

	if err := ctx.Run(&app.Globals); err != nil {
		wrapped := app.Globals.Exitf(err)
		fmt.Fprintf(os.Stderr, "wcmerge: %v\n", wrapped)
		if e, ok := wrapped.(*wcerr.ErrExitCode); ok {
			os.Exit(e.ExitCode)
		}
		os.Exit(2)
	}
}
