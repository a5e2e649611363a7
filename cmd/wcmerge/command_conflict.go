// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/antgroup/hugescm-wcmerge/internal/conflict"
	"github.com/antgroup/hugescm-wcmerge/internal/executor"
	"github.com/antgroup/hugescm-wcmerge/internal/option"
	"github.com/antgroup/hugescm-wcmerge/internal/resolvedetail"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// ConflictCmd groups the conflict-inspection and resolution subcommands.
type ConflictCmd struct {
	List    ConflictListCmd    `cmd:"" help:"List conflicts and their applicable resolution options"`
	Resolve ConflictResolveCmd `cmd:"" help:"Resolve a conflict by option id"`
}

// ConflictListCmd loads one or more paths' conflicts concurrently
// (conflict.LoadMany), populates tree-conflict detail where present, and
// prints descriptions and applicable options for each.
type ConflictListCmd struct {
	Paths []string `arg:"" help:"Working-copy paths"`
}

func (c *ConflictListCmd) Run(g *Globals) error {
	ctx := context.Background()
	ws := g.Workspace()
	confs, err := conflict.LoadMany(ctx, ws, c.Paths)
	if err != nil {
		return err
	}
	for _, conf := range confs {
		if err := describeOne(ctx, g, ws, conf); err != nil {
			return err
		}
	}
	return nil
}

func describeOne(ctx context.Context, g *Globals, ws *workspace.MemWorkspace, conf *conflict.Conflict) error {
	fmt.Printf("=== %s ===\n", conf.LocalPath)
	if conf.HasTreeConflict() {
		if err := resolvedetail.Populate(ctx, g.Session(), ws, conf); err != nil {
			return err
		}
		fmt.Println(conflict.DescribeTreeIncoming(conf))
		local, err := conflict.DescribeTreeLocal(ctx, ws, conf)
		if err != nil {
			return err
		}
		fmt.Println(local)
		for _, opt := range option.TreeOptions(conf) {
			fmt.Printf("  %s: %s\n", opt.ID, opt.Description)
		}
	}
	if conf.HasTextConflict() {
		fmt.Println(conflict.DescribeText(conf))
		for _, opt := range option.TextOptions(conf) {
			fmt.Printf("  %s: %s\n", opt.ID, opt.Description)
		}
	}
	for _, name := range conf.PropConflictNames() {
		fmt.Println(conflict.DescribeProp(conf, name))
		for _, opt := range option.PropOptions(conf, name) {
			fmt.Printf("  %s: %s\n", opt.ID, opt.Description)
		}
	}
	return nil
}

// ConflictResolveCmd applies a resolution option to a path's conflict.
type ConflictResolveCmd struct {
	Path     string `arg:"" help:"Working-copy path"`
	Option   string `arg:"" help:"Resolution option id"`
	PropName string `name:"prop" help:"Property name, when resolving a property conflict" placeholder:"<name>"`
}

func (c *ConflictResolveCmd) Run(g *Globals) error {
	ctx := context.Background()
	ws := g.Workspace()
	conf, err := conflict.Load(ctx, ws, c.Path)
	if err != nil {
		return err
	}
	if conf.HasTreeConflict() {
		if err := resolvedetail.Populate(ctx, g.Session(), ws, conf); err != nil {
			return err
		}
	}
	if err := executor.Resolve(ctx, ws, g.Session(), conf, c.PropName, option.ID(c.Option)); err != nil {
		return err
	}
	fmt.Printf("resolved '%s' with '%s'\n", c.Path, c.Option)
	return nil
}
