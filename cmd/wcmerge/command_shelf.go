// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/antgroup/hugescm-wcmerge/internal/shelf"
)

// ShelfCmd groups the shelf/checkpoint subcommands.
type ShelfCmd struct {
	Save    ShelfSaveCmd    `cmd:"" help:"Save local modifications as a new shelf version"`
	Apply   ShelfApplyCmd   `cmd:"" help:"Forward-apply a shelf version"`
	Unapply ShelfUnapplyCmd `cmd:"" help:"Reverse-apply a shelf version"`
	List    ShelfListCmd    `cmd:"" help:"List shelves"`
	Diff    ShelfDiffCmd    `cmd:"" help:"Show the paths touched by a shelf version"`
	Log     ShelfLogCmd     `cmd:"" help:"List a shelf's versions"`
	Drop    ShelfDropCmd    `cmd:"" help:"Delete a shelf entirely"`
	Squash  ShelfSquashCmd  `cmd:"" help:"Fold a shelf's versions into one"`
}

func (g *Globals) shelfStore() *shelf.Store {
	return shelf.NewStore(g.Workspace())
}

// ShelfSaveCmd saves current local modifications under Paths as a new
// version of Name, after setting the required log message revprop.
type ShelfSaveCmd struct {
	Name    string   `arg:"" help:"Shelf name"`
	Paths   []string `arg:"" help:"Paths to capture"`
	Message string   `name:"message" short:"m" help:"Log message" required:""`
}

func (c *ShelfSaveCmd) Run(g *Globals) error {
	store := g.shelfStore()
	store.SetRevprop(c.Name, shelf.LogMessageKey, c.Message)
	v, err := store.SaveNewVersion(context.Background(), c.Name, c.Paths)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s@%d\n", c.Name, v.Number)
	return nil
}

// ShelfApplyCmd forward-applies a shelf version.
type ShelfApplyCmd struct {
	Name    string `arg:"" help:"Shelf name"`
	Version int    `arg:"" help:"Version number"`
}

func (c *ShelfApplyCmd) Run(g *Globals) error {
	return g.shelfStore().Apply(context.Background(), c.Name, c.Version)
}

// ShelfUnapplyCmd reverse-applies a shelf version.
type ShelfUnapplyCmd struct {
	Name    string `arg:"" help:"Shelf name"`
	Version int    `arg:"" help:"Version number"`
}

func (c *ShelfUnapplyCmd) Run(g *Globals) error {
	return g.shelfStore().Unapply(context.Background(), c.Name, c.Version)
}

// ShelfListCmd lists every shelf, oldest-modified first.
type ShelfListCmd struct{}

func (c *ShelfListCmd) Run(g *Globals) error {
	for _, sh := range g.shelfStore().List() {
		if len(sh.Versions) == 0 {
			fmt.Printf("%s (0 versions)\n", sh.Name)
			continue
		}
		newest := sh.Versions[len(sh.Versions)-1]
		fmt.Printf("%s (%d versions, saved %s)\n", sh.Name, sh.MaxVersion, humanize.Time(newest.Mtime))
	}
	return nil
}

// ShelfDiffCmd reports the paths a shelf version touches.
type ShelfDiffCmd struct {
	Name    string `arg:"" help:"Shelf name"`
	Version int    `arg:"" help:"Version number"`
}

func (c *ShelfDiffCmd) Run(g *Globals) error {
	paths, err := g.shelfStore().Diff(c.Name, c.Version)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

// ShelfLogCmd lists a single shelf's versions.
type ShelfLogCmd struct {
	Name string `arg:"" help:"Shelf name"`
}

func (c *ShelfLogCmd) Run(g *Globals) error {
	versions, err := g.shelfStore().Log(c.Name)
	if err != nil {
		return err
	}
	for _, v := range versions {
		fmt.Printf("%s@%d  %s (%s)  %d paths\n", c.Name, v.Number, v.Mtime.Format("2006-01-02 15:04:05"), humanize.Time(v.Mtime), len(v.Paths))
	}
	return nil
}

// ShelfDropCmd deletes a shelf entirely.
type ShelfDropCmd struct {
	Name string `arg:"" help:"Shelf name"`
}

func (c *ShelfDropCmd) Run(g *Globals) error {
	g.shelfStore().Drop(c.Name)
	return nil
}

// ShelfSquashCmd folds every version of a shelf into one.
type ShelfSquashCmd struct {
	Name string `arg:"" help:"Shelf name"`
}

func (c *ShelfSquashCmd) Run(g *Globals) error {
	return g.shelfStore().Squash(c.Name)
}
