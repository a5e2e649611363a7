// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/antgroup/hugescm-wcmerge/internal/shelf"
)

// CheckpointCmd groups the checkpoint subcommands: the same shelf store
// as ShelfCmd, under the verb set spec.md's CLI surface names separately
// (save/list/revert/squash/init/finish) for the "snapshot work in
// progress, then revert or finish" workflow rather than shelf's
// "save/apply/unapply" patch-sequence workflow.
type CheckpointCmd struct {
	Save   CheckpointSaveCmd   `cmd:"" help:"Save current local modifications as a new checkpoint version"`
	List   CheckpointListCmd   `cmd:"" help:"List checkpoints"`
	Revert CheckpointRevertCmd `cmd:"" help:"Discard every version after the given one"`
	Squash CheckpointSquashCmd `cmd:"" help:"Fold a checkpoint's versions into one"`
	Init   CheckpointInitCmd   `cmd:"" help:"Create an empty checkpoint"`
	Finish CheckpointFinishCmd `cmd:"" help:"Tear down a finished checkpoint"`
}

// CheckpointSaveCmd captures current local modifications under Paths as a
// new checkpoint version, after setting the required log message revprop.
type CheckpointSaveCmd struct {
	Name    string   `arg:"" help:"Checkpoint name"`
	Paths   []string `arg:"" help:"Paths to capture"`
	Message string   `name:"message" short:"m" help:"Log message" required:""`
}

func (c *CheckpointSaveCmd) Run(g *Globals) error {
	store := g.shelfStore()
	store.SetRevprop(c.Name, shelf.LogMessageKey, c.Message)
	v, err := store.SaveNewVersion(context.Background(), c.Name, c.Paths)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s@%d\n", c.Name, v.Number)
	return nil
}

// CheckpointListCmd lists every checkpoint, oldest-modified first.
type CheckpointListCmd struct{}

func (c *CheckpointListCmd) Run(g *Globals) error {
	for _, sh := range g.shelfStore().List() {
		fmt.Printf("%s (%d versions)\n", sh.Name, sh.MaxVersion)
	}
	return nil
}

// CheckpointRevertCmd discards every version after Version.
type CheckpointRevertCmd struct {
	Name    string `arg:"" help:"Checkpoint name"`
	Version int    `arg:"" help:"Version to revert to"`
}

func (c *CheckpointRevertCmd) Run(g *Globals) error {
	return g.shelfStore().Revert(c.Name, c.Version)
}

// CheckpointSquashCmd folds every version of a checkpoint into one.
type CheckpointSquashCmd struct {
	Name string `arg:"" help:"Checkpoint name"`
}

func (c *CheckpointSquashCmd) Run(g *Globals) error {
	return g.shelfStore().Squash(c.Name)
}

// CheckpointInitCmd creates an empty checkpoint with no versions yet, so
// revprops can be set ahead of the first save.
type CheckpointInitCmd struct {
	Name string `arg:"" help:"Checkpoint name"`
}

func (c *CheckpointInitCmd) Run(g *Globals) error {
	g.shelfStore().SetRevprop(c.Name, shelf.LogMessageKey, "")
	return nil
}

// CheckpointFinishCmd tears down a checkpoint's versions. It does not
// touch any external repository; no repository lifecycle is in scope here.
type CheckpointFinishCmd struct {
	Name string `arg:"" help:"Checkpoint name"`
}

func (c *CheckpointFinishCmd) Run(g *Globals) error {
	g.shelfStore().Finish(c.Name)
	return nil
}
