// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/antgroup/hugescm-wcmerge/internal/mergeinfo"
)

// MergeinfoCmd groups the pure mergeinfo-algebra subcommands; none of
// these touch a workspace or remote session.
type MergeinfoCmd struct {
	Parse     MergeinfoParseCmd     `cmd:"" help:"Parse and re-serialise a mergeinfo property value"`
	Merge     MergeinfoMergeCmd     `cmd:"" help:"Union two mergeinfo files"`
	Intersect MergeinfoIntersectCmd `cmd:"" help:"Intersect two mergeinfo files"`
	Diff      MergeinfoDiffCmd      `cmd:"" help:"Diff two mergeinfo files"`
}

func readMergeinfoFile(path string) (*mergeinfo.Mergeinfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return mergeinfo.Parse(string(data))
}

// MergeinfoParseCmd parses a file and prints its canonical serialisation.
type MergeinfoParseCmd struct {
	File string `arg:"" help:"Path to a mergeinfo property value"`
}

func (c *MergeinfoParseCmd) Run(g *Globals) error {
	mi, err := readMergeinfoFile(c.File)
	if err != nil {
		return err
	}
	fmt.Print(mergeinfo.Serialise(mi))
	return nil
}

// combineArgs is the shared flag shape for the two-file binary operations.
type combineArgs struct {
	A string `arg:"" help:"First mergeinfo file"`
	B string `arg:"" help:"Second mergeinfo file"`
}

func (c *combineArgs) load() (a, b *mergeinfo.Mergeinfo, err error) {
	a, err = readMergeinfoFile(c.A)
	if err != nil {
		return nil, nil, err
	}
	b, err = readMergeinfoFile(c.B)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// MergeinfoMergeCmd unions two mergeinfo files.
type MergeinfoMergeCmd struct{ combineArgs }

func (c *MergeinfoMergeCmd) Run(g *Globals) error {
	a, b, err := c.load()
	if err != nil {
		return err
	}
	fmt.Print(mergeinfo.Serialise(mergeinfo.Merge(a, b)))
	return nil
}

// MergeinfoIntersectCmd intersects two mergeinfo files.
type MergeinfoIntersectCmd struct{ combineArgs }

func (c *MergeinfoIntersectCmd) Run(g *Globals) error {
	a, b, err := c.load()
	if err != nil {
		return err
	}
	fmt.Print(mergeinfo.Serialise(mergeinfo.Intersect(a, b, g.ConsiderInheritance)))
	return nil
}

// MergeinfoDiffCmd reports deleted and added revisions between two
// mergeinfo files.
type MergeinfoDiffCmd struct{ combineArgs }

func (c *MergeinfoDiffCmd) Run(g *Globals) error {
	a, b, err := c.load()
	if err != nil {
		return err
	}
	deleted, added := mergeinfo.Diff(a, b, g.ConsiderInheritance)
	fmt.Println("deleted:")
	fmt.Print(mergeinfo.Serialise(deleted))
	fmt.Println("added:")
	fmt.Print(mergeinfo.Serialise(added))
	return nil
}
