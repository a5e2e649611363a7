// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package conflict

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// LoadMany loads every path's conflict concurrently. This is the one spot
// the engine allows fan-out (spec §5's single-threaded model governs a
// single conflict's resolution, not read-only loads of independent
// conflict objects across unrelated paths), grounded on the same
// errgroup.Group idiom the rest of the corpus uses for bounded concurrent
// I/O.
func LoadMany(ctx context.Context, ws workspace.Workspace, paths []string) ([]*Conflict, error) {
	out := make([]*Conflict, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			c, err := Load(gctx, ws, p)
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
