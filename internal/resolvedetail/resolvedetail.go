// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resolvedetail populates a conflict's remote-derived detail
// fields (spec §4.3). It is the only part of the engine that contacts the
// remote session; internal/conflict stays pure.
package resolvedetail

import (
	"context"

	"github.com/antgroup/hugescm-wcmerge/internal/conflict"
	"github.com/antgroup/hugescm-wcmerge/internal/rangeset"
	"github.com/antgroup/hugescm-wcmerge/internal/remote"
	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
	"github.com/antgroup/hugescm-wcmerge/internal/workspace"
)

// Populate fills c.IncomingDetails and c.LocalDetails for a tree conflict
// by contacting sess, per the case analysis in spec §4.3. It is a no-op
// when c has no tree conflict. check_path results within a single Populate
// call are cached per (path, rev) since repeated detail lookups commonly
// re-probe the same coordinates (spec §9 open question: this caching is
// explicitly in scope); get_deleted_rev calls are not cached.
func Populate(ctx context.Context, sess remote.Session, ws workspace.Workspace, c *conflict.Conflict) error {
	if !c.HasTreeConflict() {
		return nil
	}
	probe := newPathProbe(sess)

	// c.IncomingDescriber and c.LocalDescriber are two independent
	// categorisations selected once at Load time (spec §4.1), mirroring
	// conflict_type_specific_setup's two independent callback slots in the
	// original implementation: a conflict with an incoming-delete and a
	// locally-missing victim gets both details populated, not one or the
	// other.
	if c.LocalDescriber == conflict.LocalDescriberMissing {
		detail, err := populateLocallyMissing(ctx, sess, probe, c)
		if handleOrPropagate(err) {
			return err
		}
		if detail != nil {
			c.LocalDetails = detail
		}
	}

	switch c.IncomingDescriber {
	case conflict.DescriberIncomingDelete:
		detail, err := populateIncomingDelete(ctx, sess, probe, c)
		if handleOrPropagate(err) {
			return err
		}
		if detail != nil {
			c.IncomingDetails = detail
		}
	case conflict.DescriberIncomingAdd:
		detail, err := populateIncomingAdd(ctx, sess, probe, c)
		if handleOrPropagate(err) {
			return err
		}
		if detail != nil {
			c.IncomingDetails = detail
		}
	case conflict.DescriberIncomingEdit:
		detail, err := populateIncomingEdit(ctx, sess, c)
		if handleOrPropagate(err) {
			return err
		}
		if detail != nil {
			c.IncomingDetails = detail
		}
	}
	return nil
}

// handleOrPropagate implements spec §4.3's failure semantics: path-not-
// found or not-authorised during detail population leave the detail
// unset and fall back to the generic describer; every other error
// propagates. It returns true (and the caller should return err) only
// for the propagating case.
func handleOrPropagate(err error) bool {
	if err == nil {
		return false
	}
	if wcerr.IsErrPathNotFound(err) || wcerr.IsErrPathNotAuthorised(err) {
		return false
	}
	return true
}

// pathProbe caches CheckPath results per (path, rev) within one Populate
// call.
type pathProbe struct {
	sess  remote.Session
	cache map[probeKey]remote.Kind
}

type probeKey struct {
	path string
	rev  rangeset.Revnum
}

func newPathProbe(sess remote.Session) *pathProbe {
	return &pathProbe{sess: sess, cache: make(map[probeKey]remote.Kind)}
}

func (p *pathProbe) checkPath(ctx context.Context, path string, rev rangeset.Revnum) (remote.Kind, error) {
	key := probeKey{path, rev}
	if k, ok := p.cache[key]; ok {
		return k, nil
	}
	k, err := p.sess.CheckPath(ctx, path, rev)
	if err != nil {
		return remote.KindNone, err
	}
	p.cache[key] = k
	return k, nil
}
