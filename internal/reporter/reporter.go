// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package reporter implements the ChangeReporter (C5 in SPEC_FULL.md):
// it receives every ast.Tree mutation, resolves the node's enclosing
// scope and shadow membership, and routes the mark to the matching
// change.Timeline.
package reporter

import (
	"fmt"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/change"
	"fillmore-labs.com/astpass/internal/scopetrack"
	"fillmore-labs.com/astpass/internal/shadowreg"
)

// Reporter implements ast.Reporter and fans mutations out to the right
// region's Timeline. The zero value is not usable; construct with New.
type Reporter struct {
	clock    *change.Clock
	registry *shadowreg.Registry

	mainTree *ast.Tree
	main     *change.Timeline
	shadows  map[shadowreg.ShadowID]*change.Timeline
}

// New creates a Reporter for mainTree, using registry to resolve shadow
// membership. It registers every scope root already present in mainTree
// so that a pass's first run sees the tree as it stood at pipeline
// start, matching the "first run: all scopes in region" convention.
func New(mainTree *ast.Tree, registry *shadowreg.Registry) *Reporter {
	clock := change.NewClock()
	r := &Reporter{
		clock:    clock,
		registry: registry,
		mainTree: mainTree,
		main:     change.NewTimeline(clock),
		shadows:  make(map[shadowreg.ShadowID]*change.Timeline),
	}

	r.registerExistingScopes(mainTree, r.main)

	return r
}

func (r *Reporter) registerExistingScopes(tree *ast.Tree, tl *change.Timeline) {
	for id := range tree.NodeIDs() {
		n := tree.Node(id)
		if n != nil && n.IsScopeRoot() {
			tl.Register(scopetrack.ScopeRoot{Tree: tree, Node: id})
		}
	}
}

// Report implements ast.Reporter. It is called by *ast.Tree after every
// structural or attribute mutation.
func (r *Reporter) Report(tree *ast.Tree, id ast.NodeID) {
	scope, err := scopetrack.Enclosing(tree, id)
	if err != nil {
		// A node outside any scope root (e.g. one just detached from the
		// tree root) has nothing to mark; this is not an error condition
		// for the reporter, just a no-op.
		return
	}

	r.timelineFor(tree).Mark(scope)
}

func (r *Reporter) timelineFor(tree *ast.Tree) *change.Timeline {
	if id, ok := r.registry.InShadow(tree); ok {
		if tl, ok := r.shadows[id]; ok {
			return tl
		}
		// The shadow was registered with the registry but AttachShadow on
		// the reporter was never called; lazily create its timeline so a
		// mark is never silently dropped.
		tl := change.NewTimeline(r.clock)
		r.registerExistingScopes(tree, tl)
		r.shadows[id] = tl

		return tl
	}

	return r.main
}

// AttachShadow must be called when a shadow subtree is registered with
// the ShadowRegistry (internal/shadowmgr's WRAP phase), before any pass
// observes it. It creates the shadow's Timeline and registers its
// existing scope roots, so the shadow's own first pass run sees it in
// full.
func (r *Reporter) AttachShadow(id shadowreg.ShadowID, shadow *ast.Tree) {
	if _, ok := r.shadows[id]; ok {
		return
	}

	tl := change.NewTimeline(r.clock)
	r.registerExistingScopes(shadow, tl)
	r.shadows[id] = tl
}

// DetachShadow must be called when a shadow is unregistered (UNWRAP).
// Its timeline is discarded; a pass that later sees a shadow reattached
// at the same host under a new ShadowID starts that shadow's history
// fresh, which is correct since it is a structurally new subtree.
func (r *Reporter) DetachShadow(id shadowreg.ShadowID) {
	delete(r.shadows, id)
}

// Query returns the scopes in region that changed since passID's last
// committed timestamp (see Timeline.Query). It returns an error only
// for RegionShadow against a ShadowID the reporter has never attached.
func (r *Reporter) Query(passID string, region Region) (change.ScopeSet, error) {
	switch region.Kind {
	case RegionMain:
		return r.main.Query(passID), nil

	case RegionShadow:
		tl, ok := r.shadows[region.Shadow]
		if !ok {
			return change.ScopeSet{}, fmt.Errorf("reporter.Query: unknown shadow %d", region.Shadow)
		}

		return tl.Query(passID), nil

	case RegionShadowsAll:
		sets := make([]change.ScopeSet, 0, len(r.shadows))
		for _, tl := range r.shadows {
			sets = append(sets, tl.Query(passID))
		}

		return change.Merge(sets...), nil

	case RegionAll:
		sets := make([]change.ScopeSet, 0, len(r.shadows)+1)
		sets = append(sets, r.main.Query(passID))
		for _, tl := range r.shadows {
			sets = append(sets, tl.Query(passID))
		}

		return change.Merge(sets...), nil

	default:
		return change.ScopeSet{}, fmt.Errorf("reporter.Query: unknown region kind %d", region.Kind)
	}
}

// CommitPass records T0 (the clock value snapshotted before the pass
// ran) against passID in every timeline that region spans.
func (r *Reporter) CommitPass(passID string, region Region, t0 int64) {
	switch region.Kind {
	case RegionMain:
		r.main.CommitPass(passID, t0)

	case RegionShadow:
		if tl, ok := r.shadows[region.Shadow]; ok {
			tl.CommitPass(passID, t0)
		}

	case RegionShadowsAll:
		for _, tl := range r.shadows {
			tl.CommitPass(passID, t0)
		}

	case RegionAll:
		r.main.CommitPass(passID, t0)
		for _, tl := range r.shadows {
			tl.CommitPass(passID, t0)
		}
	}
}

// Tick snapshots the shared clock's current value. Callers use this
// immediately before invoking a pass to obtain T0.
func (r *Reporter) Tick() int64 { return r.clock.Current() }

// Clock exposes the shared clock for components (e.g. internal/loop)
// that need to read it directly rather than through a timeline.
func (r *Reporter) Clock() *change.Clock { return r.clock }

// ShadowIDs reports which shadows currently have a timeline attached.
func (r *Reporter) ShadowIDs() []shadowreg.ShadowID {
	ids := make([]shadowreg.ShadowID, 0, len(r.shadows))
	for id := range r.shadows {
		ids = append(ids, id)
	}

	return ids
}

// MainTimeline exposes the main region's Timeline directly, for
// internal/state to read its pass timestamps when building a Snapshot.
func (r *Reporter) MainTimeline() *change.Timeline { return r.main }

// ShadowTimeline exposes a shadow region's Timeline directly, for the
// same reason.
func (r *Reporter) ShadowTimeline(id shadowreg.ShadowID) (*change.Timeline, bool) {
	tl, ok := r.shadows[id]
	return tl, ok
}

// Restore rebuilds a Reporter's clock and per-region pass timestamps
// from a previously captured state. It does not touch mainTree or
// registry, which the caller must already have restored (e.g. via
// ast.RestoreTree and shadowreg.Registry.Register) before calling this.
func Restore(mainTree *ast.Tree, registry *shadowreg.Registry, clockValue int64) *Reporter {
	r := New(mainTree, registry)
	r.clock.RestoreTo(clockValue)

	for id := range registry.Shadows() {
		if hostTree, host, ok := registry.HostOf(id); ok {
			if shadow, ok := hostTree.ShadowAt(host); ok {
				r.AttachShadow(id, shadow)
			}
		}
	}

	return r
}
