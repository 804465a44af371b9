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

package change

import "fillmore-labs.com/astpass/internal/scopetrack"

// Timeline is a single region's change history: one per main tree, one
// per attached shadow. Keeping regions structurally separate (rather
// than one shared table keyed by scope root) is what stops a shadow's
// churn from ever being visible to a pass querying the main region, and
// vice versa — the shadow-isolation requirement in spec.md §3/§8.
//
// All timestamps are drawn from a single shared Clock, so values from
// different regions remain comparable and the clock as a whole is
// strictly monotonic across the run even though bookkeeping is
// partitioned.
type Timeline struct {
	clock *Clock

	known     []scopetrack.ScopeRoot // registration order, for deterministic iteration
	knownSet  map[scopetrack.ScopeRoot]struct{}
	lastTouch map[scopetrack.ScopeRoot]int64
	passLast  map[string]int64
}

// NewTimeline creates an empty Timeline that stamps against clock.
func NewTimeline(clock *Clock) *Timeline {
	return &Timeline{
		clock:     clock,
		knownSet:  make(map[scopetrack.ScopeRoot]struct{}),
		lastTouch: make(map[scopetrack.ScopeRoot]int64),
		passLast:  make(map[string]int64),
	}
}

// Register adds scope to the region's known scope set without marking it
// changed. Used when a scope-root node is created so that a pass's first
// run sees it even if it is never itself mutated again.
func (tl *Timeline) Register(scope scopetrack.ScopeRoot) {
	if _, ok := tl.knownSet[scope]; ok {
		return
	}

	tl.knownSet[scope] = struct{}{}
	tl.known = append(tl.known, scope)
}

// Mark records scope as changed at the current tick, registering it if
// this is the first time the region has seen it.
func (tl *Timeline) Mark(scope scopetrack.ScopeRoot) {
	tl.Register(scope)
	tl.lastTouch[scope] = tl.clock.Tick()
}

// Tombstone removes scope from the region entirely: it is no longer
// known or changed, so it will neither appear in a first-run "all
// scopes" result nor in a future delta.
func (tl *Timeline) Tombstone(scope scopetrack.ScopeRoot) {
	if _, ok := tl.knownSet[scope]; !ok {
		return
	}

	delete(tl.knownSet, scope)
	delete(tl.lastTouch, scope)

	for i, s := range tl.known {
		if s == scope {
			tl.known = append(tl.known[:i], tl.known[i+1:]...)
			break
		}
	}
}

// Query returns the scopes in this region that changed since passID's
// last committed timestamp. If passID has never committed a timestamp
// here, Query returns every known scope in the region — the "first run
// of P: change set = all scopes in region" convention (spec.md §4.2).
func (tl *Timeline) Query(passID string) ScopeSet {
	last, seen := tl.passLast[passID]
	if !seen {
		scopes := make([]scopetrack.ScopeRoot, len(tl.known))
		copy(scopes, tl.known)

		return ScopeSet{Scopes: scopes, FirstRun: true}
	}

	var scopes []scopetrack.ScopeRoot
	for _, s := range tl.known {
		if tl.lastTouch[s] > last {
			scopes = append(scopes, s)
		}
	}

	return ScopeSet{Scopes: scopes}
}

// CommitPass records T0, the clock value snapshotted before passID ran,
// as the timestamp against which its next Query is evaluated. Callers
// (internal/loop) must snapshot the clock before invoking a pass and
// commit that snapshot, not the post-run clock value, or a change made
// by the pass itself would be invisible to its own next run but visible
// to others out of order (spec.md §4.7).
func (tl *Timeline) CommitPass(passID string, t0 int64) {
	tl.passLast[passID] = t0
}

// Current returns the shared clock's current value.
func (tl *Timeline) Current() int64 { return tl.clock.Current() }

// PassTimestamps returns every pass's committed timestamp in this
// region, passID -> T0. Used by internal/state to build a Snapshot;
// callers must sort before serializing since map iteration order is
// not stable.
func (tl *Timeline) PassTimestamps() map[string]int64 {
	out := make(map[string]int64, len(tl.passLast))
	for k, v := range tl.passLast {
		out[k] = v
	}

	return out
}

// RestorePassTimestamp sets passID's committed timestamp directly,
// bypassing CommitPass's "caller snapshots T0 before running" contract
// — used only when reconstructing a Timeline from a Snapshot.
func (tl *Timeline) RestorePassTimestamp(passID string, t0 int64) {
	tl.passLast[passID] = t0
}
