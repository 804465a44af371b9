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

package change_test

import (
	"testing"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/change"
	"fillmore-labs.com/astpass/internal/scopetrack"
)

func TestTimelineFirstRunReturnsAllKnownScopes(t *testing.T) {
	t.Parallel()

	tree := ast.NewTree()
	root, err := tree.New(ast.KindProgram, ast.Location{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	clock := change.NewClock()
	tl := change.NewTimeline(clock)

	scope := scopetrack.ScopeRoot{Tree: tree, Node: root}
	tl.Register(scope)

	set := tl.Query("inline-alias")
	if !set.FirstRun {
		t.Fatalf("expected FirstRun on never-queried pass")
	}
	if !set.Contains(scope) {
		t.Fatalf("expected first run to contain registered scope")
	}
}

func TestTimelineQueryAfterCommitReturnsOnlyChangedScopes(t *testing.T) {
	t.Parallel()

	tree := ast.NewTree()
	root, err := tree.New(ast.KindProgram, ast.Location{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	fn, err := tree.New(ast.KindFunction, ast.Location{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	clock := change.NewClock()
	tl := change.NewTimeline(clock)

	scopeRoot := scopetrack.ScopeRoot{Tree: tree, Node: root}
	scopeFn := scopetrack.ScopeRoot{Tree: tree, Node: fn}
	tl.Register(scopeRoot)
	tl.Register(scopeFn)

	// First run consumes the "all scopes" convention.
	tl.Query("p")
	t0 := clock.Current()
	tl.CommitPass("p", t0)

	tl.Mark(scopeFn)

	set := tl.Query("p")
	if set.FirstRun {
		t.Fatalf("expected non-first-run query after commit")
	}
	if !set.Contains(scopeFn) {
		t.Fatalf("expected changed scope to be present")
	}
	if set.Contains(scopeRoot) {
		t.Fatalf("expected untouched scope to be absent")
	}
}

func TestTimelineClockMonotonic(t *testing.T) {
	t.Parallel()

	clock := change.NewClock()
	tlA := change.NewTimeline(clock)
	tlB := change.NewTimeline(clock)

	tree := ast.NewTree()
	root, _ := tree.New(ast.KindProgram, ast.Location{})
	scope := scopetrack.ScopeRoot{Tree: tree, Node: root}

	tlA.Mark(scope)
	a := clock.Current()
	tlB.Mark(scope)
	b := clock.Current()

	if !(b > a) {
		t.Fatalf("expected strictly increasing clock across regions, got a=%d b=%d", a, b)
	}
}

func TestTimelineTombstoneRemovesFromFirstRun(t *testing.T) {
	t.Parallel()

	tree := ast.NewTree()
	root, _ := tree.New(ast.KindProgram, ast.Location{})

	clock := change.NewClock()
	tl := change.NewTimeline(clock)

	scope := scopetrack.ScopeRoot{Tree: tree, Node: root}
	tl.Register(scope)
	tl.Tombstone(scope)

	set := tl.Query("p")
	if set.Contains(scope) {
		t.Fatalf("expected tombstoned scope to be excluded from first run")
	}
}

func TestMergeDeduplicatesAndPropagatesFirstRun(t *testing.T) {
	t.Parallel()

	tree := ast.NewTree()
	root, _ := tree.New(ast.KindProgram, ast.Location{})
	scope := scopetrack.ScopeRoot{Tree: tree, Node: root}

	a := change.ScopeSet{Scopes: []scopetrack.ScopeRoot{scope}}
	b := change.ScopeSet{Scopes: []scopetrack.ScopeRoot{scope}, FirstRun: true}

	merged := change.Merge(a, b)
	if !merged.FirstRun {
		t.Fatalf("expected merged set to carry FirstRun")
	}
	if len(merged.Scopes) != 1 {
		t.Fatalf("expected deduplication, got %d scopes", len(merged.Scopes))
	}
}
