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

package ast_test

import (
	"testing"

	"fillmore-labs.com/astpass/internal/ast"
)

func TestNewTracksRootUpwardAsTreeGrowsBottomUp(t *testing.T) {
	t.Parallel()

	tree := ast.NewTree()

	name, err := tree.New(ast.KindName, ast.Location{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tree.Root() != name {
		t.Fatalf("expected first node to be root")
	}

	fn, err := tree.New(ast.KindFunction, ast.Location{}, name)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tree.Root() != fn {
		t.Fatalf("expected root to move to fn once it subsumed name")
	}
}

func TestDetachClearsParentAndRemovesFromChildren(t *testing.T) {
	t.Parallel()

	tree := ast.NewTree()
	a, _ := tree.New(ast.KindName, ast.Location{})
	b, _ := tree.New(ast.KindName, ast.Location{})
	block, err := tree.New(ast.KindBlock, ast.Location{}, a, b)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := tree.Detach(a); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	if tree.Node(a).Parent().Valid() {
		t.Fatalf("expected detached node to have no parent")
	}

	children := tree.Node(block).Children()
	if len(children) != 1 || children[0] != b {
		t.Fatalf("expected block to keep only b as a child, got %v", children)
	}
}

func TestDetachRootFails(t *testing.T) {
	t.Parallel()

	tree := ast.NewTree()
	root, _ := tree.New(ast.KindProgram, ast.Location{})

	if err := tree.Detach(root); err == nil {
		t.Fatalf("expected error detaching the tree root")
	}
}

func TestInsertBeforeAndAfter(t *testing.T) {
	t.Parallel()

	tree := ast.NewTree()
	a, _ := tree.New(ast.KindName, ast.Location{})
	c, _ := tree.New(ast.KindName, ast.Location{})
	block, err := tree.New(ast.KindBlock, ast.Location{}, a, c)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	b, err := tree.New(ast.KindName, ast.Location{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tree.InsertBefore(c, b); err != nil {
		t.Fatalf("InsertBefore: %v", err)
	}

	children := tree.Node(block).Children()
	want := []ast.NodeID{a, b, c}
	if len(children) != len(want) {
		t.Fatalf("got %v, want %v", children, want)
	}
	for i := range want {
		if children[i] != want[i] {
			t.Fatalf("got %v, want %v", children, want)
		}
	}
}

func TestReplaceAtRoot(t *testing.T) {
	t.Parallel()

	tree := ast.NewTree()
	old, _ := tree.New(ast.KindProgram, ast.Location{})
	replacement, err := tree.New(ast.KindProgram, ast.Location{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := tree.Replace(old, replacement); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if tree.Root() != replacement {
		t.Fatalf("expected root to be the replacement")
	}
	if tree.Node(old).Parent().Valid() {
		t.Fatalf("expected old root to be detached, not reparented")
	}
}

func TestAttachShadowRejectsDoubleAttach(t *testing.T) {
	t.Parallel()

	tree := ast.NewTree()
	host, _ := tree.New(ast.KindCall, ast.Location{})

	if err := tree.AttachShadow(host, ast.NewTree()); err != nil {
		t.Fatalf("AttachShadow: %v", err)
	}
	if err := tree.AttachShadow(host, ast.NewTree()); err == nil {
		t.Fatalf("expected second AttachShadow to fail")
	}
}

func TestDetachShadowRejectsEmptySlot(t *testing.T) {
	t.Parallel()

	tree := ast.NewTree()
	host, _ := tree.New(ast.KindCall, ast.Location{})

	if _, err := tree.DetachShadow(host); err == nil {
		t.Fatalf("expected DetachShadow on an empty slot to fail")
	}
}

func TestCloneSubtreePreservesStructureAndAttributes(t *testing.T) {
	t.Parallel()

	src := ast.NewTree()
	leaf, _ := src.New(ast.KindName, ast.Location{Line: 5})
	if err := src.SetAttribute(leaf, func(a *ast.Attributes) { a.Exported = true }); err != nil {
		t.Fatalf("SetAttribute: %v", err)
	}
	root, err := src.New(ast.KindFunction, ast.Location{Line: 1}, leaf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	dst := ast.NewTree()
	clonedRoot, err := ast.CloneSubtree(src, root, dst)
	if err != nil {
		t.Fatalf("CloneSubtree: %v", err)
	}

	if dst.Node(clonedRoot).Kind() != ast.KindFunction {
		t.Fatalf("expected cloned root to keep kind")
	}
	children := dst.Node(clonedRoot).Children()
	if len(children) != 1 {
		t.Fatalf("expected one cloned child")
	}
	if !dst.Node(children[0]).Attributes().Exported {
		t.Fatalf("expected cloned child to keep its attributes")
	}
}
