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

// Package testsupport provides utilities for building small *ast.Tree
// fixtures in tests: common boilerplate for standing up a tree without
// hand-chaining ast.Tree.New calls in every test.
package testsupport

import (
	"testing"

	"fillmore-labs.com/astpass/internal/ast"
)

// Node is a compact, literal description of a tree to build: its kind
// and any children, built depth-first so ids come out in a predictable
// order (root last).
type Node struct {
	Kind     ast.Kind
	Children []Node
}

// N is shorthand for constructing a Node literal.
func N(kind ast.Kind, children ...Node) Node {
	return Node{Kind: kind, Children: children}
}

// Build materializes n (and its descendants) into tree, returning the
// root's NodeID. It fails the test immediately on any construction
// error, since a malformed fixture is a test bug, not a case under
// test.
func Build(tb testing.TB, tree *ast.Tree, n Node) ast.NodeID {
	tb.Helper()

	childIDs := make([]ast.NodeID, 0, len(n.Children))
	for _, c := range n.Children {
		childIDs = append(childIDs, Build(tb, tree, c))
	}

	id, err := tree.New(n.Kind, ast.Location{}, childIDs...)
	if err != nil {
		tb.Fatalf("testsupport.Build: %v", err)
	}

	return id
}

// NewTree builds a fresh *ast.Tree containing n and returns both.
func NewTree(tb testing.TB, n Node) (*ast.Tree, ast.NodeID) {
	tb.Helper()

	tree := ast.NewTree()
	root := Build(tb, tree, n)

	return tree, root
}
