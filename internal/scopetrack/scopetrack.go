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

// Package scopetrack maps AST nodes to their nearest enclosing scope root
// (C3 in SPEC_FULL.md). It has no state of its own: the scope structure is
// entirely determined by the tree's parent links and node kinds.
package scopetrack

import (
	"fmt"

	"fillmore-labs.com/astpass/internal/ast"
)

// ScopeRoot identifies a scope root within a specific tree. Because a
// shadow subtree is its own *ast.Tree, a ScopeRoot rooted in a shadow can
// never compare equal to one rooted in the main tree even if their
// NodeID happens to collide numerically — which is exactly the partition
// the shadow-isolation invariant in spec.md §3/§8 requires.
type ScopeRoot struct {
	Tree *ast.Tree
	Node ast.NodeID
}

// ErrNoScopeRoot is returned when a node's ancestor chain never reaches a
// scope-root node, which indicates a malformed tree (every tree must be
// rooted at or under a program/script/module/function node).
var ErrNoScopeRoot = fmt.Errorf("scopetrack: no enclosing scope root")

// Enclosing walks node's parent chain within tree and returns the
// nearest enclosing scope root. Block nodes and other non-scope-root
// kinds are skipped; only program, script, module-body and function
// nodes stop the walk.
func Enclosing(tree *ast.Tree, node ast.NodeID) (ScopeRoot, error) {
	for id := node; id.Valid(); {
		n := tree.Node(id)
		if n == nil {
			return ScopeRoot{}, fmt.Errorf("scopetrack: %w", ast.ErrInvalidNode)
		}

		if n.IsScopeRoot() {
			return ScopeRoot{Tree: tree, Node: id}, nil
		}

		id = n.Parent()
	}

	return ScopeRoot{}, ErrNoScopeRoot
}
