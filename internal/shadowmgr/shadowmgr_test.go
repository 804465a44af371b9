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

package shadowmgr_test

import (
	"testing"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/reporter"
	"fillmore-labs.com/astpass/internal/shadowmgr"
	"fillmore-labs.com/astpass/internal/shadowreg"
)

func buildTree(t *testing.T) (*ast.Tree, ast.NodeID, ast.NodeID) {
	t.Helper()

	tree := ast.NewTree()

	name, err := tree.New(ast.KindName, ast.Location{Line: 3})
	if err != nil {
		t.Fatalf("New name: %v", err)
	}

	fn, err := tree.New(ast.KindFunction, ast.Location{Line: 2}, name)
	if err != nil {
		t.Fatalf("New fn: %v", err)
	}

	program, err := tree.New(ast.KindProgram, ast.Location{Line: 1}, fn)
	if err != nil {
		t.Fatalf("New program: %v", err)
	}

	return tree, program, fn
}

func TestWrapThenUnwrapPreservesStructure(t *testing.T) {
	t.Parallel()

	tree, _, fn := buildTree(t)

	registry := shadowreg.New()
	rep := reporter.New(tree, registry)
	tree.SetReporter(rep)

	mgr := shadowmgr.New(registry, rep)

	id, err := mgr.Wrap(tree, fn)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if registry.Len() != 1 {
		t.Fatalf("expected 1 registered shadow, got %d", registry.Len())
	}

	hostTree, host, ok := registry.HostOf(id)
	if !ok || hostTree != tree {
		t.Fatalf("expected HostOf to resolve the stub host")
	}

	shadow, ok := tree.ShadowAt(host)
	if !ok {
		t.Fatalf("expected shadow attached at stub host")
	}
	if shadow.Node(shadow.Root()).Kind() != ast.KindFunction {
		t.Fatalf("expected cloned shadow root to keep original kind")
	}

	newRoot, err := mgr.Unwrap(tree, host)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if registry.Len() != 0 {
		t.Fatalf("expected registry empty after unwrap, got %d", registry.Len())
	}
	if tree.Node(newRoot).Kind() != ast.KindFunction {
		t.Fatalf("expected spliced-back root to keep original kind")
	}
	if len(tree.Node(newRoot).Children()) != 1 {
		t.Fatalf("expected spliced-back function to keep its one child")
	}
}

func TestWrapRootIsRejected(t *testing.T) {
	t.Parallel()

	tree, program, _ := buildTree(t)

	registry := shadowreg.New()
	rep := reporter.New(tree, registry)
	tree.SetReporter(rep)

	mgr := shadowmgr.New(registry, rep)

	if _, err := mgr.Wrap(tree, program); err == nil {
		t.Fatalf("expected wrapping the tree root to fail")
	}
}
