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

// Package shadowmgr implements the ShadowManager (C9 in SPEC_FULL.md):
// the WRAP operation that excises an isolated subtree into its own
// shadow Tree behind a stub host, and the UNWRAP operation that splices
// a shadow back into the main tree.
package shadowmgr

import (
	"errors"
	"fmt"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/reporter"
	"fillmore-labs.com/astpass/internal/shadowreg"
)

// ErrWrapRoot is returned by Wrap when asked to wrap a tree's own root
// node, which has no parent to splice a stub host into.
var ErrWrapRoot = errors.New("shadowmgr: cannot wrap the tree root")

// Manager coordinates ast.Tree, shadowreg.Registry and reporter.Reporter
// so that WRAP and UNWRAP keep all three in sync.
type Manager struct {
	registry *shadowreg.Registry
	reporter *reporter.Reporter
}

// New creates a Manager over the given registry and reporter, which
// must be the same instances the pipeline's main tree was built with.
func New(registry *shadowreg.Registry, rep *reporter.Reporter) *Manager {
	return &Manager{registry: registry, reporter: rep}
}

// Wrap excises the subtree rooted at node (in tree, normally the main
// tree) into a new shadow Tree, leaving an empty stub of the same kind
// and location in node's former position. It returns the ShadowID the
// new shadow was registered under.
//
// The excised subtree's own node count is conserved exactly: Wrap only
// ever clones nodes into the new shadow arena and detaches/replaces
// exactly one node (the stub) in the host tree.
func (m *Manager) Wrap(tree *ast.Tree, node ast.NodeID) (shadowreg.ShadowID, error) {
	n := tree.Node(node)
	if n == nil {
		return 0, fmt.Errorf("shadowmgr.Wrap: %w", ast.ErrInvalidNode)
	}

	if !n.Parent().Valid() {
		return 0, ErrWrapRoot
	}

	shadow := ast.NewTree()

	if _, err := ast.CloneSubtree(tree, node, shadow); err != nil {
		return 0, fmt.Errorf("shadowmgr.Wrap: %w", err)
	}

	stub, err := tree.New(n.Kind(), n.Location())
	if err != nil {
		return 0, fmt.Errorf("shadowmgr.Wrap: %w", err)
	}

	if err := tree.Replace(node, stub); err != nil {
		return 0, fmt.Errorf("shadowmgr.Wrap: %w", err)
	}

	shadow.SetReporter(m.reporter)

	id, err := m.registry.Register(tree, stub, shadow)
	if err != nil {
		return 0, fmt.Errorf("shadowmgr.Wrap: %w", err)
	}

	m.reporter.AttachShadow(id, shadow)

	if err := tree.AttachShadow(stub, shadow); err != nil {
		return 0, fmt.Errorf("shadowmgr.Wrap: %w", err)
	}

	return id, nil
}

// Unwrap splices the shadow attached at host back into tree, replacing
// the stub host node, and forgets the shadow's registration and change
// history. It returns the spliced-in subtree's new root id in tree.
func (m *Manager) Unwrap(tree *ast.Tree, host ast.NodeID) (ast.NodeID, error) {
	shadow, ok := tree.ShadowAt(host)
	if !ok {
		return ast.InvalidNode, fmt.Errorf("shadowmgr.Unwrap: %w", ast.ErrNoShadowAttached)
	}

	id, _ := m.registry.InShadow(shadow)

	if _, err := tree.DetachShadow(host); err != nil {
		return ast.InvalidNode, fmt.Errorf("shadowmgr.Unwrap: %w", err)
	}

	if _, err := m.registry.Unregister(tree, host); err != nil {
		return ast.InvalidNode, fmt.Errorf("shadowmgr.Unwrap: %w", err)
	}

	splicedRoot, err := ast.CloneSubtree(shadow, shadow.Root(), tree)
	if err != nil {
		return ast.InvalidNode, fmt.Errorf("shadowmgr.Unwrap: %w", err)
	}

	if err := tree.Replace(host, splicedRoot); err != nil {
		return ast.InvalidNode, fmt.Errorf("shadowmgr.Unwrap: %w", err)
	}

	m.reporter.DetachShadow(id)

	return splicedRoot, nil
}
