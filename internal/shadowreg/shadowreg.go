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

// Package shadowreg implements the ShadowRegistry (C4 in SPEC_FULL.md): the
// set of shadow subtree roots attached to host nodes, and the query that
// decides whether a given node lives inside one of them.
//
// A shadow is its own *ast.Tree (a "separately-rooted AST fragment",
// spec.md §2); every node reachable from that tree's root is, by
// construction, internal to that shadow. Containment therefore reduces to
// asking which tree a node lives in, rather than re-walking a parent
// chain that would otherwise have to cross tree boundaries.
package shadowreg

import (
	"errors"
	"fmt"
	"iter"

	"fillmore-labs.com/astpass/internal/ast"
)

// ShadowID identifies a registered shadow subtree. IDs are assigned in
// registration order starting at 1; zero is never a valid ShadowID.
type ShadowID int32

// ErrUnknownHost is returned by Unregister when host has no registered
// shadow.
var ErrUnknownHost = errors.New("shadowreg: host has no registered shadow")

// ErrHostOccupied is returned by Register when host already has a
// registered shadow.
var ErrHostOccupied = errors.New("shadowreg: host already has a registered shadow")

type entry struct {
	id       ShadowID
	hostTree *ast.Tree
	host     ast.NodeID
	shadow   *ast.Tree
}

// Registry is the ShadowRegistry. The zero value is not usable;
// construct with New.
type Registry struct {
	nextID  ShadowID
	byHost  map[hostKey]*entry
	byTree  map[*ast.Tree]*entry
	ordered []*entry
}

type hostKey struct {
	tree *ast.Tree
	node ast.NodeID
}

// New creates an empty ShadowRegistry.
func New() *Registry {
	return &Registry{
		nextID: 1,
		byHost: make(map[hostKey]*entry),
		byTree: make(map[*ast.Tree]*entry),
	}
}

// Register records shadow as attached to host (identified by the tree it
// lives in plus its node id) and returns the assigned ShadowID. It does
// not itself call ast.Tree.AttachShadow; callers (typically
// internal/shadowmgr) are expected to keep both in sync.
func (r *Registry) Register(hostTree *ast.Tree, host ast.NodeID, shadow *ast.Tree) (ShadowID, error) {
	key := hostKey{hostTree, host}
	if _, ok := r.byHost[key]; ok {
		return 0, fmt.Errorf("shadowreg.Register: %w", ErrHostOccupied)
	}

	e := &entry{id: r.nextID, hostTree: hostTree, host: host, shadow: shadow}
	r.nextID++

	r.byHost[key] = e
	r.byTree[shadow] = e
	r.ordered = append(r.ordered, e)

	return e.id, nil
}

// RegisterAt is like Register but assigns a specific ShadowID rather
// than the next sequential one, and advances nextID past it if needed.
// Used only when reconstructing a Registry from a persisted Snapshot,
// where preserving the original IDs matters because they are also the
// keys under which the reporter's per-shadow timelines were saved.
func (r *Registry) RegisterAt(id ShadowID, hostTree *ast.Tree, host ast.NodeID, shadow *ast.Tree) error {
	key := hostKey{hostTree, host}
	if _, ok := r.byHost[key]; ok {
		return fmt.Errorf("shadowreg.RegisterAt: %w", ErrHostOccupied)
	}

	e := &entry{id: id, hostTree: hostTree, host: host, shadow: shadow}

	r.byHost[key] = e
	r.byTree[shadow] = e
	r.ordered = append(r.ordered, e)

	if id >= r.nextID {
		r.nextID = id + 1
	}

	return nil
}

// Unregister removes and returns the shadow tree registered at host.
func (r *Registry) Unregister(hostTree *ast.Tree, host ast.NodeID) (*ast.Tree, error) {
	key := hostKey{hostTree, host}

	e, ok := r.byHost[key]
	if !ok {
		return nil, fmt.Errorf("shadowreg.Unregister: %w", ErrUnknownHost)
	}

	delete(r.byHost, key)
	delete(r.byTree, e.shadow)

	for i, o := range r.ordered {
		if o == e {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}

	return e.shadow, nil
}

// InShadow reports whether tree is a registered shadow subtree, and if so
// its ShadowID.
func (r *Registry) InShadow(tree *ast.Tree) (ShadowID, bool) {
	e, ok := r.byTree[tree]
	if !ok {
		return 0, false
	}

	return e.id, true
}

// HostOf returns the host tree and node a shadow was registered at.
func (r *Registry) HostOf(id ShadowID) (hostTree *ast.Tree, host ast.NodeID, ok bool) {
	for _, e := range r.ordered {
		if e.id == id {
			return e.hostTree, e.host, true
		}
	}

	return nil, ast.InvalidNode, false
}

// Trees returns every registered shadow subtree, keyed by its ShadowID.
// Used to give a ShadowOnly/Both pass direct access to the trees it is
// declared to operate on.
func (r *Registry) Trees() map[ShadowID]*ast.Tree {
	out := make(map[ShadowID]*ast.Tree, len(r.ordered))
	for _, e := range r.ordered {
		out[e.id] = e.shadow
	}

	return out
}

// Shadows yields every registered ShadowID in registration order.
func (r *Registry) Shadows() iter.Seq[ShadowID] {
	return func(yield func(ShadowID) bool) {
		for _, e := range r.ordered {
			if !yield(e.id) {
				return
			}
		}
	}
}

// Len reports the number of currently registered shadows.
func (r *Registry) Len() int { return len(r.ordered) }
