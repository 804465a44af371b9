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

package ast

// NodeSnapshot is one node's content, flattened for serialization by
// internal/state. It deliberately mirrors Node's fields rather than
// embedding the unexported type, so internal/state can marshal it
// directly without reaching into package ast internals.
type NodeSnapshot struct {
	ID       NodeID
	Kind     Kind
	Parent   NodeID
	Children []NodeID
	Location Location
	Attrs    Attributes
}

// Snapshot returns every node in the tree's arena, in arena (creation)
// order, plus the tree's root id. Arena order is stable across repeated
// calls on the same Tree value, which is what gives the round-trip its
// byte-for-byte determinism: internal/state never has to sort nodes
// itself, only the maps it flattens around them (shadow hosts, pass
// timestamps).
func (t *Tree) Snapshot() (nodes []NodeSnapshot, root NodeID) {
	nodes = make([]NodeSnapshot, len(t.nodes))
	for i, n := range t.nodes {
		nodes[i] = NodeSnapshot{
			ID:       n.id,
			Kind:     n.kind,
			Parent:   n.parent,
			Children: append([]NodeID(nil), n.children...),
			Location: n.loc,
			Attrs:    n.attrs,
		}
	}

	return nodes, t.root
}

// RestoreTree rebuilds a Tree from a Snapshot's output. The returned
// Tree has no reporter wired (SetReporter must be called by the
// caller) and no shadows attached (RestoreShadow must be called once
// per host/shadow pair recorded separately, since shadow attachment is
// not part of a node's own Attributes).
func RestoreTree(nodes []NodeSnapshot, root NodeID) *Tree {
	t := &Tree{
		nodes:    make([]*Node, len(nodes)),
		shadows:  make(map[NodeID]*Tree),
		root:     root,
		reporter: noopReporter{},
	}

	for i, ns := range nodes {
		t.nodes[i] = &Node{
			id:       ns.ID,
			kind:     ns.Kind,
			parent:   ns.Parent,
			children: append([]NodeID(nil), ns.Children...),
			loc:      ns.Location,
			attrs:    ns.Attrs,
		}
	}

	return t
}

// RestoreShadow directly wires shadow as the shadow attached at host,
// bypassing AttachShadow's occupancy check and reporter notification:
// restoring prior state is not itself a change worth reporting.
func (t *Tree) RestoreShadow(host NodeID, shadow *Tree) {
	t.shadows[host] = shadow
}
