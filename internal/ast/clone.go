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

import "fmt"

// CloneSubtree copies the subtree rooted at root in src into dst,
// preserving kind, location, attributes, children order and any
// attached shadow, and returns the new root's id in dst.
//
// This is what lets internal/shadowmgr move a subtree between Tree
// values: a NodeID is only an index into its own Tree's arena, so
// "moving" a subtree to a new *Tree means rebuilding it node by node
// rather than reusing ids.
func CloneSubtree(src *Tree, root NodeID, dst *Tree) (NodeID, error) {
	n := src.Node(root)
	if n == nil {
		return InvalidNode, fmt.Errorf("ast.CloneSubtree: %w", ErrInvalidNode)
	}

	childIDs := make([]NodeID, 0, len(n.Children()))
	for _, c := range n.Children() {
		cid, err := CloneSubtree(src, c, dst)
		if err != nil {
			return InvalidNode, err
		}

		childIDs = append(childIDs, cid)
	}

	newID, err := dst.New(n.Kind(), n.Location(), childIDs...)
	if err != nil {
		return InvalidNode, fmt.Errorf("ast.CloneSubtree: %w", err)
	}

	attrs := n.Attributes()
	if err := dst.SetAttribute(newID, func(a *Attributes) { *a = attrs }); err != nil {
		return InvalidNode, fmt.Errorf("ast.CloneSubtree: %w", err)
	}

	if shadow, ok := src.ShadowAt(root); ok {
		if err := dst.AttachShadow(newID, shadow); err != nil {
			return InvalidNode, fmt.Errorf("ast.CloneSubtree: %w", err)
		}
	}

	return newID, nil
}
