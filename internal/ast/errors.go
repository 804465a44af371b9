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

import "errors"

// Structural invariant violations. These are the "Structural invariant
// violation" error kind from the engine's error handling design: fatal,
// reported with a precise node location by the caller.
var (
	// ErrShadowAlreadyPresent is returned by AttachShadow when the host's
	// shadow slot is already occupied.
	ErrShadowAlreadyPresent = errors.New("ast: shadow already present on host node")

	// ErrNoShadowAttached is returned by DetachShadow when the host has no
	// shadow attached.
	ErrNoShadowAttached = errors.New("ast: no shadow attached to host node")

	// ErrInvalidNode is returned by operations given a NodeID that does
	// not resolve to a live node in the tree.
	ErrInvalidNode = errors.New("ast: invalid node id")

	// ErrDetachRoot is returned by Detach when asked to detach a tree's
	// root node, which has no parent to detach from.
	ErrDetachRoot = errors.New("ast: cannot detach the tree root")

	// ErrNotChild is returned by operations that require a parent/child
	// relationship that does not hold.
	ErrNotChild = errors.New("ast: node is not a child of the expected parent")
)
