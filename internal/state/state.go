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

// Package state implements persisted-state save/restore: a byte-
// deterministic JSON codec covering the externs tree, the main tree,
// every attached shadow, the change timeline's clock and per-pass
// timestamps, and the diagnostic log. Two pipelines built from equal
// input and run through equal pass sequences must serialize to
// byte-identical blobs; every
// collection below is therefore a sorted slice, never a map, since Go's
// encoding/json already sorts map keys on encode but sorted-slice
// output is easier to diff and does not depend on that map behavior
// remaining unspecified-but-stable across versions.
package state

import (
	"encoding/json"
	"fmt"
	"sort"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/diag"
	"fillmore-labs.com/astpass/internal/shadowreg"
)

// PassTimestamp is one pass's committed T0 in a single region.
type PassTimestamp struct {
	PassID    string
	Timestamp int64
}

// TreeSnapshot is a serializable *ast.Tree.
type TreeSnapshot struct {
	Root  ast.NodeID
	Nodes []ast.NodeSnapshot
}

// ShadowSnapshot is one registered shadow: its id, where it is hosted,
// its own tree, and its region's committed pass timestamps.
type ShadowSnapshot struct {
	ID         shadowreg.ShadowID
	HostNode   ast.NodeID
	Tree       TreeSnapshot
	PassStamps []PassTimestamp
}

// Snapshot is the complete persisted state of a Pipeline between runs.
type Snapshot struct {
	Clock          int64
	Main           TreeSnapshot
	Externs        *TreeSnapshot // nil when the pipeline has no externs tree
	Shadows        []ShadowSnapshot
	MainPassStamps []PassTimestamp
	Diagnostics    []diag.Diagnostic
}

// Marshal produces the canonical JSON encoding of s. Callers must
// ensure every slice in s is already sorted (Build does this); Marshal
// itself only fixes indentation so output is diffable.
func Marshal(s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("state.Marshal: %w", err)
	}

	return data, nil
}

// Unmarshal parses a previously marshaled Snapshot.
func Unmarshal(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("state.Unmarshal: %w", err)
	}

	return s, nil
}

// sortPassTimestamps sorts by PassID so map-derived input always
// serializes the same way regardless of Go's map iteration order.
func sortPassTimestamps(ts []PassTimestamp) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].PassID < ts[j].PassID })
}

// sortShadowSnapshots sorts by ShadowID for the same reason.
func sortShadowSnapshots(ss []ShadowSnapshot) {
	sort.Slice(ss, func(i, j int) bool { return ss[i].ID < ss[j].ID })
}
