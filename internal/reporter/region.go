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

package reporter

import "fillmore-labs.com/astpass/internal/shadowreg"

// RegionKind selects which partition of the change timeline a query
// targets, mirroring a pass's OperatesOn declaration (C6).
type RegionKind uint8

const (
	RegionMain RegionKind = iota
	RegionShadow
	RegionShadowsAll
	RegionAll
)

// Region identifies a query target: the main tree, one specific shadow,
// the union of every shadow (excluding main), or the union of every
// region currently tracked.
type Region struct {
	Kind   RegionKind
	Shadow shadowreg.ShadowID // valid only when Kind == RegionShadow
}

// Main targets the main AST's timeline.
func Main() Region { return Region{Kind: RegionMain} }

// ShadowOf targets the timeline of a single shadow subtree.
func ShadowOf(id shadowreg.ShadowID) Region { return Region{Kind: RegionShadow, Shadow: id} }

// ShadowsAll targets the union of every active shadow's timeline,
// excluding main, for passes declared OperatesOn: ShadowOnly. A
// ShadowOnly pass must never see main-tree scope roots in its change
// set, which is what distinguishes this from All.
func ShadowsAll() Region { return Region{Kind: RegionShadowsAll} }

// All targets the union of the main timeline and every active shadow's
// timeline, for passes declared OperatesOn: Both.
func All() Region { return Region{Kind: RegionAll} }
