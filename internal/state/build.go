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

package state

import (
	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/diag"
	"fillmore-labs.com/astpass/internal/reporter"
	"fillmore-labs.com/astpass/internal/shadowreg"
)

// Build captures the complete state of a running pipeline: externs (may
// be nil), main, registry's shadows, rep's clock and per-region pass
// timestamps, and the diagnostic log, already sorted and deduped.
func Build(main, externs *ast.Tree, registry *shadowreg.Registry, rep *reporter.Reporter, diags *diag.Log) Snapshot {
	mainNodes, mainRoot := main.Snapshot()

	var externsSnap *TreeSnapshot
	if externs != nil {
		nodes, root := externs.Snapshot()
		externsSnap = &TreeSnapshot{Root: root, Nodes: nodes}
	}

	mainStamps := toSortedStamps(rep.MainTimeline().PassTimestamps())

	var shadows []ShadowSnapshot
	for id := range registry.Shadows() {
		hostTree, host, ok := registry.HostOf(id)
		if !ok {
			continue
		}

		shadow, ok := hostTree.ShadowAt(host)
		if !ok {
			continue
		}

		nodes, root := shadow.Snapshot()

		var stamps []PassTimestamp
		if tl, ok := rep.ShadowTimeline(id); ok {
			stamps = toSortedStamps(tl.PassTimestamps())
		}

		shadows = append(shadows, ShadowSnapshot{
			ID:         id,
			HostNode:   host,
			Tree:       TreeSnapshot{Root: root, Nodes: nodes},
			PassStamps: stamps,
		})
	}
	sortShadowSnapshots(shadows)

	return Snapshot{
		Clock:          rep.Clock().Current(),
		Main:           TreeSnapshot{Root: mainRoot, Nodes: mainNodes},
		Externs:        externsSnap,
		Shadows:        shadows,
		MainPassStamps: mainStamps,
		Diagnostics:    diags.Sorted(),
	}
}

func toSortedStamps(m map[string]int64) []PassTimestamp {
	out := make([]PassTimestamp, 0, len(m))
	for k, v := range m {
		out = append(out, PassTimestamp{PassID: k, Timestamp: v})
	}

	sortPassTimestamps(out)

	return out
}
