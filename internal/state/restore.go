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
	"fmt"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/diag"
	"fillmore-labs.com/astpass/internal/reporter"
	"fillmore-labs.com/astpass/internal/shadowreg"
)

// Restored bundles the live objects rebuilt from a Snapshot, ready to
// hand to a Pipeline.
type Restored struct {
	Main     *ast.Tree
	Externs  *ast.Tree // nil when the snapshot had no externs tree
	Registry *shadowreg.Registry
	Reporter *reporter.Reporter
	Diags    *diag.Log
}

// Restore reconstructs a running pipeline's objects from a Snapshot
// previously produced by Build.
func Restore(s Snapshot) (Restored, error) {
	main := ast.RestoreTree(s.Main.Nodes, s.Main.Root)
	registry := shadowreg.New()

	var externs *ast.Tree
	if s.Externs != nil {
		externs = ast.RestoreTree(s.Externs.Nodes, s.Externs.Root)
	}

	shadowTrees := make(map[shadowreg.ShadowID]*ast.Tree, len(s.Shadows))
	for _, ss := range s.Shadows {
		shadow := ast.RestoreTree(ss.Tree.Nodes, ss.Tree.Root)

		if err := registry.RegisterAt(ss.ID, main, ss.HostNode, shadow); err != nil {
			return Restored{}, fmt.Errorf("state.Restore: shadow %d: %w", ss.ID, err)
		}

		main.RestoreShadow(ss.HostNode, shadow)
		shadowTrees[ss.ID] = shadow
	}

	rep := reporter.Restore(main, registry, s.Clock)
	main.SetReporter(rep)

	for _, ss := range s.Shadows {
		shadow := shadowTrees[ss.ID]
		shadow.SetReporter(rep)

		tl, ok := rep.ShadowTimeline(ss.ID)
		if !ok {
			return Restored{}, fmt.Errorf("state.Restore: shadow %d: timeline not attached", ss.ID)
		}
		for _, stamp := range ss.PassStamps {
			tl.RestorePassTimestamp(stamp.PassID, stamp.Timestamp)
		}
	}

	for _, stamp := range s.MainPassStamps {
		rep.MainTimeline().RestorePassTimestamp(stamp.PassID, stamp.Timestamp)
	}

	var diags diag.Log
	for _, d := range s.Diagnostics {
		diags.Report(d)
	}

	return Restored{Main: main, Externs: externs, Registry: registry, Reporter: rep, Diags: &diags}, nil
}
