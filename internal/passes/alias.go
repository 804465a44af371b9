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

// Package passes bundles two small demonstration passes standing in for
// the full catalog of individual compiler passes: an alias inliner and
// a literal rewriter. Neither is meant as a complete implementation of
// either optimization; they exist to give the pipeline engine a
// runnable, observable workload.
package passes

import (
	"context"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/pass"
)

// AliasInliner returns a LoopMember pass that resolves one hop of an
// alias chain per round: every KindName node whose current text is a
// key in aliases is rewritten to that key's value. Chains of length N
// (a -> b -> c -> ... ) therefore take N rounds to fully resolve,
// which is what makes it a useful loop-convergence fixture: it reports
// changed only while some node still has a further hop available.
func AliasInliner(name string, aliases map[string]string) pass.Record {
	run := func(_ context.Context, pc pass.Context) (bool, error) {
		return rewriteNames(pc.Main, func(v string) (string, bool) {
			target, ok := aliases[v]
			if !ok || target == v {
				return "", false
			}

			return target, true
		}), nil
	}

	return pass.New(name, pass.LoopMember, pass.MainOnly, true, run)
}

// rewriteNames applies rewrite to every KindName node's Value attribute,
// reporting whether any node changed.
func rewriteNames(tree *ast.Tree, rewrite func(v string) (string, bool)) bool {
	changed := false

	for id := range tree.NodeIDs() {
		n := tree.Node(id)
		if n == nil || n.Kind() != ast.KindName {
			continue
		}

		next, ok := rewrite(n.Attributes().Value)
		if !ok {
			continue
		}

		if err := tree.SetAttribute(id, func(a *ast.Attributes) { a.Value = next }); err != nil {
			continue
		}

		changed = true
	}

	return changed
}
