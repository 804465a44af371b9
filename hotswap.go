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

package astpass

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/config"
)

// ErrHotSwapDisabled is returned by ReplaceScript when the pipeline was
// not configured with config.AllowHotSwapReplaceScript.
var ErrHotSwapDisabled = errors.New("astpass: ReplaceScript requires AllowHotSwapReplaceScript")

// ReplaceScript splices replacement in as the new subtree at host's
// position in the main program tree, then re-enters the full declared
// pass list. Because every pass's change-set query is incremental
// against its own last-committed timestamp, only the scopes touched by
// the splice are re-examined; every other main-AST scope is left
// exactly as each pass last saw it (spec.md §8 Scenario F).
//
// host may be the program's own root, in which case the clone becomes
// the tree's new root (see ast.Tree.Replace); replacement is cloned into
// the main tree, so the caller retains ownership of its original
// *ast.Tree.
func (p *Pipeline) ReplaceScript(ctx context.Context, host ast.NodeID, replacement *ast.Tree) (Result, error) {
	if !p.opts.flags.Enabled(config.AllowHotSwapReplaceScript) {
		return Result{}, ErrHotSwapDisabled
	}

	newRoot, err := ast.CloneSubtree(replacement, replacement.Root(), p.program)
	if err != nil {
		return Result{}, fmt.Errorf("astpass: ReplaceScript: clone: %w", err)
	}

	if err := p.program.Replace(host, newRoot); err != nil {
		return Result{}, fmt.Errorf("astpass: ReplaceScript: splice: %w", err)
	}

	p.opts.logger.LogAttrs(ctx, slog.LevelDebug, "script hot-swapped, re-entering pass list",
		slog.Int("host_node", int(host)))

	return p.runPasses(ctx)
}
