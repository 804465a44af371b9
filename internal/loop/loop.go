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

// Package loop implements the LoopController (C7 in SPEC_FULL.md): the
// fixed-point round-robin execution of a contiguous run of LoopMember
// and ValidityCheck passes.
package loop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/diag"
	"fillmore-labs.com/astpass/internal/moduleload"
	"fillmore-labs.com/astpass/internal/pass"
	"fillmore-labs.com/astpass/internal/reporter"
	"fillmore-labs.com/astpass/internal/shadowmgr"
	"fillmore-labs.com/astpass/internal/shadowreg"
)

// ErrDiverged is returned by Run when the loop exceeds its iteration
// cap without reaching a fixed point. The returned error wraps it and
// names the members that still reported a change in the final round.
var ErrDiverged = errors.New("loop: exceeded iteration cap without converging")

// DefaultIterationCap bounds a loop whose Controller is created with a
// cap of 0 or less.
const DefaultIterationCap = 100

// Controller runs one contiguous loop region: a sequence of LoopMember
// passes interleaved with ValidityCheck passes, round-robin, until a
// round makes no change or the cap is hit.
type Controller struct {
	reporter *reporter.Reporter
	registry *shadowreg.Registry
	shadows  *shadowmgr.Manager
	main     *ast.Tree
	externs  *ast.Tree
	diags    *diag.Log
	resolve  moduleload.Resolver
	members  []pass.Record
	checks   []pass.Record
	cap      int

	onPassRun func(name string)
}

// New creates a Controller over members (run every round, round-robin
// in registration order) with checks run between consecutive members
// and again at the end of every round. cap bounds
// total rounds; 0 selects DefaultIterationCap. registry is consulted to
// give ShadowOnly/Both passes access to the shadow trees they declare
// they operate on; shadows lets a pass WRAP/UNWRAP a subtree itself (may
// be nil, disabling the Context field); loader is wrapped so a pass's
// module resolution failures are reported as diagnostics (may be nil,
// disabling Resolve).
func New(
	rep *reporter.Reporter, registry *shadowreg.Registry, shadows *shadowmgr.Manager, main, externs *ast.Tree,
	diags *diag.Log, loader moduleload.Loader, members, checks []pass.Record, cap int,
) *Controller {
	if cap <= 0 {
		cap = DefaultIterationCap
	}

	var resolve moduleload.Resolver
	if loader != nil {
		resolve = moduleload.ReportingResolver(loader, diags)
	}

	return &Controller{
		reporter: rep, registry: registry, shadows: shadows, main: main, externs: externs,
		diags: diags, resolve: resolve, members: members, checks: checks, cap: cap,
	}
}

// OnPassRun installs a callback invoked with a pass's name immediately
// after it runs, once per invocation (including repeat rounds). Used by
// the top-level Pipeline to drive progress reporting.
func (c *Controller) OnPassRun(f func(name string)) { c.onPassRun = f }

// Result reports how the loop concluded.
type Result struct {
	Rounds    int
	Converged bool
}

// Run executes the loop to a fixed point. A round with zero changed
// passes ends the loop with Converged=true. ShadowOnly members are
// skipped on a round unless it is round 1 or a new shadow-region
// change was observed since their own last run (spec.md §4.7's
// "ShadowOnly passes skip no-new-shadow-change rounds" rule).
func (c *Controller) Run(ctx context.Context) (Result, error) {
	var lastChanged []string

	for round := 1; round <= c.cap; round++ {
		anyChanged := false
		var changedNames []string

		for idx, p := range c.members {
			region := regionFor(p)

			if p.OperatesOn() == pass.ShadowOnly && round > 1 {
				set, err := c.reporter.Query(p.Name(), region)
				if err != nil {
					return Result{}, fmt.Errorf("loop: query %s: %w", p.Name(), err)
				}
				if set.Empty() {
					continue
				}
			}

			changed, err := c.runOne(ctx, p, region)
			if err != nil {
				return Result{}, err
			}
			if changed {
				anyChanged = true
				changedNames = append(changedNames, p.Name())
			}

			if idx < len(c.members)-1 {
				for _, chk := range c.checks {
					if _, err := c.runOne(ctx, chk, regionFor(chk)); err != nil {
						return Result{}, err
					}
				}
			}
		}

		if round == c.cap {
			lastChanged = changedNames
		}

		for _, chk := range c.checks {
			if _, err := c.runOne(ctx, chk, regionFor(chk)); err != nil {
				return Result{}, err
			}
		}

		if !anyChanged {
			return Result{Rounds: round, Converged: true}, nil
		}
	}

	return Result{Rounds: c.cap, Converged: false},
		fmt.Errorf("%w (cap=%d, still changing: %s)", ErrDiverged, c.cap, strings.Join(lastChanged, ", "))
}

func regionFor(p pass.Record) reporter.Region {
	switch p.OperatesOn() {
	case pass.MainOnly:
		return reporter.Main()
	case pass.ShadowOnly:
		return reporter.ShadowsAll()
	case pass.Both:
		return reporter.All()
	default:
		return reporter.Main()
	}
}

// runOne snapshots T0 before running p, invokes it with the change set
// queried against that same pre-run snapshot, and commits T0 (not the
// post-run clock) as p's recorded timestamp. Committing T0 rather than
// the post-run value is required so a pass that mutates its own region
// sees that mutation on its own next run (spec.md §4.7).
func (c *Controller) runOne(ctx context.Context, p pass.Record, region reporter.Region) (bool, error) {
	set, err := c.reporter.Query(p.Name(), region)
	if err != nil {
		return false, fmt.Errorf("loop: query %s: %w", p.Name(), err)
	}

	t0 := c.reporter.Tick()

	var shadows map[shadowreg.ShadowID]*ast.Tree
	if p.OperatesOn() != pass.MainOnly && c.registry != nil {
		shadows = c.registry.Trees()
	}

	pc := pass.Context{
		Main: c.main, Externs: c.externs, Scopes: set, Diags: c.diags,
		Shadows: shadows, Resolve: c.resolve, ShadowManager: c.shadows,
	}
	changed, err := p.Run()(ctx, pc)

	c.reporter.CommitPass(p.Name(), region, t0)

	if c.onPassRun != nil {
		c.onPassRun(p.Name())
	}

	if err != nil {
		return false, fmt.Errorf("loop: pass %s: %w", p.Name(), err)
	}

	return changed && p.CanReportCodeChange(), nil
}
