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
	"fillmore-labs.com/astpass/internal/diag"
	"fillmore-labs.com/astpass/internal/loop"
	"fillmore-labs.com/astpass/internal/pass"
	"fillmore-labs.com/astpass/internal/reporter"
	"fillmore-labs.com/astpass/internal/shadowreg"
)

// Result summarizes one Process run.
type Result struct {
	PassesRun   int
	LoopRegions []loop.Result
	Diverged    bool
	Diagnostics []diag.Diagnostic
}

// Process runs every declared pass in order: one-shot passes once each
// (with any validity checks immediately following them in the declared
// list run right after), and each contiguous run of loop-member passes
// handed to a LoopController. It reports monotonic integer progress via
// WithProgress as passes complete their first run.
func (p *Pipeline) Process(ctx context.Context) (Result, error) {
	return p.runPasses(ctx)
}

// runPasses is Process's implementation, factored out so ReplaceScript
// can re-enter the declared pass list after a hot-swap. Every pass's
// Query is incremental against its own already-committed timestamp, so
// a re-entrant run only re-examines scopes marked changed since that
// pass last ran — it never starts over.
func (p *Pipeline) runPasses(ctx context.Context) (Result, error) {
	var result Result

	completed := make(map[string]bool, len(p.passes))
	total := len(p.passes)

	reportProgress := func(name string) {
		completed[name] = true
		if p.opts.onProgress != nil && total > 0 {
			p.opts.onProgress(100 * len(completed) / total)
		}
	}

	checksOnly := p.opts.flags.Enabled(config.ChecksOnly)
	continueAfterErrors := p.opts.flags.Enabled(config.ContinueAfterErrors)

	i := 0
	for i < len(p.passes) {
		rec := p.passes[i]

		switch rec.Kind() {
		case pass.OneShot:
			if checksOnly {
				i++
				continue
			}

			if err := p.runOneShot(ctx, rec); err != nil {
				if !continueAfterErrors {
					return result, err
				}
				p.diags.Report(diag.Diagnostic{Key: "pass-error", Message: err.Error()})
			}
			reportProgress(rec.Name())
			result.PassesRun++
			i++

		case pass.ValidityCheck:
			if err := p.runOneShot(ctx, rec); err != nil {
				if !continueAfterErrors {
					return result, err
				}
				p.diags.Report(diag.Diagnostic{Key: "pass-error", Message: err.Error()})
			}
			reportProgress(rec.Name())
			result.PassesRun++
			i++

		case pass.LoopMember:
			members, checks, next := collectLoopRegion(p.passes, i)
			i = next

			if checksOnly {
				members = nil
			}

			iterCap := p.opts.maxLoopIterations
			ctrl := loop.New(p.reporter, p.registry, p.shadows, p.program, p.externs, &p.diags, p.opts.loader, members, checks, iterCap)
			ctrl.OnPassRun(func(name string) {
				reportProgress(name)
				result.PassesRun++
			})

			loopResult, err := ctrl.Run(ctx)
			result.LoopRegions = append(result.LoopRegions, loopResult)

			if err != nil {
				if !errors.Is(err, loop.ErrDiverged) || !continueAfterErrors {
					return result, fmt.Errorf("astpass.Process: %w", err)
				}

				result.Diverged = true
				p.diags.Report(diag.Diagnostic{Key: "loop-diverged", Message: err.Error()})
			}

		default:
			return result, fmt.Errorf("astpass.Process: pass %s: unknown kind %v", rec.Name(), rec.Kind())
		}
	}

	p.opts.logger.LogAttrs(ctx, slog.LevelDebug, "pipeline run complete",
		slog.Int("passes_run", result.PassesRun),
		slog.Int("loop_regions", len(result.LoopRegions)),
		slog.Bool("diverged", result.Diverged),
	)

	result.Diagnostics = p.diags.Sorted()

	return result, nil
}

// runOneShot executes a single OneShot or ValidityCheck pass with the
// same T0-snapshot/commit discipline the loop controller uses.
func (p *Pipeline) runOneShot(ctx context.Context, rec pass.Record) error {
	var region reporter.Region
	switch rec.OperatesOn() {
	case pass.MainOnly:
		region = reporter.Main()
	case pass.ShadowOnly:
		region = reporter.ShadowsAll()
	case pass.Both:
		region = reporter.All()
	}

	set, err := p.reporter.Query(rec.Name(), region)
	if err != nil {
		return fmt.Errorf("astpass: query %s: %w", rec.Name(), err)
	}

	t0 := p.reporter.Tick()

	var shadows map[shadowreg.ShadowID]*ast.Tree
	if rec.OperatesOn() != pass.MainOnly {
		shadows = p.registry.Trees()
	}

	pc := pass.Context{
		Main: p.program, Externs: p.externs, Scopes: set, Diags: &p.diags,
		Shadows: shadows, Resolve: p.resolve, ShadowManager: p.shadows,
	}
	_, err = rec.Run()(ctx, pc)

	p.reporter.CommitPass(rec.Name(), region, t0)

	if err != nil {
		return fmt.Errorf("astpass: pass %s: %w", rec.Name(), err)
	}

	p.opts.logger.LogAttrs(ctx, slog.LevelDebug, "pass complete", slog.String("pass", rec.Name()))

	return nil
}

// collectLoopRegion consumes a maximal contiguous run of LoopMember and
// ValidityCheck passes starting at i, and returns them partitioned plus
// the index of the first pass after the region.
func collectLoopRegion(passes []pass.Record, i int) (members, checks []pass.Record, next int) {
	for ; i < len(passes); i++ {
		switch passes[i].Kind() {
		case pass.LoopMember:
			members = append(members, passes[i])
		case pass.ValidityCheck:
			checks = append(checks, passes[i])
		default:
			return members, checks, i
		}
	}

	return members, checks, i
}
