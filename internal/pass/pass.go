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

// Package pass defines the PassRecord (C6 in SPEC_FULL.md): the static,
// immutable description of a single compiler pass, independent of any
// particular pipeline run.
package pass

import (
	"context"
	"fmt"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/change"
	"fillmore-labs.com/astpass/internal/diag"
	"fillmore-labs.com/astpass/internal/moduleload"
	"fillmore-labs.com/astpass/internal/shadowmgr"
	"fillmore-labs.com/astpass/internal/shadowreg"
)

// Kind classifies how a pass participates in pipeline scheduling.
type Kind uint8

const (
	// OneShot passes run exactly once, in registration order, outside
	// any fixed-point loop.
	OneShot Kind = iota
	// LoopMember passes run round-robin inside a fixed-point loop until
	// none of them report a change, or the loop's iteration cap is hit.
	LoopMember
	// ValidityCheck passes run between loop-member passes and at the end
	// of each loop round, and must not themselves advance the change
	// timeline.
	ValidityCheck
)

func (k Kind) String() string {
	switch k {
	case OneShot:
		return "one-shot"
	case LoopMember:
		return "loop-member"
	case ValidityCheck:
		return "validity-check"
	default:
		return fmt.Sprintf("pass.Kind(%d)", uint8(k))
	}
}

// OperatesOn declares which region(s) of the tree a pass is given
// change sets for and is expected to process.
type OperatesOn uint8

const (
	MainOnly OperatesOn = iota
	ShadowOnly
	Both
)

func (o OperatesOn) String() string {
	switch o {
	case MainOnly:
		return "main-only"
	case ShadowOnly:
		return "shadow-only"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("pass.OperatesOn(%d)", uint8(o))
	}
}

// Context is what a pass's Run function is given: the trees it may
// consult or mutate, the change set it was scheduled for, and a
// diagnostic sink.
type Context struct {
	Main    *ast.Tree
	Externs *ast.Tree // read-only ambient declarations; never change-tracked
	Scopes  change.ScopeSet
	Diags   *diag.Log

	// Shadows holds every currently-registered shadow subtree, keyed by
	// its ShadowID. Populated only for passes declared ShadowOnly or
	// Both; a MainOnly pass never needs it and gets a nil map.
	Shadows map[shadowreg.ShadowID]*ast.Tree

	// Resolve resolves an import specifier through the pipeline's
	// configured ModuleLoader, reporting a LoadWarning diagnostic on
	// failure before returning the error.
	Resolve moduleload.Resolver

	// ShadowManager is the pipeline's ShadowManager, letting a pass WRAP a
	// subtree of Main into its own isolated shadow (to be picked up via
	// the Shadows map on a later round) or UNWRAP one back in. Present
	// for every pass regardless of OperatesOn, since a MainOnly pass may
	// be the one that decides a region needs isolating.
	ShadowManager *shadowmgr.Manager
}

// Run is a pass's processing function. It reports whether it made any
// change-worthy mutation (used to detect loop convergence) and an error
// that, if non-nil, aborts the pipeline.
type Run func(ctx context.Context, pc Context) (changed bool, err error)

// Record is the immutable static description of one pass. Construct
// with New; fields are unexported so a Record cannot be mutated after
// registration, matching spec.md's "immutable after registration"
// requirement for C6.
type Record struct {
	name                string
	kind                Kind
	operatesOn          OperatesOn
	canReportCodeChange bool
	iterationCap        int // set by WithIterationCap; 0 when unset
	run                 Run
}

// New constructs a pass Record. name must be unique within a pipeline;
// uniqueness is checked neither here nor by Pipeline.AddPass.
func New(name string, kind Kind, operatesOn OperatesOn, canReportCodeChange bool, run Run) Record {
	return Record{
		name:                name,
		kind:                kind,
		operatesOn:          operatesOn,
		canReportCodeChange: canReportCodeChange,
		run:                 run,
	}
}

// WithIterationCap returns a copy of r carrying a per-pass iteration
// cap, readable through IterationCap. Neither the loop controller nor
// the Pipeline reads it: every loop region is bounded by the
// pipeline-wide cap alone.
func (r Record) WithIterationCap(cap int) Record {
	r.iterationCap = cap
	return r
}

func (r Record) Name() string                { return r.name }
func (r Record) Kind() Kind                  { return r.kind }
func (r Record) OperatesOn() OperatesOn      { return r.operatesOn }
func (r Record) CanReportCodeChange() bool   { return r.canReportCodeChange }
func (r Record) IterationCap() int           { return r.iterationCap }
func (r Record) Run() Run                    { return r.run }
