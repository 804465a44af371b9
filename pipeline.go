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
	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/diag"
	"fillmore-labs.com/astpass/internal/moduleload"
	"fillmore-labs.com/astpass/internal/pass"
	"fillmore-labs.com/astpass/internal/reporter"
	"fillmore-labs.com/astpass/internal/shadowmgr"
	"fillmore-labs.com/astpass/internal/shadowreg"
)

// Pipeline drives a declared, ordered list of passes over a program
// tree, honoring each pass's Kind (C8 in SPEC_FULL.md).
type Pipeline struct {
	program  *ast.Tree
	externs  *ast.Tree
	registry *shadowreg.Registry
	reporter *reporter.Reporter
	shadows  *shadowmgr.Manager
	diags    diag.Log
	resolve  moduleload.Resolver
	opts     *pipelineOptions
	passes   []pass.Record
}

// New creates a Pipeline over program (the tree passes will mutate) and
// externs (a read-only ambient declarations tree; may be nil). program
// must not already have a Reporter wired: New wires one of its own.
func New(program, externs *ast.Tree, opts ...Option) *Pipeline {
	o := defaultOptions()
	Options(opts).apply(o)

	if o.loader == nil {
		o.loader = moduleload.NewMemoryLoader("", nil, nil)
	}

	registry := shadowreg.New()
	rep := reporter.New(program, registry)
	program.SetReporter(rep)

	p := &Pipeline{
		program:  program,
		externs:  externs,
		registry: registry,
		reporter: rep,
		shadows:  shadowmgr.New(registry, rep),
		opts:     o,
	}
	p.resolve = moduleload.ReportingResolver(o.loader, &p.diags)

	return p
}

// AddPass appends p to the pipeline's declared pass list. Passes run in
// the order they are added; names must be unique.
func (p *Pipeline) AddPass(rec pass.Record) { p.passes = append(p.passes, rec) }

// Shadows exposes the ShadowManager so external callers (typically the
// passes themselves) can WRAP an isolated subtree before a loop region
// runs, or UNWRAP one afterward.
func (p *Pipeline) Shadows() *shadowmgr.Manager { return p.shadows }

// ModuleLoader returns the pipeline's configured ModuleLoader.
func (p *Pipeline) ModuleLoader() moduleload.Loader { return p.opts.loader }

// Diagnostics returns the pipeline's accumulated diagnostics, sorted
// and deduplicated per internal/diag's ordering.
func (p *Pipeline) Diagnostics() []diag.Diagnostic { return p.diags.Sorted() }
