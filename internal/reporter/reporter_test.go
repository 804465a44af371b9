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

package reporter_test

import (
	"testing"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/reporter"
	"fillmore-labs.com/astpass/internal/shadowreg"
)

func TestReporterMarksEnclosingScopeOnMutation(t *testing.T) {
	t.Parallel()

	main := ast.NewTree()
	registry := shadowreg.New()
	rep := reporter.New(main, registry)
	main.SetReporter(rep)

	fn, err := main.New(ast.KindFunction, ast.Location{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Consume the implicit first run before mutating.
	if _, err := rep.Query("p", reporter.Main()); err != nil {
		t.Fatalf("Query: %v", err)
	}
	t0 := rep.Tick()
	rep.CommitPass("p", reporter.Main(), t0)

	if err := main.SetAttribute(fn, func(a *ast.Attributes) { a.Exported = true }); err != nil {
		t.Fatalf("SetAttribute: %v", err)
	}

	set, err := rep.Query("p", reporter.Main())
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if set.Empty() {
		t.Fatalf("expected a changed scope after SetAttribute")
	}
}

func TestReporterIsolatesShadowRegionFromMain(t *testing.T) {
	t.Parallel()

	main := ast.NewTree()
	registry := shadowreg.New()
	rep := reporter.New(main, registry)
	main.SetReporter(rep)

	host, err := main.New(ast.KindCall, ast.Location{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	shadow := ast.NewTree()
	shadowRoot, err := shadow.New(ast.KindFunction, ast.Location{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	id, err := registry.Register(main, host, shadow)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	rep.AttachShadow(id, shadow)
	shadow.SetReporter(rep)

	if err := main.AttachShadow(host, shadow); err != nil {
		t.Fatalf("AttachShadow: %v", err)
	}

	// Consume first runs for both regions.
	if _, err := rep.Query("p", reporter.Main()); err != nil {
		t.Fatalf("Query main: %v", err)
	}
	if _, err := rep.Query("p", reporter.ShadowOf(id)); err != nil {
		t.Fatalf("Query shadow: %v", err)
	}
	t0 := rep.Tick()
	rep.CommitPass("p", reporter.All(), t0)

	if err := shadow.SetAttribute(shadowRoot, func(a *ast.Attributes) { a.Exported = true }); err != nil {
		t.Fatalf("SetAttribute: %v", err)
	}

	mainSet, err := rep.Query("p", reporter.Main())
	if err != nil {
		t.Fatalf("Query main: %v", err)
	}
	if !mainSet.Empty() {
		t.Fatalf("expected shadow mutation to leave main region untouched")
	}

	shadowSet, err := rep.Query("p", reporter.ShadowOf(id))
	if err != nil {
		t.Fatalf("Query shadow: %v", err)
	}
	if shadowSet.Empty() {
		t.Fatalf("expected shadow region to observe its own mutation")
	}
}

func TestShadowsAllExcludesMainButUnionsEveryShadow(t *testing.T) {
	t.Parallel()

	main := ast.NewTree()
	registry := shadowreg.New()
	rep := reporter.New(main, registry)
	main.SetReporter(rep)

	host, err := main.New(ast.KindCall, ast.Location{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	shadow := ast.NewTree()
	shadowRoot, err := shadow.New(ast.KindFunction, ast.Location{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	id, err := registry.Register(main, host, shadow)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	rep.AttachShadow(id, shadow)
	shadow.SetReporter(rep)

	if err := main.AttachShadow(host, shadow); err != nil {
		t.Fatalf("AttachShadow: %v", err)
	}

	// Consume first runs for both regions.
	if _, err := rep.Query("p", reporter.Main()); err != nil {
		t.Fatalf("Query main: %v", err)
	}
	if _, err := rep.Query("p", reporter.ShadowsAll()); err != nil {
		t.Fatalf("Query shadows-all: %v", err)
	}
	t0 := rep.Tick()
	rep.CommitPass("p", reporter.All(), t0)

	if err := main.SetAttribute(host, func(a *ast.Attributes) { a.Exported = true }); err != nil {
		t.Fatalf("SetAttribute: %v", err)
	}

	set, err := rep.Query("p", reporter.ShadowsAll())
	if err != nil {
		t.Fatalf("Query shadows-all: %v", err)
	}
	if !set.Empty() {
		t.Fatalf("expected a main-only mutation to leave RegionShadowsAll untouched")
	}

	if err := shadow.SetAttribute(shadowRoot, func(a *ast.Attributes) { a.Exported = true }); err != nil {
		t.Fatalf("SetAttribute: %v", err)
	}

	set, err = rep.Query("p", reporter.ShadowsAll())
	if err != nil {
		t.Fatalf("Query shadows-all: %v", err)
	}
	if set.Empty() {
		t.Fatalf("expected a shadow mutation to appear in RegionShadowsAll")
	}
}
