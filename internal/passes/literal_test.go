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

package passes_test

import (
	"context"
	"testing"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/pass"
	"fillmore-labs.com/astpass/internal/passes"
	"fillmore-labs.com/astpass/internal/testsupport"
)

func TestLiteralRewriterCanonicalizesHexAndMarksInferredConst(t *testing.T) {
	t.Parallel()

	tree, root := testsupport.NewTree(t, testsupport.N(ast.KindProgram,
		testsupport.N(ast.KindLiteral),
	))
	litID := tree.Node(root).Children()[0]

	if err := tree.SetAttribute(litID, func(a *ast.Attributes) { a.Value = "0x10" }); err != nil {
		t.Fatalf("SetAttribute: %v", err)
	}

	rec := passes.LiteralRewriter("canon-literal")

	changed, err := rec.Run()(context.Background(), pass.Context{Main: tree})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !changed {
		t.Fatalf("expected the hex literal to be rewritten")
	}

	attrs := tree.Node(litID).Attributes()
	if attrs.Value != "16" {
		t.Fatalf("expected canonical value %q, got %q", "16", attrs.Value)
	}
	if !attrs.InferredConst {
		t.Fatalf("expected InferredConst to be set")
	}
}

func TestLiteralRewriterLeavesStringLiteralsAlone(t *testing.T) {
	t.Parallel()

	tree, root := testsupport.NewTree(t, testsupport.N(ast.KindProgram,
		testsupport.N(ast.KindLiteral),
	))
	litID := tree.Node(root).Children()[0]

	if err := tree.SetAttribute(litID, func(a *ast.Attributes) { a.Value = "hello" }); err != nil {
		t.Fatalf("SetAttribute: %v", err)
	}

	rec := passes.LiteralRewriter("canon-literal")

	changed, err := rec.Run()(context.Background(), pass.Context{Main: tree})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if changed {
		t.Fatalf("expected a non-numeric literal to be left alone")
	}
}

func TestLiteralRewriterIsIdempotentOnAlreadyCanonicalValues(t *testing.T) {
	t.Parallel()

	tree, root := testsupport.NewTree(t, testsupport.N(ast.KindProgram,
		testsupport.N(ast.KindLiteral),
	))
	litID := tree.Node(root).Children()[0]

	if err := tree.SetAttribute(litID, func(a *ast.Attributes) { a.Value = "16" }); err != nil {
		t.Fatalf("SetAttribute: %v", err)
	}

	rec := passes.LiteralRewriter("canon-literal")

	changed, err := rec.Run()(context.Background(), pass.Context{Main: tree})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if changed {
		t.Fatalf("expected no further change once a literal is already canonical")
	}
}
