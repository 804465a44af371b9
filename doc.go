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

// Package astpass implements a pass pipeline engine for an optimizing
// compiler front end: a shared AST with change-tracked mutation, an
// isolated shadow-subtree mechanism for passes that need to work on a
// detached fragment without disturbing the enclosing scope's change
// history, and a fixed-point loop driver for passes that must run to
// convergence.
//
// # Overview
//
// A Pipeline owns one program *ast.Tree plus an optional read-only
// externs tree, and runs a declared, ordered list of passes over it:
// one-shot passes exactly once each, and contiguous runs of loop-member
// passes repeatedly until none of them report a change.
//
// # Example
//
// A minimal pipeline that runs one one-shot pass and a small
// fixed-point loop:
//
//	p := astpass.New(program, externs,
//	    astpass.WithMaxLoopIterations(200),
//	)
//	p.AddPass(pass.New("strip-debugger", pass.OneShot, pass.MainOnly, true, stripDebugger))
//	p.AddPass(pass.New("inline-alias", pass.LoopMember, pass.MainOnly, true, inlineAlias))
//	result, err := p.Process(ctx)
package astpass
