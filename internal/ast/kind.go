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

// Package ast implements the engine's AST node and tree representation.
package ast

// Kind is the fixed, closed set of token kinds a Node can carry. Operations
// that care about kind are expected to switch on it exhaustively; Kind is
// deliberately not an interface hierarchy.
type Kind uint8

// The fixed enumeration of node kinds the engine understands.
const (
	KindProgram Kind = iota
	KindScript
	KindModuleBody
	KindFunction
	KindBlock
	KindIf
	KindSwitch
	KindForInOf
	KindTry
	KindCall
	KindName
	KindLiteral
	KindPropertyAccess
	KindObjectLiteral
	KindClass
	KindExport
	KindImport
	KindOptionalCall
	KindOptionalPropertyAccess
	KindOptionalChain

	numKinds
)

//nolint:gochecknoglobals
var kindNames = [numKinds]string{
	KindProgram:                 "program",
	KindScript:                  "script",
	KindModuleBody:              "module-body",
	KindFunction:                "function",
	KindBlock:                   "block",
	KindIf:                      "if",
	KindSwitch:                  "switch",
	KindForInOf:                 "for-in/of",
	KindTry:                     "try",
	KindCall:                    "call",
	KindName:                    "name",
	KindLiteral:                 "literal",
	KindPropertyAccess:          "property-access",
	KindObjectLiteral:           "object-literal",
	KindClass:                   "class",
	KindExport:                  "export",
	KindImport:                  "import",
	KindOptionalCall:            "optional-call",
	KindOptionalPropertyAccess:  "optional-property-access",
	KindOptionalChain:           "optional-chain",
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if k >= numKinds {
		return "<invalid>"
	}

	return kindNames[k]
}

// scopeRootKinds are the kinds that anchor change-tracking granularity.
// Block nodes are deliberately excluded: they are lexical scopes for name
// resolution in the source language, but not scope roots for this engine.
//
//nolint:gochecknoglobals
var scopeRootKinds = map[Kind]bool{
	KindProgram:    true,
	KindScript:     true,
	KindModuleBody: true,
	KindFunction:   true,
}

// IsScopeRootKind reports whether nodes of this kind anchor a scope.
func IsScopeRootKind(k Kind) bool {
	return scopeRootKinds[k]
}
