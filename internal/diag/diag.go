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

// Package diag implements the diagnostic taxonomy: a stable key, level,
// optional location and message, with a total order and duplicate
// collapsing used when a Log is finalized for reporting.
package diag

import "fmt"

// Level is a diagnostic's severity.
type Level uint8

const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("diag.Level(%d)", uint8(l))
	}
}

// Location pinpoints a diagnostic in source. File is empty for
// diagnostics with no meaningful location (e.g. whole-program checks);
// these sort before any diagnostic with a file (spec.md §4.9: "file name
// nulls-first").
type Location struct {
	File   string
	Line   int32
	Column int32
}

// Diagnostic is one reported finding.
type Diagnostic struct {
	Key      string // stable identifier, e.g. "unreachable-code"
	Level    Level
	Location Location
	Message  string
}

// less implements the total order: file (empty first), then line,
// column, level (errors before warnings before info), then key.
func less(a, b Diagnostic) bool {
	if a.Location.File != b.Location.File {
		if a.Location.File == "" {
			return true
		}
		if b.Location.File == "" {
			return false
		}

		return a.Location.File < b.Location.File
	}

	if a.Location.Line != b.Location.Line {
		return a.Location.Line < b.Location.Line
	}

	if a.Location.Column != b.Location.Column {
		return a.Location.Column < b.Location.Column
	}

	if a.Level != b.Level {
		return a.Level > b.Level
	}

	return a.Key < b.Key
}
