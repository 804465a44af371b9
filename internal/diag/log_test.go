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

package diag_test

import (
	"testing"

	"fillmore-labs.com/astpass/internal/diag"
)

func TestLogSortedOrdersFileNullsFirst(t *testing.T) {
	t.Parallel()

	var l diag.Log
	l.Report(diag.Diagnostic{Key: "b", Location: diag.Location{File: "b.js", Line: 1}})
	l.Report(diag.Diagnostic{Key: "a", Location: diag.Location{}})
	l.Report(diag.Diagnostic{Key: "c", Location: diag.Location{File: "a.js", Line: 5}})

	sorted := l.Sorted()
	if len(sorted) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(sorted))
	}
	if sorted[0].Location.File != "" {
		t.Fatalf("expected no-location diagnostic first, got %+v", sorted[0])
	}
	if sorted[1].Location.File != "a.js" || sorted[2].Location.File != "b.js" {
		t.Fatalf("expected file-name ascending order, got %+v", sorted)
	}
}

func TestLogSortedOrdersByLineThenColumnThenLevelThenKey(t *testing.T) {
	t.Parallel()

	var l diag.Log
	l.Report(diag.Diagnostic{Key: "z", Level: diag.Warning, Location: diag.Location{File: "f.js", Line: 2, Column: 1}})
	l.Report(diag.Diagnostic{Key: "a", Level: diag.Error, Location: diag.Location{File: "f.js", Line: 2, Column: 1}})
	l.Report(diag.Diagnostic{Key: "m", Location: diag.Location{File: "f.js", Line: 1, Column: 9}})

	sorted := l.Sorted()
	if sorted[0].Key != "m" {
		t.Fatalf("expected line 1 diagnostic first, got %+v", sorted[0])
	}
	// Same line/column: level breaks the tie before key (errors before warnings).
	if sorted[1].Key != "a" || sorted[2].Key != "z" {
		t.Fatalf("expected errors to order before warnings, got %+v", sorted)
	}
}

func TestLogSortedCollapsesDuplicatesByKeyAndLocation(t *testing.T) {
	t.Parallel()

	var l diag.Log
	loc := diag.Location{File: "f.js", Line: 3, Column: 4}
	l.Report(diag.Diagnostic{Key: "dup", Location: loc, Message: "first"})
	l.Report(diag.Diagnostic{Key: "dup", Location: loc, Message: "second"})

	sorted := l.Sorted()
	if len(sorted) != 1 {
		t.Fatalf("expected duplicate to collapse, got %d entries", len(sorted))
	}
	if sorted[0].Message != "first" {
		t.Fatalf("expected first-encountered message kept, got %q", sorted[0].Message)
	}
}
