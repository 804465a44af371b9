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

package diag

import "sort"

// Log accumulates diagnostics reported across an entire pipeline run.
// The zero value is ready to use.
type Log struct {
	entries []Diagnostic
}

// Report appends d to the log. Order of appends does not matter:
// Sorted applies the total order and collapses duplicates regardless
// of report order, which is what makes two runs over the same input
// produce identical diagnostic output even if passes ran in a
// different relative order (e.g. across a hot-swap replay).
func (l *Log) Report(d Diagnostic) {
	l.entries = append(l.entries, d)
}

// Len reports how many diagnostics have been recorded, before dedup.
func (l *Log) Len() int { return len(l.entries) }

// Sorted returns the log's diagnostics in the canonical order with
// duplicates collapsed. Two diagnostics are duplicates if they share
// both Key and Location; the first one encountered in the sorted order
// is kept.
func (l *Log) Sorted() []Diagnostic {
	out := make([]Diagnostic, len(l.entries))
	copy(out, l.entries)

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	type dedupKey struct {
		key string
		loc Location
	}

	seen := make(map[dedupKey]struct{}, len(out))
	deduped := out[:0]
	for _, d := range out {
		k := dedupKey{d.Key, d.Location}
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		deduped = append(deduped, d)
	}

	return deduped
}
