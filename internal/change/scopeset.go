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

package change

import "fillmore-labs.com/astpass/internal/scopetrack"

// ScopeSet is the result of a Query: the scopes a pass should consider
// changed. FirstRun distinguishes "every scope, because P has never run
// here" from "every scope happened to change", which otherwise look
// identical once the Scopes slice is built.
type ScopeSet struct {
	Scopes   []scopetrack.ScopeRoot
	FirstRun bool
}

// Empty reports whether the set contains no scopes.
func (s ScopeSet) Empty() bool { return len(s.Scopes) == 0 }

// Contains reports whether scope is a member of the set.
func (s ScopeSet) Contains(scope scopetrack.ScopeRoot) bool {
	for _, sc := range s.Scopes {
		if sc == scope {
			return true
		}
	}

	return false
}

// Merge returns the union of a and b, deduplicated. FirstRun is true if
// either input is.
func Merge(sets ...ScopeSet) ScopeSet {
	seen := make(map[scopetrack.ScopeRoot]struct{})

	var out ScopeSet
	for _, s := range sets {
		if s.FirstRun {
			out.FirstRun = true
		}

		for _, sc := range s.Scopes {
			if _, ok := seen[sc]; ok {
				continue
			}

			seen[sc] = struct{}{}
			out.Scopes = append(out.Scopes, sc)
		}
	}

	return out
}
