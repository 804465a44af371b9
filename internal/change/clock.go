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

// Package change implements the ChangeTimeline (C2 in SPEC_FULL.md): a
// monotonic clock plus per-scope last-modified timestamps, queried by
// passes as "changed since T within region R".
package change

// Clock is the single monotonically increasing counter shared by every
// region's Timeline. Sharing one Clock (rather than giving each region
// its own) is what lets "the ChangeTimeline clock is strictly monotonic
// across the whole run" (testable property 3 in spec.md §8) hold even
// though timelines are partitioned per region for the shadow-isolation
// fix mandated in spec.md §9.
//
// The engine is single-threaded cooperative (spec.md §5): Tick is not
// safe for concurrent use, matching that model.
type Clock struct {
	value int64
}

// NewClock creates a clock starting at zero.
func NewClock() *Clock {
	return &Clock{}
}

// Tick advances the clock and returns the new value.
func (c *Clock) Tick() int64 {
	c.value++
	return c.value
}

// Current returns the clock's current value without advancing it.
func (c *Clock) Current() int64 {
	return c.value
}

// RestoreTo sets the clock's value directly, used only when
// reconstructing a Clock from a persisted Snapshot.
func (c *Clock) RestoreTo(v int64) {
	c.value = v
}
