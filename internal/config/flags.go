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

// Package config holds the pipeline's feature-flag bitmask and its
// optional file-based configuration (C8's surrounding configuration,
// per SPEC_FULL.md §4).
package config

// Flags are pipeline-wide feature toggles.
type Flags uint8

const (
	// ChecksOnly runs only ValidityCheck passes and skips every
	// LoopMember/OneShot pass that would mutate the tree.
	ChecksOnly Flags = 1 << iota

	// ContinueAfterErrors keeps the pipeline going after a pass reports
	// a non-fatal error, collecting it as a diagnostic instead of
	// aborting Process.
	ContinueAfterErrors

	// AllowHotSwapReplaceScript permits ReplaceScript to be called on a
	// Pipeline that has already completed a run, re-entering the full
	// declared pass list (each pass querying only scopes changed since
	// its last run) instead of requiring a fresh Pipeline.
	AllowHotSwapReplaceScript

	// IncludeGenerated is set from the include_generated config key. No
	// pipeline component reads it; it has no effect on WRAP or module
	// resolution.
	IncludeGenerated
)

// Config bundles the bitmask with the pipeline's numeric knobs.
type Config struct {
	Flags BitMask[Flags]

	// LanguageInVersion and LanguageOutVersion are semver strings
	// (validated with golang.org/x/mod/semver) describing the source
	// and target language levels passes should assume.
	LanguageInVersion  string
	LanguageOutVersion string

	// MaxLoopIterations overrides loop.DefaultIterationCap when > 0.
	MaxLoopIterations int

	// Passes is the declared, ordered list of pass names to register,
	// used by cmd/astpassc to build a Pipeline from a file.
	Passes []string
}
