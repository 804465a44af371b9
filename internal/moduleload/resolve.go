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

package moduleload

import (
	"context"
	"fmt"

	"fillmore-labs.com/astpass/internal/diag"
)

// Resolver is the function shape a pass is handed to resolve an import
// specifier: loader.Resolve wrapped so a failure is also surfaced as a
// diagnostic.
type Resolver func(ctx context.Context, specifier, from string) (ResolvedPath, error)

// ReportingResolver wraps loader so that a resolution failure is both
// returned to the caller and reported as a LoadWarning diagnostic,
// satisfying the ModuleLoader contract's engine obligation to surface
// resolution failures without itself halting the pipeline: the caller
// still decides what to do with the error.
func ReportingResolver(loader Loader, diags *diag.Log) Resolver {
	return func(ctx context.Context, specifier, from string) (ResolvedPath, error) {
		resolved, err := loader.Resolve(ctx, specifier, from)
		if err != nil {
			diags.Report(diag.Diagnostic{
				Key:     "load-warning",
				Level:   diag.Warning,
				Message: fmt.Sprintf("resolving %q from %q: %v", specifier, from, err),
			})
		}

		return resolved, err
	}
}
