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

// Package moduleload implements the ModuleLoader contract (C10 in
// SPEC_FULL.md): resolving an import specifier relative to a location
// to a path inside the loadable-module graph, plus the two lookup maps
// import-rewriting passes consult.
package moduleload

import (
	"context"
	"fmt"
)

// ErrorKind classifies why Resolve failed.
type ErrorKind uint8

const (
	// NotFound: specifier does not match any known module entry.
	NotFound ErrorKind = iota
	// AmbiguousRoot: specifier matches more than one root under
	// different aliases with no way to prefer one.
	AmbiguousRoot
	// AboveRoot: a relative specifier walks above the loader's root.
	AboveRoot
	// InvalidPath: specifier is not syntactically a valid module path.
	InvalidPath
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not-found"
	case AmbiguousRoot:
		return "ambiguous-root"
	case AboveRoot:
		return "above-root"
	case InvalidPath:
		return "invalid-path"
	default:
		return fmt.Sprintf("moduleload.ErrorKind(%d)", uint8(k))
	}
}

// ResolveError reports a failed resolution with its classification.
type ResolveError struct {
	Kind       ErrorKind
	Specifier  string
	From       string
	underlying error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("moduleload: resolve %q from %q: %s", e.Specifier, e.From, e.Kind)
}

func (e *ResolveError) Unwrap() error { return e.underlying }

// ResolvedPath is the module-relative path a specifier resolved to.
type ResolvedPath string

// AliasTarget is what an aliased entry in AliasedEntries points at.
type AliasTarget struct {
	Path     ResolvedPath
	RealPath ResolvedPath // the entry the alias ultimately refers to
}

// Loader is the ModuleLoader contract.
type Loader interface {
	// Resolve maps specifier, referenced from the module at from, to a
	// ResolvedPath, or a *ResolveError.
	Resolve(ctx context.Context, specifier, from string) (ResolvedPath, error)
	// MainEntries returns the loader's non-aliased module entries,
	// specifier -> resolved path.
	MainEntries() map[string]string
	// AliasedEntries returns the loader's aliased module entries,
	// alias specifier -> target.
	AliasedEntries() map[string]AliasTarget
}
