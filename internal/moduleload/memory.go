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
	"path"
	"strings"
	"sync"

	"golang.org/x/mod/module"
	"golang.org/x/sync/singleflight"
)

// MemoryLoader is the default in-memory ModuleLoader: a fixed map of
// known entries plus aliases, resolved against a declared root. It is
// safe for concurrent use; concurrent Resolve calls for the same
// specifier and origin are deduplicated via singleflight, so a host that
// drives the pipeline's passes from a worker pool never runs two
// resolutions of the same module at once. Results are not cached: a
// later call resolves again.
type MemoryLoader struct {
	root    string
	mu      sync.RWMutex
	main    map[string]string
	aliases map[string]AliasTarget
	group   singleflight.Group
}

// NewMemoryLoader creates a loader rooted at root (a module-graph-
// relative prefix; "" means the graph root), seeded with main entries
// and aliases. Both maps are copied.
func NewMemoryLoader(root string, main map[string]string, aliases map[string]AliasTarget) *MemoryLoader {
	m := make(map[string]string, len(main))
	for k, v := range main {
		m[k] = v
	}

	a := make(map[string]AliasTarget, len(aliases))
	for k, v := range aliases {
		a[k] = v
	}

	return &MemoryLoader{root: root, main: m, aliases: a}
}

// Resolve implements Loader.
func (l *MemoryLoader) Resolve(ctx context.Context, specifier, from string) (ResolvedPath, error) {
	key := from + "\x00" + specifier

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		return l.resolve(specifier, from)
	})
	if err != nil {
		return "", err
	}

	return v.(ResolvedPath), nil
}

func (l *MemoryLoader) resolve(specifier, from string) (ResolvedPath, error) {
	if strings.HasPrefix(specifier, ".") {
		joined := path.Join(path.Dir(from), specifier)
		if !strings.HasPrefix(joined, l.root) {
			return "", &ResolveError{Kind: AboveRoot, Specifier: specifier, From: from}
		}

		specifier = joined
	} else if err := module.CheckImportPath(specifier); err != nil {
		return "", &ResolveError{Kind: InvalidPath, Specifier: specifier, From: from, underlying: err}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if target, ok := l.aliases[specifier]; ok {
		return target.RealPath, nil
	}

	if resolved, ok := l.main[specifier]; ok {
		return ResolvedPath(resolved), nil
	}

	return "", &ResolveError{Kind: NotFound, Specifier: specifier, From: from}
}

// MainEntries implements Loader.
func (l *MemoryLoader) MainEntries() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]string, len(l.main))
	for k, v := range l.main {
		out[k] = v
	}

	return out
}

// AliasedEntries implements Loader.
func (l *MemoryLoader) AliasedEntries() map[string]AliasTarget {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]AliasTarget, len(l.aliases))
	for k, v := range l.aliases {
		out[k] = v
	}

	return out
}

// SetEntry adds or overwrites a main entry. Used by hosts that discover
// modules incrementally (e.g. a hot-swap replace of one script).
func (l *MemoryLoader) SetEntry(specifier, resolved string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.main[specifier] = resolved
}

var _ fmt.Stringer = ErrorKind(0)
