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

package passes

import (
	"context"
	"strconv"

	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/pass"
)

// LiteralRewriter returns a OneShot pass that canonicalizes numeric
// literal text (hex, octal and exponent forms collapse to plain
// decimal) and marks every literal it can parse as InferredConst. Text
// it cannot parse as a number, such as string literals, is left alone.
func LiteralRewriter(name string) pass.Record {
	run := func(_ context.Context, pc pass.Context) (bool, error) {
		changed := false

		for id := range pc.Main.NodeIDs() {
			n := pc.Main.Node(id)
			if n == nil || n.Kind() != ast.KindLiteral {
				continue
			}

			canon, ok := canonicalizeNumber(n.Attributes().Value)
			if !ok {
				continue
			}

			err := pc.Main.SetAttribute(id, func(a *ast.Attributes) {
				a.Value = canon
				a.InferredConst = true
			})
			if err != nil {
				continue
			}

			changed = true
		}

		return changed, nil
	}

	return pass.New(name, pass.OneShot, pass.MainOnly, true, run)
}

// canonicalizeNumber parses s as a Go-syntax integer or float literal
// and returns its plain decimal form. ok is false if s does not parse,
// or already is in canonical form, so the pass can skip a redundant
// write.
func canonicalizeNumber(s string) (canon string, ok bool) {
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		canon = strconv.FormatInt(i, 10)

		return canon, canon != s
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		canon = strconv.FormatFloat(f, 'f', -1, 64)

		return canon, canon != s
	}

	return "", false
}
