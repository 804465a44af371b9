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

// Command astpassc is a minimal driver for the astpass pipeline engine.
// It loads a TOML pipeline configuration, wires the declared passes
// from a small built-in registry (the parser and the full pass catalog
// are out of scope; see the demonstration passes in internal/passes),
// and runs the pipeline once over a single-node placeholder program,
// printing its diagnostics and a one-line run summary to stdout (logs go
// to stderr).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fillmore-labs.com/astpass"
	"fillmore-labs.com/astpass/internal/ast"
	"fillmore-labs.com/astpass/internal/config"
	"fillmore-labs.com/astpass/internal/pass"
	"fillmore-labs.com/astpass/internal/passes"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("astpassc", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a pipeline TOML configuration file")
	verbose := fs.Bool("v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "astpassc: -config is required")
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading configuration", "error", err)
		return 1
	}

	result, err := runPipeline(cfg, logger)
	if err != nil {
		logger.Error("pipeline run failed", "error", err)
		return 1
	}

	for _, d := range result.Diagnostics {
		fmt.Fprintf(os.Stdout, "[%s] %s: %s\n", d.Level, d.Key, d.Message)
	}
	fmt.Fprintf(os.Stdout, "passes run: %d, loop regions: %d, diverged: %t\n",
		result.PassesRun, len(result.LoopRegions), result.Diverged)

	return 0
}

// builtinPasses is the small registry cmd/astpassc wires declared pass
// names against. It stands in for the full catalog a real front end
// would register, per SPEC_FULL.md's demonstration-pass supplement.
func builtinPasses() map[string]pass.Record {
	return map[string]pass.Record{
		"inline-alias": passes.AliasInliner("inline-alias", map[string]string{
			"$goog$exportSymbol": "exportSymbol",
		}),
		"canon-literal": passes.LiteralRewriter("canon-literal"),
	}
}

func runPipeline(cfg config.Config, logger *slog.Logger) (astpass.Result, error) {
	program := ast.NewTree()
	if _, err := program.New(ast.KindProgram, ast.Location{}); err != nil {
		return astpass.Result{}, fmt.Errorf("astpassc: building placeholder program: %w", err)
	}

	opts := []astpass.Option{astpass.WithLogger(logger), astpass.WithFlags(cfg.Flags)}
	if cfg.MaxLoopIterations > 0 {
		opts = append(opts, astpass.WithMaxLoopIterations(cfg.MaxLoopIterations))
	}

	p := astpass.New(program, nil, opts...)

	registry := builtinPasses()
	for _, name := range cfg.Passes {
		rec, ok := registry[name]
		if !ok {
			return astpass.Result{}, fmt.Errorf("astpassc: unknown pass %q", name)
		}
		p.AddPass(rec)
	}

	return p.Process(context.Background())
}
