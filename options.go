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

package astpass

import (
	"log/slog"

	"fillmore-labs.com/astpass/internal/config"
	"fillmore-labs.com/astpass/internal/loop"
	"fillmore-labs.com/astpass/internal/moduleload"
)

// pipelineOptions is the resolved configuration a Pipeline runs with.
type pipelineOptions struct {
	flags             config.BitMask[config.Flags]
	maxLoopIterations int
	logger            *slog.Logger
	loader            moduleload.Loader
	onProgress        func(percent int)
}

func defaultOptions() *pipelineOptions {
	return &pipelineOptions{
		maxLoopIterations: loop.DefaultIterationCap,
		logger:            slog.Default(),
	}
}

// Option configures a Pipeline created by New.
type Option interface {
	apply(o *pipelineOptions)
	logAttr() slog.Attr
}

// Options is a list of Option values that itself satisfies Option.
type Options []Option

// LogValue implements slog.LogValuer.
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	for _, opt := range o {
		as = append(as, opt.logAttr())
	}

	return slog.GroupValue(as...)
}

func (o Options) apply(opts *pipelineOptions) {
	for _, opt := range o {
		opt.apply(opts)
	}
}

func (o Options) logAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithMaxLoopIterations overrides the default fixed-point loop
// iteration cap for every loop region in the pipeline.
func WithMaxLoopIterations(n int) Option { return maxLoopIterationsOption{n: n} }

type maxLoopIterationsOption struct{ n int }

func (o maxLoopIterationsOption) apply(opts *pipelineOptions) { opts.maxLoopIterations = o.n }
func (o maxLoopIterationsOption) logAttr() slog.Attr          { return slog.Int("max_loop_iterations", o.n) }

// WithFlags sets the pipeline-wide feature-flag bitmask.
func WithFlags(flags config.BitMask[config.Flags]) Option { return flagsOption{flags: flags} }

type flagsOption struct{ flags config.BitMask[config.Flags] }

func (o flagsOption) apply(opts *pipelineOptions) { opts.flags = o.flags }
func (o flagsOption) logAttr() slog.Attr          { return slog.Any("flags", o.flags) }

// WithLogger sets the *slog.Logger the pipeline logs to at debug level:
// completion of each one-shot or validity-check pass outside a loop, a
// hot-swap, and the end of each run. Loop rounds are not logged. The
// default is slog.Default().
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(opts *pipelineOptions) { opts.logger = o.logger }
func (o loggerOption) logAttr() slog.Attr          { return slog.String("logger", "custom") }

// WithModuleLoader sets the ModuleLoader passes consult to resolve
// import specifiers. The default is an empty in-memory loader.
func WithModuleLoader(loader moduleload.Loader) Option { return loaderOption{loader: loader} }

type loaderOption struct{ loader moduleload.Loader }

func (o loaderOption) apply(opts *pipelineOptions) { opts.loader = o.loader }
func (o loaderOption) logAttr() slog.Attr          { return slog.String("module_loader", "custom") }

// WithProgress installs a callback invoked with a monotonically
// increasing percentage (0-100) as declared passes complete their
// first run.
func WithProgress(f func(percent int)) Option { return progressOption{f: f} }

type progressOption struct{ f func(percent int) }

func (o progressOption) apply(opts *pipelineOptions) { opts.onProgress = o.f }
func (o progressOption) logAttr() slog.Attr          { return slog.Bool("progress_callback", o.f != nil) }
