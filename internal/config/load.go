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

package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
)

// fileConfig is the on-disk TOML shape. Field names are lowercased by
// BurntSushi/toml's default key matching, so the struct tags spell out
// the snake_case keys a CI config file actually uses.
type fileConfig struct {
	LanguageInVersion         string   `toml:"language_in_version"`
	LanguageOutVersion        string   `toml:"language_out_version"`
	MaxLoopIterations         int      `toml:"max_loop_iterations"`
	Passes                    []string `toml:"passes"`
	ChecksOnly                bool     `toml:"checks_only"`
	ContinueAfterErrors       bool     `toml:"continue_after_errors"`
	AllowHotSwapReplaceScript bool     `toml:"allow_hot_swap_replace_script"`
	IncludeGenerated          bool     `toml:"include_generated"`
}

// Load reads and validates a pipeline configuration file. Version
// strings, if set, must be valid semver (golang.org/x/mod/semver); an
// invalid or missing "v" prefix is rejected rather than silently
// normalized, so a typo in CI config fails fast instead of resolving to
// an unintended language level.
func Load(path string) (Config, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	return fromFile(fc)
}

// LoadBytes parses configuration from raw TOML content rather than a
// file path, for tests and embedded defaults.
func LoadBytes(data []byte) (Config, error) {
	var fc fileConfig
	if _, err := toml.Decode(string(data), &fc); err != nil {
		return Config{}, fmt.Errorf("config.LoadBytes: %w", err)
	}

	return fromFile(fc)
}

func fromFile(fc fileConfig) (Config, error) {
	if fc.LanguageInVersion != "" && !semver.IsValid(fc.LanguageInVersion) {
		return Config{}, fmt.Errorf("config: language_in_version %q is not valid semver", fc.LanguageInVersion)
	}
	if fc.LanguageOutVersion != "" && !semver.IsValid(fc.LanguageOutVersion) {
		return Config{}, fmt.Errorf("config: language_out_version %q is not valid semver", fc.LanguageOutVersion)
	}
	if fc.LanguageInVersion != "" && fc.LanguageOutVersion != "" &&
		semver.Compare(fc.LanguageOutVersion, fc.LanguageInVersion) < 0 {
		return Config{}, fmt.Errorf("config: language_out_version %q is older than language_in_version %q",
			fc.LanguageOutVersion, fc.LanguageInVersion)
	}

	var flags BitMask[Flags]
	flags.Set(ChecksOnly, fc.ChecksOnly)
	flags.Set(ContinueAfterErrors, fc.ContinueAfterErrors)
	flags.Set(AllowHotSwapReplaceScript, fc.AllowHotSwapReplaceScript)
	flags.Set(IncludeGenerated, fc.IncludeGenerated)

	return Config{
		Flags:              flags,
		LanguageInVersion:  fc.LanguageInVersion,
		LanguageOutVersion: fc.LanguageOutVersion,
		MaxLoopIterations:  fc.MaxLoopIterations,
		Passes:             fc.Passes,
	}, nil
}
