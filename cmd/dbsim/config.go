// Copyright 2020-2021 Dolthub, Inc.
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

package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// config is cmd/dbsim's bootstrap file (SPEC_FULL.md §10), setting the log
// level, whether the optimizer runs by default, and which optimizer rules a
// run starts with. A missing
// file is not an error: loadConfig returns defaultConfig() unchanged.
type config struct {
	LogLevel string   `toml:"log_level"`
	Optimize bool     `toml:"optimize"`
	Rules    []string `toml:"rules"`
}

func defaultConfig() config {
	return config{
		LogLevel: "info",
		Optimize: true,
		Rules:    []string{"filter_merge", "filter_pushdown", "extension_swap"},
	}
}

// loadConfig reads path as TOML over defaultConfig(), leaving every unset
// field at its default. A path that does not exist is silently skipped;
// any other read/parse error is returned.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return config{}, errors.Wrapf(err, "decoding %s", path)
	}
	return cfg, nil
}
