// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads forge.toml. Values come from built-in defaults, then
// the file, then FORGE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/caarlos0/env/v11"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "forge.toml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Build Build `toml:"build"`
}

// Build configures the CMake shim behind `forge build`.
type Build struct {
	CMake     string `toml:"cmake" env:"FORGE_CMAKE"`
	Dir       string `toml:"dir" env:"FORGE_BUILD_DIR"`
	Generator string `toml:"generator" env:"FORGE_GENERATOR"`
	Type      string `toml:"type" env:"FORGE_BUILD_TYPE"`
	MinCMake  string `toml:"min_cmake" env:"FORGE_MIN_CMAKE"`
	Jobs      int    `toml:"jobs" env:"FORGE_JOBS"`
}

func Default() Config {
	return Config{
		Build: Build{
			CMake: "cmake",
			Dir:   "build",
		},
	}
}

// Load reads path on top of the defaults and applies environment overrides.
// A missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	b := cfg.Build
	if strings.TrimSpace(b.CMake) == "" {
		return fmt.Errorf("%w: build.cmake is empty", ErrInvalid)
	}
	if strings.TrimSpace(b.Dir) == "" {
		return fmt.Errorf("%w: build.dir is empty", ErrInvalid)
	}
	if b.Jobs < 0 {
		return fmt.Errorf("%w: build.jobs must not be negative, got %d", ErrInvalid, b.Jobs)
	}
	if b.MinCMake != "" {
		if _, err := semver.NewConstraint(b.MinCMake); err != nil {
			return fmt.Errorf("%w: build.min_cmake %q: %v", ErrInvalid, b.MinCMake, err)
		}
	}
	return nil
}
