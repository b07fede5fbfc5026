// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package build drives CMake to configure and build the toolchain from
// source.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/yeetrun/forge/pkg/cmdutil"
	"github.com/yeetrun/forge/pkg/config"
	"github.com/yeetrun/forge/pkg/logging"
)

// ErrCMakeVersion is returned when the installed CMake does not satisfy
// build.min_cmake.
var ErrCMakeVersion = errors.New("unsupported cmake version")

// Runner runs external commands.
type Runner interface {
	Run(ctx context.Context, name string, arg ...string) error
	Output(ctx context.Context, name string, arg ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, arg ...string) error {
	return cmdutil.NewStdCmd(ctx, name, arg...).Run()
}

func (execRunner) Output(ctx context.Context, name string, arg ...string) (string, error) {
	return cmdutil.Output(ctx, name, arg...)
}

// ExecRunner runs commands as subprocesses attached to the terminal.
var ExecRunner Runner = execRunner{}

// Options override the config for a single invocation. Zero values keep the
// configured setting.
type Options struct {
	SourceDir string // defaults to the working directory
	Dir       string
	Generator string
	Type      string
	Jobs      int
	DryRun    bool
}

// Step is one CMake invocation.
type Step struct {
	Name string
	Args []string
}

// Plan returns the configure and build steps for cfg and opts.
func Plan(cfg config.Build, opts Options) ([]Step, error) {
	src := opts.SourceDir
	if src == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		src = wd
	}
	dir := firstNonEmpty(opts.Dir, cfg.Dir)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(src, dir)
	}

	configure := []string{"-S", src, "-B", dir}
	if g := firstNonEmpty(opts.Generator, cfg.Generator); g != "" {
		configure = append(configure, "-G", g)
	}
	if t := firstNonEmpty(opts.Type, cfg.Type); t != "" {
		configure = append(configure, "-DCMAKE_BUILD_TYPE="+t)
	}

	compile := []string{"--build", dir}
	jobs := cfg.Jobs
	if opts.Jobs > 0 {
		jobs = opts.Jobs
	}
	if jobs > 0 {
		compile = append(compile, "-j", strconv.Itoa(jobs))
	}
	return []Step{
		{Name: "configure", Args: configure},
		{Name: "build", Args: compile},
	}, nil
}

// Run checks the CMake version when required, then runs every step of the
// plan in order, stopping at the first failure.
func Run(ctx context.Context, r Runner, cfg config.Build, opts Options) error {
	if r == nil {
		r = ExecRunner
	}
	steps, err := Plan(cfg, opts)
	if err != nil {
		return err
	}
	log := logging.L().With().Str("build_id", uuid.NewString()).Logger()

	if cfg.MinCMake != "" {
		v, err := cmakeVersion(ctx, r, cfg.CMake)
		if err != nil {
			return err
		}
		c, err := semver.NewConstraint(cfg.MinCMake)
		if err != nil {
			return fmt.Errorf("invalid min_cmake %q: %w", cfg.MinCMake, err)
		}
		if !c.Check(v) {
			return fmt.Errorf("%w: have %s, want %s", ErrCMakeVersion, v, cfg.MinCMake)
		}
		log.Debug().Str("version", v.String()).Msg("cmake version ok")
	}

	for _, step := range steps {
		line := cmdutil.CommandLine(cfg.CMake, step.Args...)
		if opts.DryRun {
			log.Info().Str("step", step.Name).Str("cmd", line).Msg("dry run")
			continue
		}
		log.Info().Str("step", step.Name).Str("cmd", line).Msg("running")
		if err := r.Run(ctx, cfg.CMake, step.Args...); err != nil {
			return fmt.Errorf("%s failed: %w", step.Name, err)
		}
	}
	return nil
}

// cmakeVersion parses the first line of `cmake --version`, e.g.
// "cmake version 3.28.1". Suffixes such as "-rc2" are dropped so
// prereleases compare as their release.
func cmakeVersion(ctx context.Context, r Runner, cmake string) (*semver.Version, error) {
	out, err := r.Output(ctx, cmake, "--version")
	if err != nil {
		return nil, fmt.Errorf("failed to query cmake version: %w", err)
	}
	line, _, _ := strings.Cut(out, "\n")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("unexpected cmake --version output %q", line)
	}
	raw, _, _ := strings.Cut(fields[len(fields)-1], "-")
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("unexpected cmake --version output %q: %w", line, err)
	}
	return v, nil
}

func firstNonEmpty(override, configured string) string {
	if override != "" {
		return override
	}
	return configured
}
