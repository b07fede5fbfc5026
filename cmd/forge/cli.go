// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/shayne/yargs"
	"github.com/yeetrun/forge/pkg/build"
	"github.com/yeetrun/forge/pkg/cli"
	"github.com/yeetrun/forge/pkg/config"
	"github.com/yeetrun/forge/pkg/logging"
)

type globalFlagsParsed struct {
	Verbose bool   `flag:"verbose" short:"v" help:"Log every step"`
	Config  string `flag:"config" short:"c" help:"Config file (default forge.toml)"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// forge carries what the global flags decided to the subcommand handlers.
type forge struct {
	configPath string
	runner     build.Runner
}

func newForge(runner build.Runner) *forge {
	return &forge{configPath: config.DefaultFile, runner: runner}
}

func (f *forge) applyGlobalFlags(args []string) ([]string, error) {
	flags, rest, err := parseGlobalFlags(args)
	if err != nil {
		return nil, err
	}
	if flags.Verbose {
		logging.Configure(logging.ProfileVerbose)
	} else {
		logging.ConfigureRuntime()
	}
	if flags.Config != "" {
		f.configPath = flags.Config
	}
	return rest, nil
}

type buildFlagsParsed struct {
	Source    string `flag:"source" short:"S" help:"Source directory (default: working directory)"`
	Dir       string `flag:"dir" short:"B" help:"Build directory"`
	Generator string `flag:"generator" short:"G" help:"CMake generator"`
	Type      string `flag:"type" help:"CMAKE_BUILD_TYPE"`
	Jobs      int    `flag:"jobs" short:"j" help:"Parallel build jobs"`
	DryRun    bool   `flag:"dry-run" short:"n" help:"Print the CMake commands without running them"`
}

func parseBuildFlags(args []string) (build.Options, error) {
	parseArgs, extra := cli.SplitArgsAtDoubleDash(args)
	result, err := yargs.ParseKnownFlags[buildFlagsParsed](parseArgs, yargs.KnownFlagsOptions{})
	if err != nil {
		return build.Options{}, cli.Usagef("build: %v", err)
	}
	if rest := append(result.RemainingArgs, extra...); len(rest) > 0 {
		return build.Options{}, cli.Usagef("build: unexpected arguments %q", rest)
	}
	f := result.Flags
	if f.Jobs < 0 {
		return build.Options{}, cli.Usagef("build: --jobs must not be negative")
	}
	return build.Options{
		SourceDir: f.Source,
		Dir:       f.Dir,
		Generator: f.Generator,
		Type:      f.Type,
		Jobs:      f.Jobs,
		DryRun:    f.DryRun,
	}, nil
}

func (f *forge) handleBuild(ctx context.Context, inv cli.Invocation) error {
	opts, err := parseBuildFlags(inv.Args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if err := build.Run(ctx, f.runner, cfg.Build, opts); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	return nil
}

func handleDescriptions(_ context.Context, inv cli.Invocation) error {
	if len(inv.Args) > 0 {
		return cli.Usagef("descriptions takes no arguments")
	}
	return inv.Registry.WriteYAML(inv.Stdout)
}
