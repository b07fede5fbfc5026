// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command forge builds the toolchain from source and exposes the
// descriptions of the toolchain's programs.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/yeetrun/forge/pkg/argparser"
	"github.com/yeetrun/forge/pkg/build"
	"github.com/yeetrun/forge/pkg/cli"
	"golang.org/x/term"
)

const programName = "forge"

var isTerminalFn = term.IsTerminal

func (f *forge) program() cli.Program {
	return cli.Program{
		Name:     programName,
		Overview: "Builds the toolchain from its source or runs one of the phases of compilation.",
		Options: []argparser.Option{
			{LongName: "verbose", ShortName: 'v', Documentation: "Log every step."},
			{LongName: "config", ShortName: 'c', Documentation: "Read settings from this file instead of forge.toml."},
		},
		Commands: []cli.Command{
			{Name: "build", Description: "Builds the toolchain from source with CMake.", Handler: f.handleBuild},
			{Name: "descriptions", Description: "Prints the descriptions of registered programs as YAML.", Handler: handleDescriptions},
		},
		Globals: f.applyGlobalFlags,
	}
}

// programArgs replaces the path in args[0] with the base name the program
// registers under.
func programArgs(args []string) []string {
	if len(args) == 0 {
		return []string{programName}
	}
	out := append([]string{}, args...)
	out[0] = filepath.Base(out[0])
	return out
}

func main() {
	if !isTerminalFn(int(os.Stderr.Fd())) {
		color.NoColor = true
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := newForge(build.ExecRunner).program().Run(ctx, argparser.Default(), programArgs(os.Args), os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
