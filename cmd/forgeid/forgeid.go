// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command forgeid reports which of its arguments are identifiers of the
// language.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/yeetrun/forge/pkg/argparser"
	"github.com/yeetrun/forge/pkg/cli"
	"github.com/yeetrun/forge/pkg/lexer"
	"github.com/yeetrun/forge/pkg/logging"
	"golang.org/x/term"
)

const programName = "forgeid"

var errNotIdentifier = errors.New("not every word is an identifier")

var isTerminalFn = term.IsTerminal

func program() cli.Program {
	return cli.Program{
		Name:     programName,
		Overview: "Reports whether each WORD is an identifier.",
		Default:  checkWords,
	}
}

func checkWords(_ context.Context, inv cli.Invocation) error {
	flags, literal := cli.SplitArgsAtDoubleDash(inv.Args)
	for _, w := range flags {
		if strings.HasPrefix(w, "-") && w != "-" {
			return cli.Usagef("unknown flag %q (use -- before words starting with '-')", w)
		}
	}
	words := append(append([]string{}, flags...), literal...)
	if len(words) == 0 {
		return cli.Usagef("usage: %s WORD...", programName)
	}

	all := true
	for i, w := range words {
		tok := lexer.NewToken(0, i, w)
		if tok.IsIdentifier() {
			fmt.Fprintf(inv.Stdout, "%s: identifier\n", w)
			continue
		}
		all = false
		fmt.Fprintf(inv.Stdout, "%s: not an identifier\n", w)
	}
	if !all {
		return errNotIdentifier
	}
	return nil
}

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
	logging.ConfigureRuntime()
	code := program().Run(context.Background(), argparser.Default(), programArgs(os.Args), os.Stdout, os.Stderr)
	os.Exit(code)
}
