// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli is the main loop shared by the forge entry points. A Program
// is a static table of the binary's description and subcommand handlers;
// Run registers it, lets argparser handle the built-in flags, and dispatches
// on the immediate subcommand.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/yeetrun/forge/pkg/argparser"
	"github.com/yeetrun/forge/pkg/logging"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Invocation is what a Handler gets to work with.
type Invocation struct {
	Program    string
	Subcommand string   // empty for the Default handler
	Args       []string // arguments without the program name and subcommand
	Stdout     io.Writer
	Stderr     io.Writer
	Registry   *argparser.Registry
}

type Handler func(ctx context.Context, inv Invocation) error

type Command struct {
	Name        string
	Description string
	Handler     Handler
}

type Program struct {
	Name     string
	Overview string
	// Options lists the program's flags in addition to the built-in ones.
	Options  []argparser.Option
	Commands []Command
	// Globals, when set, consumes the flags that apply to every subcommand
	// and returns the arguments left over. It runs after the built-in flags
	// are handled and before the subcommand is looked for.
	Globals func(args []string) ([]string, error)
	// Default runs when no subcommand is given. Without it that is a usage
	// error.
	Default Handler
}

// UsageError marks a mistake in how the program was called.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func Usagef(format string, a ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, a...)}
}

// ErrUndescribed is reported when a built-in flag is given to a program
// whose name has no registered description.
var ErrUndescribed = errors.New("program is not described")

// Register adds p's description to r.
func (p Program) Register(r *argparser.Registry) {
	opts := append(argparser.BuiltinOptions(), p.Options...)
	subs := make([]argparser.Subcommand, 0, len(p.Commands))
	for _, c := range p.Commands {
		subs = append(subs, argparser.Subcommand{Name: c.Name, Documentation: c.Description})
	}
	r.Register(p.Name, p.Overview, opts, subs)
}

func (p Program) command(name string) (Command, bool) {
	for _, c := range p.Commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// Run registers p with r and handles args, which start with the program
// name as in os.Args. It returns the process exit code.
func (p Program) Run(ctx context.Context, r *argparser.Registry, args []string, stdout, stderr io.Writer) int {
	p.Register(r)
	if len(args) == 0 {
		args = []string{p.Name}
	}
	switch status := r.ExecuteDefault(args); status {
	case argparser.Executed:
		return ExitOK
	case argparser.Undescribed:
		return p.fail(stderr, fmt.Errorf("%w: %q (register it before handling arguments)", ErrUndescribed, args[0]))
	}

	rest := args[1:]
	if p.Globals != nil {
		var err error
		rest, err = p.Globals(rest)
		if err != nil {
			return p.fail(stderr, Usagef("%v", err))
		}
	}

	inv := Invocation{
		Program:  args[0],
		Stdout:   stdout,
		Stderr:   stderr,
		Registry: r,
	}
	scanned := append([]string{args[0]}, rest...)
	i, ok := argparser.SubcommandIndex(scanned)
	if !ok {
		if p.Default == nil {
			return p.fail(stderr, Usagef("missing subcommand; run '%s --help'", p.Name))
		}
		inv.Args = rest
		return p.finish(ctx, stderr, p.Default, inv)
	}
	sub, _ := argparser.ImmediateSubcommand(scanned)
	cmd, found := p.command(sub)
	if !found {
		if p.Default == nil {
			return p.fail(stderr, Usagef("unknown subcommand %q", sub))
		}
		inv.Args = rest
		return p.finish(ctx, stderr, p.Default, inv)
	}
	inv.Subcommand = cmd.Name
	inv.Args = removeArgAt(scanned, i)[1:]
	logging.L().Debug().Str("program", p.Name).Str("subcommand", cmd.Name).Strs("args", inv.Args).Msg("dispatch")
	return p.finish(ctx, stderr, cmd.Handler, inv)
}

func (p Program) finish(ctx context.Context, stderr io.Writer, h Handler, inv Invocation) int {
	if err := h(ctx, inv); err != nil {
		return p.fail(stderr, err)
	}
	return ExitOK
}

func (p Program) fail(w io.Writer, err error) int {
	printError(w, p.Name, err)
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	return ExitFailure
}

func printError(w io.Writer, program string, err error) {
	fmt.Fprintln(w, color.RedString("%s: %v", program, err))
}

// SplitArgsAtDoubleDash splits args at the first "--", dropping it.
func SplitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}

func removeArgAt(args []string, idx int) []string {
	if idx < 0 || idx >= len(args) {
		return args
	}
	out := make([]string, 0, len(args)-1)
	out = append(out, args[:idx]...)
	out = append(out, args[idx+1:]...)
	return out
}
