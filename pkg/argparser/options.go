// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparser

import (
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// builtinOptions are the flags handled by ExecuteDefault. The behavior for
// each lives at the same position in builtinActions.
var builtinOptions = []Option{
	{LongName: "help", ShortName: 'h', Documentation: "Provide assistance on how to use the program."},
}

var builtinActions = []func(w io.Writer, d Description) error{
	help,
}

// BuiltinOptions returns a copy of the options ExecuteDefault recognizes.
// Programs usually list them in their own Description.
func BuiltinOptions() []Option {
	return append([]Option(nil), builtinOptions...)
}

// gnuOption is an Option in the shape a getopt_long style tokenizer wants.
type gnuOption struct {
	Long   string
	Short  byte
	HasArg bool
	Usage  string
}

func toGNU(o Option) gnuOption {
	return gnuOption{
		Long:   o.LongName,
		Short:  o.ShortName,
		HasArg: false,
		Usage:  o.Documentation,
	}
}

func gnuOptions(opts []Option) []gnuOption {
	out := make([]gnuOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, toGNU(o))
	}
	return out
}

// shortFlags concatenates the short name of every option, in order. The
// index of a short name in the result is the index of its option.
func shortFlags(opts []gnuOption) string {
	var b strings.Builder
	b.Grow(len(opts))
	for _, o := range opts {
		b.WriteByte(o.Short)
	}
	return b.String()
}

// newFlagSet builds a tokenizer that knows only opts. Anything else on the
// command line (positionals, unknown flags) is skipped rather than rejected,
// since it belongs to the calling program.
func newFlagSet(name string, opts []gnuOption) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.ParseErrorsWhitelist.UnknownFlags = true
	for _, o := range opts {
		short := ""
		if o.Short != 0 {
			short = string(o.Short)
		}
		if o.HasArg {
			fs.StringP(o.Long, short, "", o.Usage)
			continue
		}
		fs.BoolP(o.Long, short, false, o.Usage)
	}
	return fs
}
