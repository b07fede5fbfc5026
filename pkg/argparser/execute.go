// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"github.com/yeetrun/forge/pkg/logging"
)

// errBuiltinSeen stops the tokenizer at the first built-in flag.
var errBuiltinSeen = errors.New("built-in flag seen")

// ExecuteDefault looks for a built-in flag in args (args[0] being the program
// name) and, on the first one found, runs its behavior with the Description
// registered under args[0].
func (r *Registry) ExecuteDefault(args []string) Status {
	if len(args) == 0 {
		return None
	}
	opts := gnuOptions(builtinOptions)
	shorts := shortFlags(opts)
	fs := newFlagSet(args[0], opts)

	position := -1
	err := fs.ParseAll(args[1:], func(flag *pflag.Flag, _ string) error {
		if flag.Shorthand == "" {
			return nil
		}
		if i := strings.IndexByte(shorts, flag.Shorthand[0]); i >= 0 {
			position = i
			return errBuiltinSeen
		}
		return nil
	})
	if err != nil && !errors.Is(err, errBuiltinSeen) {
		logging.L().Debug().Err(err).Str("program", args[0]).Msg("argparser: tokenizer stopped")
	}
	if position < 0 {
		return None
	}

	d, ok := r.Lookup(args[0])
	if !ok {
		logging.L().Debug().Str("program", args[0]).Str("flag", builtinOptions[position].LongName).Msg("argparser: no description registered")
		return Undescribed
	}
	if err := builtinActions[position](r.output(), d); err != nil {
		logging.L().Warn().Err(err).Str("program", d.Name).Msg("argparser: writing built-in output")
	}
	return Executed
}

func help(w io.Writer, d Description) error {
	_, err := fmt.Fprintf(w, "OVERVIEW: %s\nUSAGE: %s", d.Overview, d.Name)
	return err
}
