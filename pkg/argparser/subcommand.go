// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparser

import (
	"strings"
	"unicode"
)

// ImmediateSubcommand returns the immediate subcommand in args: the first argument
// after the program name that is neither an option nor the argument of the
// option right before it. Leading whitespace is ignored and blank arguments
// are skipped.
//
// There is no table of which options take a value, so every option is
// assumed to consume the argument directly after it: "prog -o out build"
// yields "build", and "prog -v build" yields nothing. Positions count blank
// arguments too, so a blank between an option and a word leaves the word
// unconsumed.
//
// The returned string is a view into args, not a copy.
func ImmediateSubcommand(args []string) (string, bool) {
	i, ok := SubcommandIndex(args)
	if !ok {
		return "", false
	}
	return strings.TrimLeftFunc(args[i], unicode.IsSpace), true
}

// SubcommandIndex is like ImmediateSubcommand but returns the position of the
// subcommand in args.
func SubcommandIndex(args []string) (int, bool) {
	lastOption := -1
	for i := 1; i < len(args); i++ {
		arg := strings.TrimLeftFunc(args[i], unicode.IsSpace)
		if arg == "" {
			continue
		}
		if strings.HasPrefix(arg, "-") {
			lastOption = i
			continue
		}
		if lastOption >= 0 && i == lastOption+1 {
			lastOption = -1
			continue
		}
		return i, true
	}
	return -1, false
}
