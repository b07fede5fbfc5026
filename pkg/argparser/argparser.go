// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argparser is the argument engine shared by the forge entry points.
//
// A program describes itself once with Register, then calls ExecuteDefault
// before doing any argument handling of its own. ExecuteDefault recognizes
// the built-in flags (currently only -h/--help) and runs their behavior from
// the registered Description. When it returns None, the program branches on
// ImmediateSubcommand:
//
//	argparser.Register("forge", "Builds the toolchain.", nil, []argparser.Subcommand{
//	    {Name: "build", Documentation: "Builds from source."},
//	})
//	switch argparser.ExecuteDefault(args) {
//	case argparser.Executed:
//	    return 0
//	case argparser.Undescribed:
//	    return 1
//	}
//	if sub, ok := argparser.ImmediateSubcommand(args); ok && sub == "build" {
//	    ...
//	}
//
// args always includes the program name at index 0, as in os.Args.
package argparser

import "slices"

// Option is a flag accepted by a program, given either as --LongName or
// -ShortName.
type Option struct {
	LongName      string
	ShortName     byte
	Documentation string
}

// Subcommand is a verb selecting one of a program's operation modes.
type Subcommand struct {
	Name          string
	Documentation string
}

// Description is the static metadata of a registered program.
type Description struct {
	Name        string
	Overview    string
	Options     []Option
	Subcommands []Subcommand
}

func (d Description) clone() Description {
	d.Options = slices.Clone(d.Options)
	d.Subcommands = slices.Clone(d.Subcommands)
	return d
}

// Status is the result of ExecuteDefault.
type Status int

const (
	// Executed means a built-in flag was handled; the caller should usually
	// exit successfully.
	Executed Status = iota
	// Undescribed means a built-in flag was given but the program never
	// registered a Description. Register before calling ExecuteDefault.
	Undescribed
	// None means no built-in flag was given and the caller should continue
	// with its own handling.
	None
)

func (s Status) String() string {
	switch s {
	case Executed:
		return "executed"
	case Undescribed:
		return "undescribed"
	case None:
		return "none"
	default:
		return "unknown"
	}
}
