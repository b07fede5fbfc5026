// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparser

import (
	"io"
	"os"
	"sync"

	"github.com/yeetrun/forge/pkg/logging"
	"github.com/yeetrun/forge/pkg/owned"
)

// Registry is an append-only catalog of program descriptions.
type Registry struct {
	mu    sync.Mutex
	descs *owned.Seq[Description] // nil until the first Register
	out   io.Writer
}

// NewRegistry returns an empty registry writing built-in output to stdout.
func NewRegistry() *Registry {
	return &Registry{out: os.Stdout}
}

// SetOutput sets where built-in behaviors such as help write.
func (r *Registry) SetOutput(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out = w
}

func (r *Registry) output() io.Writer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.out == nil {
		return os.Stdout
	}
	return r.out
}

// Register adds a description of the named program. Registering a name
// twice keeps both entries; Lookup returns the later one.
func (r *Registry) Register(name, overview string, options []Option, subcommands []Subcommand) {
	d := Description{
		Name:        name,
		Overview:    overview,
		Options:     options,
		Subcommands: subcommands,
	}.clone()

	r.mu.Lock()
	if r.descs == nil {
		r.descs = owned.New[Description]()
	}
	r.descs.Move(&d)
	n := r.descs.Len()
	r.mu.Unlock()

	logging.L().Debug().Str("program", name).Int("registered", n).Msg("argparser: described program")
}

// Lookup returns the description registered under name. When the name was
// registered more than once, the last registration wins.
func (r *Registry) Lookup(name string) (Description, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.descs == nil {
		return Description{}, false
	}
	var (
		found Description
		ok    bool
	)
	for _, d := range r.descs.All() {
		if d.Name != name {
			continue
		}
		found, ok = d, true
	}
	if !ok {
		return Description{}, false
	}
	return found.clone(), true
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.descs == nil {
		return 0
	}
	return r.descs.Len()
}

// Descriptions returns copies of every registration in insertion order.
func (r *Registry) Descriptions() []Description {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.descs == nil {
		return nil
	}
	out := make([]Description, 0, r.descs.Len())
	for _, d := range r.descs.All() {
		out = append(out, d.clone())
	}
	return out
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry used by the package-level
// functions. It is created on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds a description to the Default registry.
func Register(name, overview string, options []Option, subcommands []Subcommand) {
	Default().Register(name, overview, options, subcommands)
}

// Lookup finds a description in the Default registry.
func Lookup(name string) (Description, bool) {
	return Default().Lookup(name)
}

// ExecuteDefault runs built-in behavior against the Default registry.
func ExecuteDefault(args []string) Status {
	return Default().ExecuteDefault(args)
}
