// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparser

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type catalogOption struct {
	Long  string `yaml:"long"`
	Short string `yaml:"short,omitempty"`
	Doc   string `yaml:"doc,omitempty"`
}

type catalogSubcommand struct {
	Name string `yaml:"name"`
	Doc  string `yaml:"doc,omitempty"`
}

type catalogEntry struct {
	Name        string              `yaml:"name"`
	Overview    string              `yaml:"overview,omitempty"`
	Options     []catalogOption     `yaml:"options,omitempty"`
	Subcommands []catalogSubcommand `yaml:"subcommands,omitempty"`
}

// WriteYAML writes every registered description to w as a YAML list, in
// registration order. Shell completion generators read this.
func (r *Registry) WriteYAML(w io.Writer) error {
	descs := r.Descriptions()
	entries := make([]catalogEntry, 0, len(descs))
	for _, d := range descs {
		e := catalogEntry{Name: d.Name, Overview: d.Overview}
		for _, o := range d.Options {
			co := catalogOption{Long: o.LongName, Doc: o.Documentation}
			if o.ShortName != 0 {
				co.Short = string(o.ShortName)
			}
			e.Options = append(e.Options, co)
		}
		for _, s := range d.Subcommands {
			e.Subcommands = append(e.Subcommands, catalogSubcommand{Name: s.Name, Doc: s.Documentation})
		}
		entries = append(entries, e)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode descriptions: %w", err)
	}
	return enc.Close()
}
