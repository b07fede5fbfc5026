// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/forge/pkg/argparser"
	"github.com/yeetrun/forge/pkg/build"
	"github.com/yeetrun/forge/pkg/cli"
	"github.com/yeetrun/forge/pkg/config"
)

type recordingRunner struct {
	calls [][]string
}

func (r *recordingRunner) Run(_ context.Context, name string, arg ...string) error {
	r.calls = append(r.calls, append([]string{name}, arg...))
	return nil
}

func (r *recordingRunner) Output(context.Context, string, ...string) (string, error) {
	return "cmake version 3.28.1\n", nil
}

func runForge(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	return runForgeWith(t, &recordingRunner{}, args...)
}

func runForgeWith(t *testing.T, runner build.Runner, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	r := argparser.NewRegistry()
	r.SetOutput(&stdout)
	code := newForge(runner).program().Run(context.Background(), r, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestForgeHelp(t *testing.T) {
	for _, flag := range []string{"-h", "--help", "-vh"} {
		code, out, errOut := runForge(t, "forge", flag)
		if code != cli.ExitOK {
			t.Fatalf("%s: code = %d, stderr = %q", flag, code, errOut)
		}
		want := "OVERVIEW: Builds the toolchain from its source or runs one of the phases of compilation.\nUSAGE: forge"
		if out != want {
			t.Fatalf("%s: stdout = %q, want %q", flag, out, want)
		}
	}
}

func TestForgeRenamedBinary(t *testing.T) {
	code, _, errOut := runForge(t, "forge-dev", "-h")
	if code != cli.ExitFailure {
		t.Fatalf("code = %d, want %d", code, cli.ExitFailure)
	}
	if !strings.Contains(errOut, "not described") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestForgeUsageErrors(t *testing.T) {
	tests := [][]string{
		{"forge"},
		{"forge", "frobnicate"},
		{"forge", "descriptions", "extra"},
		{"forge", "build", "stray"},
	}
	for _, args := range tests {
		if code, _, _ := runForge(t, args...); code != cli.ExitUsage {
			t.Errorf("%q: code = %d, want %d", args, code, cli.ExitUsage)
		}
	}
}

func TestForgeDescriptions(t *testing.T) {
	code, out, errOut := runForge(t, "forge", "descriptions")
	if code != cli.ExitOK {
		t.Fatalf("code = %d, stderr = %q", code, errOut)
	}
	for _, want := range []string{"name: forge", "long: help", "name: build"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
}

func TestForgeBuild(t *testing.T) {
	runner := &recordingRunner{}
	src := t.TempDir()
	cfgPath := filepath.Join(src, "missing.toml")
	code, _, errOut := runForgeWith(t, runner, "forge", "-c", cfgPath, "build", "--source", src, "-j", "4", "--type", "Release")
	if code != cli.ExitOK {
		t.Fatalf("code = %d, stderr = %q", code, errOut)
	}
	dir := filepath.Join(src, "build")
	want := [][]string{
		{"cmake", "-S", src, "-B", dir, "-DCMAKE_BUILD_TYPE=Release"},
		{"cmake", "--build", dir, "-j", "4"},
	}
	if diff := cmp.Diff(want, runner.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestForgeBuildDryRun(t *testing.T) {
	runner := &recordingRunner{}
	code, _, errOut := runForgeWith(t, runner, "forge", "build", "--dry-run", "--source", t.TempDir())
	if code != cli.ExitOK {
		t.Fatalf("code = %d, stderr = %q", code, errOut)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("dry run ran %q", runner.calls)
	}
}

func TestParseBuildFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    build.Options
		wantErr bool
	}{
		{name: "empty", args: nil, want: build.Options{}},
		{
			name: "all",
			args: []string{"-S", "src", "--dir=out", "-G", "Ninja", "--type", "Debug", "-j", "8", "-n"},
			want: build.Options{SourceDir: "src", Dir: "out", Generator: "Ninja", Type: "Debug", Jobs: 8, DryRun: true},
		},
		{name: "negative jobs", args: []string{"-j", "-2"}, wantErr: true},
		{name: "positional", args: []string{"extra"}, wantErr: true},
		{name: "after double dash", args: []string{"--", "x"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBuildFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseBuildFlags(%q) = %+v, want error", tt.args, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseBuildFlags(%q): %v", tt.args, err)
			}
			if got != tt.want {
				t.Fatalf("parseBuildFlags(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseGlobalFlags(t *testing.T) {
	flags, rest, err := parseGlobalFlags([]string{"-v", "build", "--config", "x.toml", "--dir", "out"})
	if err != nil {
		t.Fatal(err)
	}
	if !flags.Verbose || flags.Config != "x.toml" {
		t.Fatalf("flags = %+v", flags)
	}
	if want := []string{"build", "--dir", "out"}; !reflect.DeepEqual(rest, want) {
		t.Fatalf("rest = %q, want %q", rest, want)
	}
}

func TestApplyGlobalFlagsSetsConfigPath(t *testing.T) {
	f := newForge(nil)
	if _, err := f.applyGlobalFlags([]string{"-c", "other.toml"}); err != nil {
		t.Fatal(err)
	}
	if f.configPath != "other.toml" {
		t.Fatalf("configPath = %q, want other.toml", f.configPath)
	}

	fresh := newForge(nil)
	if _, err := fresh.applyGlobalFlags(nil); err != nil {
		t.Fatal(err)
	}
	if fresh.configPath != config.DefaultFile {
		t.Fatalf("configPath = %q, want %q", fresh.configPath, config.DefaultFile)
	}
}

func TestForgeConfigFlagReachesBuild(t *testing.T) {
	src := t.TempDir()
	cfgPath := filepath.Join(src, "forge.toml")
	if err := os.WriteFile(cfgPath, []byte("[build]\ndir = \"out\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runner := &recordingRunner{}
	code, _, errOut := runForgeWith(t, runner, "forge", "--config", cfgPath, "build", "-S", src)
	if code != cli.ExitOK {
		t.Fatalf("code = %d, stderr = %q", code, errOut)
	}
	want := []string{"cmake", "--build", filepath.Join(src, "out")}
	if len(runner.calls) != 2 || !reflect.DeepEqual(runner.calls[1], want) {
		t.Fatalf("calls = %q, want build step %q", runner.calls, want)
	}
}

func TestForgeHelpWithBadGlobalFlag(t *testing.T) {
	code, out, errOut := runForge(t, "forge", "--verbose=maybe", "-h")
	if code != cli.ExitOK {
		t.Fatalf("code = %d, stderr = %q", code, errOut)
	}
	if !strings.HasPrefix(out, "OVERVIEW: ") {
		t.Fatalf("stdout = %q", out)
	}
}

func TestProgramArgs(t *testing.T) {
	tests := []struct {
		in, want []string
	}{
		{nil, []string{"forge"}},
		{[]string{"/usr/local/bin/forge", "-h"}, []string{"forge", "-h"}},
		{[]string{"forge"}, []string{"forge"}},
	}
	for _, tt := range tests {
		if got := programArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("programArgs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
