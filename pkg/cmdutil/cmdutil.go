// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// NewStdCmd returns a command wired to the process's standard streams.
func NewStdCmd(ctx context.Context, name string, arg ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Output runs name and returns its standard output. Standard error is passed
// through to the process's.
func Output(ctx context.Context, name string, arg ...string) (string, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w", CommandLine(name, arg...), err)
	}
	return stdout.String(), nil
}

// CommandLine renders name and its arguments the way a shell user would type
// them, quoting arguments that need it.
func CommandLine(name string, arg ...string) string {
	parts := make([]string, 0, len(arg)+1)
	for _, s := range append([]string{name}, arg...) {
		if s == "" || strings.ContainsAny(s, " \t\n\"'\\$") {
			s = strconv.Quote(s)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
