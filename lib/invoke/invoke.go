// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package invoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Mode selects how a child process's standard streams are wired and
// whether a non-zero exit status is reported as an error.
type Mode int

const (
	// Captured inherits stdin, stdout, and stderr and treats a non-zero
	// exit as an [*ExecutionError].
	Captured Mode = iota

	// Interactive inherits stdin, stdout, and stderr from the parent
	// terminal. Non-zero exits are returned in [Result] only.
	Interactive

	// Silent discards stdout and stderr. Non-zero exits are returned
	// in [Result] only.
	Silent
)

// String returns the lowercase mode name used in logs and JSON output.
func (m Mode) String() string {
	switch m {
	case Captured:
		return "captured"
	case Interactive:
		return "interactive"
	case Silent:
		return "silent"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler so modes serialize by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Invocation is one external tool call: the tool name and its ordered
// arguments. Construct with [New]; the argument slice is copied so the
// Invocation cannot be mutated through the caller's slice.
type Invocation struct {
	tool string
	args []string
}

// New returns an Invocation of tool with a private copy of args.
func New(tool string, args ...string) Invocation {
	return Invocation{tool: tool, args: slices.Clone(args)}
}

// Tool returns the executable name.
func (i Invocation) Tool() string {
	return i.tool
}

// Args returns a copy of the argument vector, excluding the tool name.
func (i Invocation) Args() []string {
	return slices.Clone(i.args)
}

// Argv returns the full vector: tool name followed by arguments.
func (i Invocation) Argv() []string {
	return append([]string{i.tool}, i.args...)
}

// String returns the literal command line, space-joined. Used in error
// messages and dry-run output. Arguments are not quoted.
func (i Invocation) String() string {
	if len(i.args) == 0 {
		return i.tool
	}
	return i.tool + " " + strings.Join(i.args, " ")
}

// MarshalJSON emits the invocation as its argv array. Shell operators
// such as "&&" are kept literal rather than HTML-escaped; an encoder
// with HTML escaping enabled will still escape them.
func (i Invocation) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(i.Argv()); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buffer.Bytes(), []byte("\n")), nil
}

// Result is the outcome of a child that started and exited.
type Result struct {
	// ExitCode is the child's exit status, or -1 if it was terminated
	// by a signal.
	ExitCode int
}

// Success reports whether the child exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes invocations. Implementations must honor the mode
// semantics documented on [Mode].
type Runner interface {
	Run(ctx context.Context, invocation Invocation, mode Mode) (Result, error)
}

// settle applies the mode's error policy to a child that started and
// exited with exitCode. Shared by [Executor] and [Recorder] so both
// report failures identically.
func settle(invocation Invocation, mode Mode, exitCode int, status string) (Result, error) {
	result := Result{ExitCode: exitCode}
	if exitCode == 0 || mode != Captured {
		return result, nil
	}
	if status == "" {
		status = fmt.Sprintf("exit status %d", exitCode)
	}
	return result, &ExecutionError{
		Command:  invocation.String(),
		ExitCode: exitCode,
		Status:   status,
	}
}
