// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package invoke

import (
	"context"
	"fmt"
	"io"
)

// Call is one invocation observed by a [Recorder].
type Call struct {
	Invocation Invocation `json:"argv"`
	Mode       Mode       `json:"mode"`
}

// Recorder is a [Runner] that records invocations instead of starting
// processes. hsdev uses it for --dry-run; tests use it to assert which
// invocations a plan attempted and in what order.
//
// Exit codes and launch failures can be scripted per command line so
// that failure paths run through the same mode policy as [Executor].
type Recorder struct {
	// Out, when non-nil, receives a "+ <command line>" line per call,
	// matching the shell's xtrace format.
	Out io.Writer

	// ExitCodes maps a literal command line (Invocation.String) to the
	// exit code the recorder reports. Unlisted commands exit 0.
	ExitCodes map[string]int

	// LaunchErrors maps a literal command line to a launch failure.
	LaunchErrors map[string]error

	calls []Call
}

// Run records the call and returns the scripted outcome.
func (r *Recorder) Run(_ context.Context, invocation Invocation, mode Mode) (Result, error) {
	r.calls = append(r.calls, Call{Invocation: invocation, Mode: mode})
	if r.Out != nil {
		fmt.Fprintf(r.Out, "+ %s\n", invocation)
	}

	key := invocation.String()
	if err, ok := r.LaunchErrors[key]; ok {
		return Result{}, &LaunchError{Command: key, Err: err}
	}
	return settle(invocation, mode, r.ExitCodes[key], "")
}

// Calls returns the recorded calls in order.
func (r *Recorder) Calls() []Call {
	return append([]Call(nil), r.calls...)
}

// Commands returns the literal command lines of the recorded calls.
func (r *Recorder) Commands() []string {
	commands := make([]string, len(r.calls))
	for index, call := range r.calls {
		commands[index] = call.Invocation.String()
	}
	return commands
}
