// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package invoke

import "fmt"

// LaunchError reports a child process that could not be started: the
// binary is missing, not executable, or the working directory is
// unusable. Returned in every [Mode].
type LaunchError struct {
	// Command is the literal command line that failed to start.
	Command string

	// Err is the underlying error from the operating system.
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to run: %s: %v", e.Command, e.Err)
}

// Unwrap returns the underlying error so callers can match
// exec.ErrNotFound or fs.ErrPermission with errors.Is.
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ExecutionError reports a child that ran in [Captured] mode and exited
// with a non-zero status.
type ExecutionError struct {
	// Command is the literal command line.
	Command string

	// ExitCode is the child's exit code, or -1 for signal termination.
	ExitCode int

	// Status is the human-readable status ("exit status 101",
	// "signal: killed").
	Status string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: command failed with %s", e.Command, e.Status)
}
