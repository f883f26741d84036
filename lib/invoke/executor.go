// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package invoke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"golang.org/x/term"
)

// Executor runs invocations as real child processes rooted at Dir.
type Executor struct {
	// Dir is the working directory of every child. Required.
	Dir string

	// Stdin, Stdout, and Stderr are the parent streams handed to
	// children according to their Mode. When these are *os.File values
	// the child inherits the file descriptors directly, which is what
	// makes Interactive mode work with a TTY.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Logger receives one debug record per invocation. Nil disables
	// logging.
	Logger *slog.Logger
}

// Run starts the invocation, waits for it to exit, and applies the
// mode's error policy. See [Mode] for the per-mode stream wiring.
func (e *Executor) Run(ctx context.Context, invocation Invocation, mode Mode) (Result, error) {
	if e.Dir == "" {
		return Result{}, &LaunchError{
			Command: invocation.String(),
			Err:     errors.New("executor has no working directory"),
		}
	}

	command := exec.CommandContext(ctx, invocation.Tool(), invocation.Args()...)
	command.Dir = e.Dir

	// Streams left nil are connected to the null device by os/exec.
	switch mode {
	case Captured:
		command.Stdin = e.Stdin
		command.Stdout = e.Stdout
		command.Stderr = e.Stderr
	case Interactive:
		command.Stdin = e.Stdin
		command.Stdout = e.Stdout
		command.Stderr = e.Stderr
		e.warnWithoutTerminal(invocation)
	case Silent:
	default:
		return Result{}, fmt.Errorf("invoke: unknown mode %v for %s", mode, invocation)
	}

	e.logger().Debug("running command",
		"tool", invocation.Tool(),
		"args", invocation.Args(),
		"mode", mode.String(),
		"dir", e.Dir,
	)

	err := command.Run()
	if err == nil {
		return Result{ExitCode: 0}, nil
	}

	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		return settle(invocation, mode, exitError.ExitCode(), exitError.ProcessState.String())
	}
	return Result{}, &LaunchError{Command: invocation.String(), Err: err}
}

// warnWithoutTerminal logs when an interactive child is about to get a
// stdin that is not a terminal. docker exec -it refuses to run in that
// case, and the warning makes the resulting failure easier to place.
func (e *Executor) warnWithoutTerminal(invocation Invocation) {
	file, ok := e.Stdin.(*os.File)
	if !ok || term.IsTerminal(int(file.Fd())) {
		return
	}
	e.logger().Warn("stdin is not a terminal; interactive command may fail",
		"command", invocation.String())
}

func (e *Executor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
