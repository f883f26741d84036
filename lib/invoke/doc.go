// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

// Package invoke runs external tools (docker, cargo) as child processes
// on behalf of hsdev subcommands.
//
// An [Invocation] is a tool name plus an ordered argument vector. A
// [Runner] executes an Invocation in one of three [Mode]s, which differ
// only in how the child's standard streams are wired and whether a
// non-zero exit status becomes an error:
//
//   - [Captured]: stdin, stdout, and stderr are inherited, so prompts
//     from the tool still reach the user. A non-zero exit returns an
//     [*ExecutionError] that aborts the surrounding command sequence.
//   - [Interactive]: the same stream wiring, for shells and
//     TTY-dependent tools. The exit status is reported in [Result] but
//     is never an error.
//   - [Silent]: all three streams are the null device. The exit status
//     is never an error. Used for best-effort cleanup.
//
// A child that cannot be started at all (binary not found, permission
// denied) is a [*LaunchError] in every mode.
//
// [Executor] is the real implementation. Every child it starts runs
// with its working directory set to [Executor.Dir], which callers set
// to the project root so behavior does not depend on the invoking
// shell's current directory. [Recorder] implements the same contract
// without starting processes, for --dry-run and tests.
//
// There is no timeout. A hung child hangs the caller.
package invoke
