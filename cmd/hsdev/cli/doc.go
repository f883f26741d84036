// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework hsdev's command tree is built on.
//
// A [Command] has a name, help text, lazily constructed pflag flags, and
// either a Run function or nested Subcommands. [Command.Execute] parses
// flags, dispatches by the first positional argument, and suggests the
// closest command or flag name on a typo (Levenshtein distance up to 3).
//
// Flags are declared as tagged struct fields and bound with
// [FlagsFromParams]:
//
//	type runParams struct {
//	    Release bool `flag:"release,r" desc:"build in release mode"`
//	}
//
// Errors returned from Run reach main. [ExitError] carries an exit code
// for commands that already printed their own diagnosis; [ToolError]
// categorizes failures. Run receives a logger from [NewCommandLogger]
// scoped with the command path. User-facing progress text goes through
// a [Printer].
package cli
