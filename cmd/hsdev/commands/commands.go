// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the hsdev command tree.
//
// Every workflow command converts its flags into a [plan.Subcommand],
// builds the plan from the loaded configuration, and executes it in the
// project root. --dry-run prints the commands instead of running them;
// adding --json prints the whole plan as JSON.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/harborshield/hsdev/cmd/hsdev/cli"
	"github.com/harborshield/hsdev/lib/version"
)

// Root builds the command tree wired to the real process environment.
func Root() *cli.Command {
	return NewRoot(DefaultSystem())
}

// NewRoot builds the command tree against system.
func NewRoot(system System) *cli.Command {
	return &cli.Command{
		Name: "hsdev",
		Description: `hsdev: HarborShield development tasks.

Drives the Docker dev container and the cargo toolchain from anywhere
in the checkout. Every command runs in the project root.`,
		Subcommands: []*cli.Command{
			devCommand(system),
			shellCommand(system),
			runCommand(system),
			testCommand(system),
			checkCommand(system),
			buildCommand(system),
			stopCommand(system),
			restartCommand(system),
			cleanCommand(system),
			migrateCommand(system),
			sqlxPrepareCommand(system),
			setupZedCommand(system),
			doctorCommand(system),
			versionCommand(system),
		},
	}
}

type versionParams struct {
	cli.JSONOutput
}

// versionInfo is the --json form of the version command.
type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Go      string `json:"go"`
}

func versionCommand(system System) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if err := cli.NoArgs("version", args); err != nil {
				return err
			}

			params.Stdout = system.Stdout
			info := versionInfo{Version: version.Short(), Commit: version.Commit(), Go: runtime.Version()}
			if done, err := params.EmitJSON(info); done {
				if err != nil {
					return cli.Internal("version: writing output: %w", err)
				}
				return nil
			}

			if _, err := fmt.Fprintf(system.Stdout, "hsdev %s\n", version.Full()); err != nil {
				return cli.Internal("version: writing output: %w", err)
			}
			return nil
		},
	}
}
