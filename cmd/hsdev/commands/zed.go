// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/harborshield/hsdev/cmd/hsdev/cli"
	"github.com/harborshield/hsdev/lib/plan"
)

type setupZedParams struct {
	execParams
}

func setupZedCommand(system System) *cli.Command {
	var params setupZedParams

	return &cli.Command{
		Name:    "setup-zed",
		Summary: "Set up SSH config for Zed remote development",
		Description: `Add a "Host harborshield-dev" entry to ~/.ssh/config pointing at the
dev container's SSH port, then print how to connect from Zed.

The entry is appended only if no line of the file already contains
"Host harborshield-dev"; existing content is never modified. Running
the command again is safe.`,
		Examples: []cli.Example{
			{Description: "See whether the entry would be added", Command: "hsdev setup-zed --dry-run"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("setup-zed", args); err != nil {
				return err
			}
			return system.dispatch(ctx, &params.execParams, plan.SetupZed{}, logger)
		},
	}
}
