// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/harborshield/hsdev/cmd/hsdev/cli"
	"github.com/harborshield/hsdev/lib/plan"
)

type devParams struct {
	execParams
	Build bool `flag:"build,b" desc:"rebuild the Docker image"`
	Test  bool `flag:"test,t" desc:"also start the test containers (compose profile \"test\")"`
}

func devCommand(system System) *cli.Command {
	var params devParams

	return &cli.Command{
		Name:    "dev",
		Summary: "Start the dev container",
		Description: `Start the development container stack in the background with
docker compose. Use "hsdev shell" to get a shell inside it.`,
		Usage: "hsdev dev [flags]",
		Examples: []cli.Example{
			{Description: "First start, or after changing the Dockerfile", Command: "hsdev dev --build"},
			{Description: "Start with the test containers", Command: "hsdev dev -t"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("dev", args); err != nil {
				return err
			}
			return system.dispatch(ctx, &params.execParams, plan.Dev{Build: params.Build, Test: params.Test}, logger)
		},
	}
}

type shellParams struct {
	execParams
}

func shellCommand(system System) *cli.Command {
	var params shellParams

	return &cli.Command{
		Name:    "shell",
		Summary: "Open a shell in the dev container",
		Description: `Attach an interactive shell to the running dev container. The shell's
exit status is not treated as a failure.`,
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("shell", args); err != nil {
				return err
			}
			return system.dispatch(ctx, &params.execParams, plan.Shell{}, logger)
		},
	}
}

type runParams struct {
	execParams
	Release bool `flag:"release,r" desc:"build in release mode"`
	Watch   bool `flag:"watch,w" desc:"use cargo-watch to rebuild and restart on changes"`
}

func runCommand(system System) *cli.Command {
	var params runParams

	return &cli.Command{
		Name:    "run",
		Summary: "Build and run the application inside the dev container",
		Description: `Build the application inside the dev container and run it with
--data-dir /data --debug. With --watch, cargo-watch rebuilds and
restarts it whenever the sources change.`,
		Examples: []cli.Example{
			{Description: "Edit-compile-run loop", Command: "hsdev run --watch"},
			{Description: "Show the command without running it", Command: "hsdev run -rw --dry-run"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("run", args); err != nil {
				return err
			}
			return system.dispatch(ctx, &params.execParams, plan.Run{Release: params.Release, Watch: params.Watch}, logger)
		},
	}
}

type stopParams struct {
	execParams
}

func stopCommand(system System) *cli.Command {
	var params stopParams

	return &cli.Command{
		Name:    "stop",
		Summary: "Stop all dev containers",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("stop", args); err != nil {
				return err
			}
			return system.dispatch(ctx, &params.execParams, plan.Stop{}, logger)
		},
	}
}

type restartParams struct {
	execParams
}

func restartCommand(system System) *cli.Command {
	var params restartParams

	return &cli.Command{
		Name:    "restart",
		Summary: "Restart the dev container (rebuilds the image)",
		Description: `Tear the stack down (ignoring failures, e.g. when nothing is running),
then rebuild the image and start it again.`,
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("restart", args); err != nil {
				return err
			}
			return system.dispatch(ctx, &params.execParams, plan.Restart{}, logger)
		},
	}
}

type cleanParams struct {
	execParams
	Volumes bool `flag:"volumes,v" desc:"also remove volumes"`
}

func cleanCommand(system System) *cli.Command {
	var params cleanParams

	return &cli.Command{
		Name:    "clean",
		Summary: "Clean up Docker resources",
		Description: `Take the compose stack down, then force-remove the dev and test
containers in case they were started outside compose. The removal is
best-effort: containers that do not exist are not an error.`,
		Examples: []cli.Example{
			{Description: "Start over with empty databases", Command: "hsdev clean --volumes"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("clean", args); err != nil {
				return err
			}
			return system.dispatch(ctx, &params.execParams, plan.Clean{Volumes: params.Volumes}, logger)
		},
	}
}
