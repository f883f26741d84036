// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/harborshield/hsdev/cmd/hsdev/cli"
	"github.com/harborshield/hsdev/lib/plan"
)

type testParams struct {
	execParams
	Ignored bool `flag:"ignored,i" desc:"run ignored (integration) tests"`
	Unit    bool `flag:"unit,u" desc:"run only unit tests; takes precedence over --ignored"`
}

func testCommand(system System) *cli.Command {
	var params testParams

	return &cli.Command{
		Name:    "test",
		Summary: "Run the test suite",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("test", args); err != nil {
				return err
			}
			return system.dispatch(ctx, &params.execParams, plan.Test{Ignored: params.Ignored, Unit: params.Unit}, logger)
		},
	}
}

type checkParams struct {
	execParams
	Fix bool `flag:"fix,f" desc:"auto-fix issues where possible"`
}

func checkCommand(system System) *cli.Command {
	var params checkParams

	return &cli.Command{
		Name:    "check",
		Summary: "Check code quality (fmt, clippy, test)",
		Description: `Run the formatter check, clippy with warnings denied, and the test
suite, in that order. The first failing step stops the check.`,
		Examples: []cli.Example{
			{Description: "Before pushing", Command: "hsdev check"},
			{Description: "Apply formatter and clippy fixes first", Command: "hsdev check --fix"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("check", args); err != nil {
				return err
			}
			return system.dispatch(ctx, &params.execParams, plan.Check{Fix: params.Fix}, logger)
		},
	}
}

type buildParams struct {
	execParams
	Linux bool `flag:"linux,l" desc:"cross-compile for Linux (x86_64)"`
}

func buildCommand(system System) *cli.Command {
	var params buildParams

	return &cli.Command{
		Name:    "build",
		Summary: "Build the release binary",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("build", args); err != nil {
				return err
			}
			return system.dispatch(ctx, &params.execParams, plan.Release{Linux: params.Linux}, logger)
		},
	}
}

type migrateParams struct {
	execParams
}

func migrateCommand(system System) *cli.Command {
	var params migrateParams

	return &cli.Command{
		Name:    "migrate",
		Summary: "Run database migrations",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("migrate", args); err != nil {
				return err
			}
			return system.dispatch(ctx, &params.execParams, plan.Migrate{}, logger)
		},
	}
}

type sqlxPrepareParams struct {
	execParams
}

func sqlxPrepareCommand(system System) *cli.Command {
	var params sqlxPrepareParams

	return &cli.Command{
		Name:    "sqlx-prepare",
		Summary: "Generate the SQL query cache for offline builds",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("sqlx-prepare", args); err != nil {
				return err
			}
			return system.dispatch(ctx, &params.execParams, plan.SQLxPrepare{}, logger)
		},
	}
}
