// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/harborshield/hsdev/cmd/hsdev/cli"
	"github.com/harborshield/hsdev/lib/config"
	"github.com/harborshield/hsdev/lib/invoke"
	"github.com/harborshield/hsdev/lib/plan"
	"github.com/harborshield/hsdev/lib/project"
	"github.com/harborshield/hsdev/lib/sshconfig"
)

// System is everything the command tree touches outside the process:
// standard streams, the environment, and project-root discovery.
type System struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// LookupEnv is normally os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// ProjectRoot resolves the directory every child runs in.
	ProjectRoot func() (string, error)
}

// DefaultSystem returns the real process streams, environment, and
// [project.Root].
func DefaultSystem() System {
	return System{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		LookupEnv:   os.LookupEnv,
		ProjectRoot: project.Root,
	}
}

// execParams are the flags shared by every command that dispatches a
// plan. Embedded into each command's params struct.
type execParams struct {
	cli.JSONOutput
	DryRun     bool   `flag:"dry-run" desc:"print the commands that would run without running them"`
	ConfigPath string `flag:"config" desc:"configuration file (YAML or JSONC); overrides $HSDEV_CONFIG"`
}

// dispatch builds the plan for subcommand and executes it.
func (s System) dispatch(ctx context.Context, params *execParams, subcommand plan.Subcommand, logger *slog.Logger) error {
	if params.OutputJSON && !params.DryRun {
		return cli.Validation("%s: --json is only supported with --dry-run", subcommand.Name())
	}

	cfg, err := config.Load(params.ConfigPath, s.LookupEnv)
	if err != nil {
		return err
	}

	built, err := plan.Build(subcommand, cfg.Settings())
	if err != nil {
		return err
	}

	if params.DryRun {
		params.Stdout = s.Stdout
		if done, err := params.EmitJSON(built); done {
			if err != nil {
				return cli.Internal("%s: writing plan: %w", subcommand.Name(), err)
			}
			return nil
		}
	}

	runner, err := s.runner(built, params.DryRun, logger)
	if err != nil {
		return err
	}

	logger.Debug("executing plan", "steps", len(built.Steps), "dry_run", params.DryRun)

	return plan.Execute(ctx, built, plan.Environment{
		Runner:   runner,
		Remote:   sshconfig.UserConfig{LookupEnv: s.LookupEnv, DryRun: params.DryRun},
		Reporter: cli.NewPrinter(s.Stdout),
		Logger:   logger,
	})
}

// runner returns a Recorder for dry runs and an Executor rooted at the
// project root otherwise. Plans without processes (setup-zed) need no
// project root.
func (s System) runner(built plan.Plan, dryRun bool, logger *slog.Logger) (invoke.Runner, error) {
	if dryRun {
		return &invoke.Recorder{Out: s.Stdout}, nil
	}
	if len(built.Invocations()) == 0 {
		return nil, nil
	}

	root, err := s.ProjectRoot()
	if err != nil {
		return nil, cli.NotFound("%s: %w", built.Command, err)
	}
	logger.Debug("resolved project root", "root", root)

	return &invoke.Executor{
		Dir:    root,
		Stdin:  s.Stdin,
		Stdout: s.Stdout,
		Stderr: s.Stderr,
		Logger: logger,
	}, nil
}
