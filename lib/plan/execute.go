// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"context"
	"errors"
	"log/slog"

	"github.com/harborshield/hsdev/lib/invoke"
	"github.com/harborshield/hsdev/lib/sshconfig"
)

// Reporter receives the user-facing progress text of a plan.
type Reporter interface {
	// Info prints one line.
	Info(text string)
	// Heading prints a section header for a step.
	Heading(text string)
	// Done prints the closing summary after all steps succeeded.
	Done(lines []string)
}

// RemoteConfigurer applies a [sshconfig.Block] to the user's SSH config.
// Implemented by [sshconfig.UserConfig].
type RemoteConfigurer interface {
	Ensure(block sshconfig.Block) (sshconfig.Outcome, error)
}

// Environment is what [Execute] needs to carry out a plan.
type Environment struct {
	Runner   invoke.Runner
	Remote   RemoteConfigurer
	Reporter Reporter

	// Logger may be nil.
	Logger *slog.Logger
}

// Execute runs the plan's steps in order. The first failing step that
// is not best-effort stops the plan and its error is returned as is;
// later steps never run and earlier steps are not undone. Best-effort
// steps always run and their results are discarded.
func Execute(ctx context.Context, p Plan, environment Environment) error {
	reporter := environment.Reporter
	if reporter == nil {
		reporter = discardReporter{}
	}
	logger := environment.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	for _, line := range p.Intro {
		reporter.Info(line)
	}

	for _, step := range p.Steps {
		if step.Heading != "" {
			reporter.Heading(step.Heading)
		}

		if step.Remote != nil {
			if err := ensureRemote(environment.Remote, *step.Remote, reporter); err != nil {
				return err
			}
			continue
		}

		if environment.Runner == nil {
			return errors.New("plan: no runner configured")
		}

		if step.BestEffort {
			runBestEffort(ctx, environment.Runner, step, logger)
			continue
		}

		result, err := environment.Runner.Run(ctx, step.Invocation, step.Mode)
		if err != nil {
			return err
		}
		if !result.Success() {
			// Only reachable for Interactive and Silent steps: ending a
			// shell session with a non-zero status is not a failure.
			logger.Debug("command exited non-zero",
				"command", step.Invocation.String(),
				"exit_code", result.ExitCode,
				"mode", step.Mode.String(),
			)
		}
	}

	if len(p.Outro) > 0 {
		reporter.Done(p.Outro)
	}
	return nil
}

func runBestEffort(ctx context.Context, runner invoke.Runner, step Step, logger *slog.Logger) {
	result, err := runner.Run(ctx, step.Invocation, step.Mode)
	switch {
	case err != nil:
		logger.Debug("best-effort command failed", "command", step.Invocation.String(), "error", err)
	case !result.Success():
		logger.Debug("best-effort command exited non-zero",
			"command", step.Invocation.String(), "exit_code", result.ExitCode)
	}
}

func ensureRemote(remote RemoteConfigurer, block sshconfig.Block, reporter Reporter) error {
	if remote == nil {
		return errors.New("plan: no SSH config target configured")
	}
	outcome, err := remote.Ensure(block)
	if err != nil {
		return err
	}
	switch outcome {
	case sshconfig.AlreadyPresent:
		reporter.Info("SSH config entry already exists in ~/.ssh/config")
	case sshconfig.Pending:
		reporter.Info("SSH config entry would be added to ~/.ssh/config")
	default:
		reporter.Info("Added SSH config entry to ~/.ssh/config")
	}
	return nil
}

type discardReporter struct{}

func (discardReporter) Info(string)    {}
func (discardReporter) Heading(string) {}
func (discardReporter) Done([]string)  {}
