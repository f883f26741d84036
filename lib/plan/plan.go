// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"
	"path"
	"strings"

	"github.com/harborshield/hsdev/lib/invoke"
	"github.com/harborshield/hsdev/lib/sshconfig"
)

// Plan is everything one subcommand will do, in order.
type Plan struct {
	// Command is the subcommand name.
	Command string `json:"command"`

	// Intro lines are printed before the first step.
	Intro []string `json:"intro,omitempty"`

	// Steps run strictly in order.
	Steps []Step `json:"steps"`

	// Outro lines are printed after every step succeeded. Purely
	// informational.
	Outro []string `json:"outro,omitempty"`
}

// Step is either one external invocation or the SSH config mutation.
type Step struct {
	// Heading, when set, is printed as a section header before the step.
	Heading string `json:"heading,omitempty"`

	// Invocation and Mode describe the child process. Unset when Remote
	// is set.
	Invocation invoke.Invocation `json:"argv,omitzero"`
	Mode       invoke.Mode       `json:"mode"`

	// BestEffort steps run and their outcome (including launch
	// failures) is discarded.
	BestEffort bool `json:"best_effort,omitempty"`

	// Remote, when set, makes this step ensure the block in the user's
	// SSH config instead of running a process.
	Remote *sshconfig.Block `json:"ssh_config,omitempty"`
}

// Invocations returns the invocations of all process steps, in order.
func (p Plan) Invocations() []invoke.Invocation {
	var invocations []invoke.Invocation
	for _, step := range p.Steps {
		if step.Remote == nil {
			invocations = append(invocations, step.Invocation)
		}
	}
	return invocations
}

func captured(invocation invoke.Invocation) Step {
	return Step{Invocation: invocation, Mode: invoke.Captured}
}

func interactive(invocation invoke.Invocation) Step {
	return Step{Invocation: invocation, Mode: invoke.Interactive}
}

func bestEffort(invocation invoke.Invocation) Step {
	return Step{Invocation: invocation, Mode: invoke.Silent, BestEffort: true}
}

func (s Step) withHeading(heading string) Step {
	s.Heading = heading
	return s
}

// Build maps a subcommand and its options to a plan. It is pure: no
// process is started and no file is touched.
func Build(subcommand Subcommand, settings Settings) (Plan, error) {
	var result Plan
	switch command := subcommand.(type) {
	case Dev:
		result = buildDev(command, settings)
	case Shell:
		result = buildShell(settings)
	case Run:
		result = buildRun(command, settings)
	case Test:
		result = buildTest(command, settings)
	case Check:
		result = buildCheck(command, settings)
	case Release:
		result = buildRelease(command, settings)
	case Stop:
		result = buildStop(settings)
	case Restart:
		result = buildRestart(settings)
	case Clean:
		result = buildClean(command, settings)
	case Migrate:
		result = buildMigrate(settings)
	case SQLxPrepare:
		result = buildSQLxPrepare(settings)
	case SetupZed:
		result = buildSetupZed(settings)
	default:
		return Plan{}, fmt.Errorf("plan: unknown subcommand %T", subcommand)
	}
	result.Command = subcommand.Name()
	return result, nil
}

func buildDev(options Dev, settings Settings) Plan {
	args := settings.composeArgs()
	if options.Test {
		args = append(args, "--profile", "test")
	}
	args = append(args, "up")
	if options.Build {
		args = append(args, "--build")
	}
	// Always detached: "hsdev shell" is the way in.
	args = append(args, "-d")

	return Plan{
		Intro: []string{"Starting development environment..."},
		Steps: []Step{captured(invoke.New(settings.ContainerTool, args...))},
		Outro: []string{
			"Dev container started!",
			"  - Open a shell:  " + Program + " shell",
			"  - Build and run: " + Program + " run",
			"  - Stop:          " + Program + " stop",
		},
	}
}

func buildShell(settings Settings) Plan {
	return Plan{
		Intro: []string{"Opening shell in dev container..."},
		Steps: []Step{interactive(invoke.New(settings.ContainerTool,
			"exec", "-it", settings.Container, settings.Shell))},
	}
}

// RunCommand returns the shell command line "run" executes inside the
// container for the given flags. Exactly one of four forms is chosen.
func RunCommand(options Run, settings Settings) string {
	profile, buildArgs := "debug", "build"
	if options.Release {
		profile, buildArgs = "release", "build --release"
	}
	launch := fmt.Sprintf("./target/%s/%s --data-dir %s --debug", profile, settings.Binary, settings.DataDir)

	if options.Watch {
		return fmt.Sprintf("%s watch -x '%s' -s '%s'", settings.BuildTool, buildArgs, launch)
	}
	return fmt.Sprintf("%s %s && %s", settings.BuildTool, buildArgs, launch)
}

func buildRun(options Run, settings Settings) Plan {
	intro := "Building and running " + settings.Binary + "..."
	if options.Watch {
		intro = "Starting " + settings.Binary + " with auto-reload..."
	}
	return Plan{
		Intro: []string{intro},
		Steps: []Step{interactive(invoke.New(settings.ContainerTool,
			"exec", "-it", settings.Container, settings.Shell, "-c", RunCommand(options, settings)))},
	}
}

func buildTest(options Test, settings Settings) Plan {
	args := []string{"test"}
	var intro string
	// Unit is checked first: when both flags are set, unit wins.
	switch {
	case options.Unit:
		args = append(args, "--lib")
		intro = "Running unit tests..."
	case options.Ignored:
		args = append(args, "--", "--ignored")
		intro = "Running integration tests..."
	default:
		intro = "Running all tests..."
	}
	return Plan{
		Intro: []string{intro},
		Steps: []Step{captured(invoke.New(settings.BuildTool, args...))},
	}
}

func buildCheck(options Check, settings Settings) Plan {
	format := []string{"fmt", "--check"}
	if options.Fix {
		format = []string{"fmt"}
	}

	clippy := []string{"clippy", "--all-targets", "--all-features"}
	if options.Fix {
		clippy = append(clippy, "--fix", "--allow-dirty")
	}
	clippy = append(clippy, "--", "-D", "warnings")

	return Plan{
		Intro: []string{"Checking code quality..."},
		Steps: []Step{
			captured(invoke.New(settings.BuildTool, format...)).withHeading("Checking formatting..."),
			captured(invoke.New(settings.BuildTool, clippy...)).withHeading("Running clippy..."),
			captured(invoke.New(settings.BuildTool, "test")).withHeading("Running tests..."),
		},
		Outro: []string{"All checks passed!"},
	}
}

func buildRelease(options Release, settings Settings) Plan {
	if !options.Linux {
		return Plan{
			Intro: []string{"Building release binary..."},
			Steps: []Step{captured(invoke.New(settings.BuildTool, "build", "--release"))},
			Outro: []string{"Binary at: " + path.Join("target", "release", settings.Binary)},
		}
	}
	return Plan{
		Intro: []string{
			"Building for Linux (" + targetArch(settings.LinuxTarget) + ")...",
			"Note: Requires `rustup target add " + settings.LinuxTarget + "`",
		},
		Steps: []Step{captured(invoke.New(settings.BuildTool,
			"build", "--release", "--target", settings.LinuxTarget))},
		Outro: []string{"Binary at: " + path.Join("target", settings.LinuxTarget, "release", settings.Binary)},
	}
}

// targetArch returns the architecture component of a target triple.
func targetArch(triple string) string {
	arch, _, _ := strings.Cut(triple, "-")
	return arch
}

func buildStop(settings Settings) Plan {
	return Plan{
		Intro: []string{"Stopping dev containers..."},
		Steps: []Step{captured(invoke.New(settings.ContainerTool, settings.composeArgs("down")...))},
	}
}

func buildRestart(settings Settings) Plan {
	return Plan{
		Intro: []string{"Restarting dev container..."},
		Steps: []Step{
			bestEffort(invoke.New(settings.ContainerTool, settings.composeArgs("down")...)).
				withHeading("Stopping..."),
			captured(invoke.New(settings.ContainerTool, settings.composeArgs("up", "--build", "-d")...)).
				withHeading("Rebuilding and starting..."),
		},
		Outro: []string{
			"Dev container restarted!",
			"Reconnect in Zed: Cmd+Shift+P -> 'Connect to Remote Server via SSH' -> " + settings.Remote.Alias,
		},
	}
}

func buildClean(options Clean, settings Settings) Plan {
	down := settings.composeArgs("down")
	if options.Volumes {
		down = append(down, "-v")
	}
	remove := append([]string{"rm", "-f"}, settings.removableContainers()...)

	return Plan{
		Intro: []string{"Cleaning up Docker resources..."},
		Steps: []Step{
			captured(invoke.New(settings.ContainerTool, down...)),
			// Leftover containers from runs outside compose; they may not exist.
			bestEffort(invoke.New(settings.ContainerTool, remove...)),
		},
		Outro: []string{"Cleanup complete."},
	}
}

func buildMigrate(settings Settings) Plan {
	return Plan{
		Intro: []string{"Running database migrations..."},
		Steps: []Step{captured(invoke.New(settings.BuildTool, "sqlx", "migrate", "run"))},
	}
}

func buildSQLxPrepare(settings Settings) Plan {
	return Plan{
		Intro: []string{"Generating SQLx query cache..."},
		Steps: []Step{captured(invoke.New(settings.BuildTool, "sqlx", "prepare"))},
		Outro: []string{"SQLx cache generated in .sqlx/"},
	}
}

func buildSetupZed(settings Settings) Plan {
	block := settings.Remote.Block()
	return Plan{
		Intro: []string{"Setting up SSH config for Zed remote development..."},
		Steps: []Step{{Remote: &block}},
		Outro: []string{
			"Setup complete! To connect with Zed:",
			"  1. Start the dev container:  " + Program + " dev --build",
			"  2. In Zed: Cmd+Shift+P -> 'Connect to Remote Server via SSH'",
			"  3. Enter: " + settings.Remote.Alias,
			"  4. Password: " + settings.RemotePassword,
			"  5. Open folder: " + settings.RemoteWorkspace,
			"",
			"Rust-analyzer will use the container's Linux toolchain.",
		},
	}
}
