// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/harborshield/hsdev/cmd/hsdev/cli"
	"github.com/harborshield/hsdev/cmd/hsdev/cli/doctor"
	"github.com/harborshield/hsdev/lib/config"
	"github.com/harborshield/hsdev/lib/project"
	"github.com/harborshield/hsdev/lib/sshconfig"
)

type doctorParams struct {
	cli.JSONOutput
	ConfigPath string `flag:"config" desc:"configuration file (YAML or JSONC); overrides $HSDEV_CONFIG"`
}

func doctorCommand(system System) *cli.Command {
	var params doctorParams

	return &cli.Command{
		Name:    "doctor",
		Summary: "Check that the development environment is usable",
		Description: `Verify the prerequisites of the other commands: the project root can
be found, the configuration loads, the container runtime and build tool
are on PATH, the compose file exists, and HOME is set. Exits 1 when any
check fails. A missing Zed SSH entry is only a warning.`,
		Examples: []cli.Example{
			{Description: "Machine-readable output", Command: "hsdev doctor --json"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.NoArgs("doctor", args); err != nil {
				return err
			}
			return system.runDoctor(&params, logger)
		},
	}
}

func (s System) runDoctor(params *doctorParams, logger *slog.Logger) error {
	var results []doctor.Result

	root, rootErr := s.ProjectRoot()
	if rootErr != nil {
		results = append(results, doctor.FailWithHint("project root", rootErr.Error(),
			fmt.Sprintf("set %s to the HarborShield checkout", project.EnvRoot)))
	} else {
		results = append(results, doctor.Pass("project root", root))
	}

	cfg, configErr := config.Load(params.ConfigPath, s.LookupEnv)
	if configErr != nil {
		results = append(results, doctor.Fail("config", configErr.Error()))
	} else {
		results = append(results, doctor.Pass("config", describeConfig(config.Path(params.ConfigPath, s.LookupEnv))))
		results = append(results, checkTool(cfg.Tools.Container, "install Docker and make sure it is on PATH"))
		results = append(results, checkTool(cfg.Tools.Build, "install Rust with rustup"))
	}

	switch {
	case rootErr != nil || configErr != nil:
		results = append(results, doctor.Skip("compose file", "needs the project root and config"))
	default:
		results = append(results, checkComposeFile(root, cfg.Compose.File))
	}

	configPath, homeErr := sshconfig.ConfigPath(s.LookupEnv)
	if homeErr != nil {
		results = append(results, doctor.FailWithHint("home", homeErr.Error(), "export HOME"))
	} else {
		results = append(results, doctor.Pass("home", filepath.Dir(filepath.Dir(configPath))))
	}

	switch {
	case homeErr != nil || configErr != nil:
		results = append(results, doctor.Skip("zed ssh entry", "needs HOME and config"))
	default:
		results = append(results, checkSSHEntry(configPath, cfg.Settings().Remote.Block()))
	}

	for _, result := range results {
		logger.Debug("doctor check", "name", result.Name, "status", string(result.Status))
	}

	params.Stdout = s.Stdout
	if done, err := params.EmitJSON(doctor.BuildJSON(results)); done {
		if err != nil {
			return cli.Internal("doctor: writing report: %w", err)
		}
		if doctor.AnyFailed(results) {
			return &cli.ExitError{Code: 1}
		}
		return nil
	}

	return doctor.PrintChecklist(s.Stdout, results)
}

func describeConfig(path string) string {
	if path == "" {
		return "defaults"
	}
	return path
}

func checkTool(name, hint string) doctor.Result {
	path, err := lookTool(name)
	if err != nil {
		return doctor.FailWithHint(name, err.Error(), hint)
	}
	return doctor.Pass(name, path)
}

// lookTool resolves name on PATH. A missing tool is a not-found
// [cli.ToolError].
func lookTool(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", cli.NotFound("%s not found on PATH: %w", name, err)
	}
	return path, nil
}

func checkComposeFile(root, file string) doctor.Result {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, file)
	}
	if _, err := os.Stat(path); err != nil {
		return doctor.FailWithHint("compose file", err.Error(),
			"run hsdev from a HarborShield checkout or set compose.file in the config")
	}
	return doctor.Pass("compose file", path)
}

func checkSSHEntry(path string, block sshconfig.Block) doctor.Result {
	present, err := sshconfig.Contains(path, block.Marker)
	switch {
	case err != nil:
		return doctor.Warn("zed ssh entry", err.Error())
	case !present:
		return doctor.Warn("zed ssh entry", fmt.Sprintf("no %q in %s; run hsdev setup-zed", block.Marker, path))
	default:
		return doctor.Pass("zed ssh entry", block.Marker)
	}
}
