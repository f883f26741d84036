// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/harborshield/hsdev/lib/plan"
	"github.com/harborshield/hsdev/lib/sshconfig"
)

// EnvConfig names the environment variable holding the config path.
const EnvConfig = "HSDEV_CONFIG"

// Config is the hsdev configuration.
type Config struct {
	// Tools names the external binaries.
	Tools ToolsConfig `yaml:"tools" json:"tools"`

	// Compose configures the development container stack.
	Compose ComposeConfig `yaml:"compose" json:"compose"`

	// App describes the application built and run inside the container.
	App AppConfig `yaml:"app" json:"app"`

	// Remote configures the SSH entry written by setup-zed.
	Remote RemoteConfig `yaml:"remote" json:"remote"`
}

// ToolsConfig names the external binaries.
type ToolsConfig struct {
	// Container is the container runtime.
	// Default: docker
	Container string `yaml:"container" json:"container"`

	// Build is the build tool.
	// Default: cargo
	Build string `yaml:"build" json:"build"`
}

// ComposeConfig configures the development container stack.
type ComposeConfig struct {
	// File is the compose file, relative to the project root.
	// Default: docker-compose.dev.yml
	File string `yaml:"file" json:"file"`

	// Container is the development container name.
	// Default: harborshield-dev
	Container string `yaml:"container" json:"container"`

	// ExtraContainers are removed by clean alongside Container.
	// Default: [test-nginx]
	ExtraContainers []string `yaml:"extra_containers" json:"extra_containers"`

	// Shell is started by shell and used to run commands in the container.
	// Default: bash
	Shell string `yaml:"shell" json:"shell"`
}

// AppConfig describes the application binary.
type AppConfig struct {
	// Binary is the binary name under target/.
	// Default: harborshield
	Binary string `yaml:"binary" json:"binary"`

	// DataDir is passed as --data-dir inside the container.
	// Default: /data
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// LinuxTarget is the target triple for build --linux.
	// Default: x86_64-unknown-linux-gnu
	LinuxTarget string `yaml:"linux_target" json:"linux_target"`
}

// RemoteConfig configures the SSH client entry for the container.
type RemoteConfig struct {
	Alias    string `yaml:"alias" json:"alias"`
	Comment  string `yaml:"comment" json:"comment"`
	HostName string `yaml:"hostname" json:"hostname"`
	Port     int    `yaml:"port" json:"port"`
	User     string `yaml:"user" json:"user"`

	// Password is only printed in the setup-zed instructions.
	Password string `yaml:"password" json:"password"`

	// Workspace is the folder to open inside the container.
	Workspace string `yaml:"workspace" json:"workspace"`
}

// Default returns the HarborShield development configuration.
func Default() *Config {
	settings := plan.DefaultSettings()
	return &Config{
		Tools: ToolsConfig{
			Container: settings.ContainerTool,
			Build:     settings.BuildTool,
		},
		Compose: ComposeConfig{
			File:            settings.ComposeFile,
			Container:       settings.Container,
			ExtraContainers: settings.ExtraContainers,
			Shell:           settings.Shell,
		},
		App: AppConfig{
			Binary:      settings.Binary,
			DataDir:     settings.DataDir,
			LinuxTarget: settings.LinuxTarget,
		},
		Remote: RemoteConfig{
			Alias:     settings.Remote.Alias,
			Comment:   settings.Remote.Comment,
			HostName:  settings.Remote.HostName,
			Port:      settings.Remote.Port,
			User:      settings.Remote.User,
			Password:  settings.RemotePassword,
			Workspace: settings.RemoteWorkspace,
		},
	}
}

// Path returns the configuration file to load: explicitPath when set,
// otherwise the value of HSDEV_CONFIG from lookupEnv. An empty result
// means no file.
func Path(explicitPath string, lookupEnv func(string) (string, bool)) string {
	if explicitPath != "" {
		return explicitPath
	}
	path, _ := lookupEnv(EnvConfig)
	return path
}

// Load returns the configuration named by [Path], or [Default] when
// there is none. lookupEnv is normally os.LookupEnv; it also supplies
// the variables expanded in paths. The loaded configuration is
// validated.
func Load(explicitPath string, lookupEnv func(string) (string, bool)) (*Config, error) {
	path := Path(explicitPath, lookupEnv)
	if path == "" {
		return Default(), nil
	}

	cfg, err := load(path, lookupEnv)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFile loads configuration from a specific file path, layered over
// [Default], expanding variables from the process environment. It does
// not validate.
func LoadFile(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables(lookupEnv)

	return cfg, nil
}

// loadFile decodes path into c according to its extension.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	switch extension := strings.ToLower(filepath.Ext(path)); extension {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		return fmt.Errorf("config: %s: unsupported extension %q (want .yaml, .yml, .json, or .jsonc)", path, extension)
	}
	if err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables(lookupEnv func(string) (string, bool)) {
	c.Compose.File = expandVars(c.Compose.File, lookupEnv)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. Unset and
// empty variables both take the default.
func expandVars(s string, lookupEnv func(string) (string, bool)) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, _ := lookupEnv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{"tools.container", c.Tools.Container},
		{"tools.build", c.Tools.Build},
		{"compose.file", c.Compose.File},
		{"compose.container", c.Compose.Container},
		{"compose.shell", c.Compose.Shell},
		{"app.binary", c.App.Binary},
		{"app.data_dir", c.App.DataDir},
		{"app.linux_target", c.App.LinuxTarget},
		{"remote.alias", c.Remote.Alias},
		{"remote.hostname", c.Remote.HostName},
		{"remote.user", c.Remote.User},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", field.name))
		}
	}

	if slices.Contains(c.Compose.ExtraContainers, "") {
		errs = append(errs, errors.New("compose.extra_containers must not contain empty names"))
	}

	// The alias is matched as "Host <alias>" in ~/.ssh/config.
	if strings.ContainsAny(c.Remote.Alias, " \t\n") {
		errs = append(errs, fmt.Errorf("remote.alias %q must be a single word", c.Remote.Alias))
	}

	if c.Remote.Port < 1 || c.Remote.Port > 65535 {
		errs = append(errs, fmt.Errorf("remote.port %d is out of range 1-65535", c.Remote.Port))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Settings converts the configuration into the names plans are built from.
func (c *Config) Settings() plan.Settings {
	return plan.Settings{
		ContainerTool:   c.Tools.Container,
		BuildTool:       c.Tools.Build,
		ComposeFile:     c.Compose.File,
		Container:       c.Compose.Container,
		ExtraContainers: slices.Clone(c.Compose.ExtraContainers),
		Shell:           c.Compose.Shell,
		Binary:          c.App.Binary,
		DataDir:         c.App.DataDir,
		LinuxTarget:     c.App.LinuxTarget,
		Remote: sshconfig.Host{
			Alias:    c.Remote.Alias,
			Comment:  c.Remote.Comment,
			HostName: c.Remote.HostName,
			Port:     c.Remote.Port,
			User:     c.Remote.User,
		},
		RemotePassword:  c.Remote.Password,
		RemoteWorkspace: c.Remote.Workspace,
	}
}
