// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"slices"

	"github.com/harborshield/hsdev/lib/sshconfig"
)

// Program is the name hsdev refers to itself by in follow-up hints.
const Program = "hsdev"

// Settings holds the names plans are built from. [DefaultSettings]
// returns the HarborShield values; lib/config may override them.
type Settings struct {
	// ContainerTool is the container runtime binary ("docker").
	ContainerTool string
	// BuildTool is the build tool binary ("cargo").
	BuildTool string

	// ComposeFile is the compose file path, relative to the project root.
	ComposeFile string
	// Container is the development container name.
	Container string
	// ExtraContainers are force-removed by clean alongside Container.
	ExtraContainers []string
	// Shell is the shell started inside the container.
	Shell string

	// Binary is the application binary name under target/.
	Binary string
	// DataDir is passed as --data-dir when running the application.
	DataDir string
	// LinuxTarget is the target triple for build --linux.
	LinuxTarget string

	// Remote is the SSH entry setup-zed installs.
	Remote sshconfig.Host
	// RemotePassword is shown in the setup-zed instructions only.
	RemotePassword string
	// RemoteWorkspace is the folder to open in the container.
	RemoteWorkspace string
}

// DefaultSettings returns the HarborShield development settings.
func DefaultSettings() Settings {
	return Settings{
		ContainerTool:   "docker",
		BuildTool:       "cargo",
		ComposeFile:     "docker-compose.dev.yml",
		Container:       "harborshield-dev",
		ExtraContainers: []string{"test-nginx"},
		Shell:           "bash",
		Binary:          "harborshield",
		DataDir:         "/data",
		LinuxTarget:     "x86_64-unknown-linux-gnu",
		Remote: sshconfig.Host{
			Alias:    "harborshield-dev",
			Comment:  "HarborShield dev container",
			HostName: "localhost",
			Port:     2222,
			User:     "root",
		},
		RemotePassword:  "dev",
		RemoteWorkspace: "/app",
	}
}

// composeArgs returns the "compose -f <file>" prefix shared by every
// compose invocation.
func (s Settings) composeArgs(rest ...string) []string {
	return append([]string{"compose", "-f", s.ComposeFile}, rest...)
}

// removableContainers returns Container followed by ExtraContainers.
func (s Settings) removableContainers() []string {
	return append([]string{s.Container}, slices.Clone(s.ExtraContainers)...)
}
