// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/harborshield/hsdev/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// stamp is the resolved build identity.
type stamp struct {
	commit    string
	dirty     bool
	buildTime string
}

var resolved = sync.OnceValue(func() stamp {
	info, _ := debug.ReadBuildInfo()
	return resolve(GitCommit, GitDirty, BuildTime, info)
})

// resolve prefers injected values and fills the rest from the VCS
// settings in info, which may be nil.
func resolve(commit, dirty, buildTime string, info *debug.BuildInfo) stamp {
	result := stamp{commit: commit, dirty: dirty == "true", buildTime: buildTime}
	if info == nil || commit != "unknown" {
		return result
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			result.commit = setting.Value
			if len(result.commit) > 7 {
				result.commit = result.commit[:7]
			}
		case "vcs.modified":
			result.dirty = setting.Value == "true"
		case "vcs.time":
			if buildTime == "unknown" {
				result.buildTime = setting.Value
			}
		}
	}
	return result
}

func (s stamp) info() string {
	dirty := ""
	if s.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, s.commit, dirty, s.buildTime)
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	return resolved().info()
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return resolved().commit
}
