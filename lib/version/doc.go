// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for hsdev.
//
// Four package-level variables can be injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// hsdev is usually started with "go run" from a checkout, where nothing
// is injected. In that case the commit, dirty flag, and time fall back
// to the VCS stamps the go command records in the binary's build info.
//
//   - [Info] -- "0.1.0-dev (abc1234, 2026-02-10T...)" for the version command
//   - [Full] -- Info plus Go version and GOOS/GOARCH
//   - [Short] -- just the version number
//   - [Commit] -- just the git SHA
package version
