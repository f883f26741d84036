// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides optional configuration for hsdev.
//
// With no configuration hsdev uses the HarborShield defaults returned
// by [Default]. A file may override them; it is named by the --config
// flag or the HSDEV_CONFIG environment variable (the flag wins). There
// is no discovery: a file next to the project or in ~/.config is never
// read implicitly.
//
// Files ending in .yaml or .yml are parsed as YAML. Files ending in
// .json or .jsonc are parsed as JSON after stripping // and /* */
// comments and trailing commas. Fields absent from the file keep their
// defaults.
//
// After loading, ${HOME}, ${HSDEV_ROOT}, and ${VAR:-default} patterns
// in the compose file path are expanded.
//
// Key exports:
//
//   - [Config] -- tools, compose, app, and remote sections
//   - [Default] -- the HarborShield defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Settings] -- conversion into [plan.Settings]
package config
