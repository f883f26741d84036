// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

// Package doctor provides the result model and output for hsdev's
// environment diagnostics.
//
// The doctor command runs a series of checks and reports them in a
// consistent format. The package provides:
//
//   - [Result] with status, message, and an optional hint
//   - Constructors: [Pass], [Fail], [FailWithHint], [Warn], [Skip]
//   - [PrintChecklist] for human-readable output
//   - [BuildJSON] for machine-readable output
//
// What to check lives in the command; this package provides only the
// reporting workflow.
package doctor
