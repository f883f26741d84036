// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for hsdev packages.
//
// [FakeTools] installs shell-script stand-ins for external tools
// (docker, cargo) in a temporary directory placed first on PATH, so
// tests exercise real child processes without the real tools. Scripts
// can record their argv and working directory to a log file that
// [ReadLog] returns.
//
// [TempHome] points HOME at a fresh temporary directory.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no hsdev-internal dependencies.
package testutil
