// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

// Package plan turns an hsdev subcommand and its flags into an ordered
// list of steps, and executes that list.
//
// [Build] is pure: it maps a [Subcommand] variant and [Settings] to a
// [Plan] without touching the system, so every command vector can be
// asserted in tests and printed by --dry-run. [Execute] walks the steps
// through an [invoke.Runner], stopping at the first required step that
// fails. Best-effort steps (leftover container removal, the teardown
// before a restart) run and their outcome is ignored.
//
// The setup-zed plan contains no processes. Its single step carries an
// [sshconfig.Block] that [Execute] hands to a [RemoteConfigurer].
package plan
