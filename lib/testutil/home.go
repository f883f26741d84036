// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "testing"

// TempHome sets HOME to a fresh temporary directory for the duration of
// the test and returns it.
func TempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}
