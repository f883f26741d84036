// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// LogEnv is the environment variable fake tools append their records
// to. [FakeTools] sets it to a file inside the fake bin directory.
const LogEnv = "HSDEV_FAKE_TOOL_LOG"

// RecordingScript is a script body that appends "<pwd>|<name> <args>"
// to $HSDEV_FAKE_TOOL_LOG and exits with exitCode.
func RecordingScript(exitCode int) string {
	return `printf '%s|%s %s\n' "$(pwd)" "$(basename "$0")" "$*" >> "$` + LogEnv + `"
exit ` + strconv.Itoa(exitCode) + "\n"
}

// RecordingScriptFailingOn is like [RecordingScript] but exits with
// exitCode only when the first argument is subcommand, and 0 otherwise.
func RecordingScriptFailingOn(subcommand string, exitCode int) string {
	return `printf '%s|%s %s\n' "$(pwd)" "$(basename "$0")" "$*" >> "$` + LogEnv + `"
if [ "$1" = "` + subcommand + `" ]; then exit ` + strconv.Itoa(exitCode) + `; fi
exit 0
`
}

// FakeTools writes an executable /bin/sh script for each name in tools
// into a temporary directory, prepends that directory to PATH, and
// returns the directory. The map value is the script body, without the
// shebang line.
func FakeTools(t *testing.T, tools map[string]string) string {
	t.Helper()

	directory := t.TempDir()
	for name, body := range tools {
		path := filepath.Join(directory, name)
		content := "#!/bin/sh\n" + body
		if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
			t.Fatalf("writing fake tool %s: %v", name, err)
		}
	}

	t.Setenv(LogEnv, filepath.Join(directory, "calls.log"))
	t.Setenv("PATH", directory+string(os.PathListSeparator)+os.Getenv("PATH"))
	return directory
}

// ReadLog returns the records fake tools appended to the log, one per
// call, in call order. Returns nil when no tool has run yet.
func ReadLog(t *testing.T) []string {
	t.Helper()

	data, err := os.ReadFile(os.Getenv(LogEnv))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading fake tool log: %v", err)
	}
	if len(data) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}
