// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"fmt"
	"io"
	"strings"

	"github.com/harborshield/hsdev/cmd/hsdev/cli"
)

// PrintChecklist prints check results as a human-readable checklist
// followed by the hints of failed checks. Returns a [cli.ExitError]
// with code 1 when any check failed, so main exits non-zero without
// printing a redundant error line.
func PrintChecklist(w io.Writer, results []Result) error {
	var hints []string
	for _, result := range results {
		prefix := strings.ToUpper(string(result.Status))
		fmt.Fprintf(w, "[%-4s]  %-24s  %s\n", prefix, result.Name, result.Message)
		if result.Status == StatusFail && result.Hint != "" {
			hints = append(hints, result.Hint)
		}
	}

	fmt.Fprintln(w)

	if !AnyFailed(results) {
		fmt.Fprintln(w, "All checks passed.")
		return nil
	}

	fmt.Fprintln(w, "Some checks failed.")
	for _, hint := range hints {
		fmt.Fprintf(w, "  - %s\n", hint)
	}
	return &cli.ExitError{Code: 1}
}
