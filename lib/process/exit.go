// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitCoder is implemented by errors that carry their own exit code
// and have already reported themselves to the user.
type ExitCoder interface {
	ExitCode() int
}

// Report writes err to stderr and returns the exit code for it. A nil
// error is 0. An error implementing [ExitCoder] anywhere in its chain
// is not printed and its code is returned. Anything else is printed as
// "error: <message>" and maps to 1.
func Report(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}

// Exit reports err and terminates the process with the resulting code.
func Exit(err error) {
	os.Exit(Report(os.Stderr, err))
}
