// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"

	"github.com/harborshield/hsdev/cmd/hsdev/cli"
	"github.com/harborshield/hsdev/cmd/hsdev/commands"
	"github.com/harborshield/hsdev/lib/process"
)

func main() {
	process.Exit(run())
}

func run() error {
	// No signal handling: an interrupt reaches the foreground child
	// directly, and hsdev waits for it to exit.
	ctx := cli.WithLogger(context.Background(), cli.NewCommandLogger())
	return commands.Root().Execute(ctx, os.Args[1:])
}
