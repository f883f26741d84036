// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package plan

// Subcommand is the closed set of hsdev operations. Each variant is a
// struct carrying that operation's options; the unexported method keeps
// the set closed to this package so [Build] can switch over it
// exhaustively.
type Subcommand interface {
	// Name is the command name as typed on the command line.
	Name() string

	subcommand()
}

// Dev starts the development container stack in the background.
type Dev struct {
	// Build rebuilds the image before starting.
	Build bool
	// Test also starts the containers in the "test" compose profile.
	Test bool
}

// Shell opens an interactive shell in the development container.
type Shell struct{}

// Run builds and runs the application inside the development container.
type Run struct {
	// Release builds with optimizations.
	Release bool
	// Watch rebuilds and restarts on source changes via cargo-watch.
	Watch bool
}

// Test runs the test suite.
type Test struct {
	// Ignored runs only the ignored (integration) tests.
	Ignored bool
	// Unit runs only the library unit tests. Takes precedence over
	// Ignored when both are set.
	Unit bool
}

// Check runs format, lint, and test in sequence, stopping at the first
// failure.
type Check struct {
	// Fix applies formatting and lint fixes instead of only checking.
	Fix bool
}

// Release compiles a release binary. Its command name is "build".
type Release struct {
	// Linux cross-compiles for the configured Linux target triple.
	Linux bool
}

// Stop tears down the development containers.
type Stop struct{}

// Restart tears down the containers (best effort), then rebuilds and
// starts them.
type Restart struct{}

// Clean tears down the containers and force-removes leftovers.
type Clean struct {
	// Volumes also removes named volumes.
	Volumes bool
}

// Migrate applies database migrations.
type Migrate struct{}

// SQLxPrepare regenerates the offline SQL query cache.
type SQLxPrepare struct{}

// SetupZed adds the development container's SSH entry to ~/.ssh/config
// for editor remote development.
type SetupZed struct{}

func (Dev) Name() string         { return "dev" }
func (Shell) Name() string       { return "shell" }
func (Run) Name() string         { return "run" }
func (Test) Name() string        { return "test" }
func (Check) Name() string       { return "check" }
func (Release) Name() string     { return "build" }
func (Stop) Name() string        { return "stop" }
func (Restart) Name() string     { return "restart" }
func (Clean) Name() string       { return "clean" }
func (Migrate) Name() string     { return "migrate" }
func (SQLxPrepare) Name() string { return "sqlx-prepare" }
func (SetupZed) Name() string    { return "setup-zed" }

func (Dev) subcommand()         {}
func (Shell) subcommand()       {}
func (Run) subcommand()         {}
func (Test) subcommand()        {}
func (Check) subcommand()       {}
func (Release) subcommand()     {}
func (Stop) subcommand()        {}
func (Restart) subcommand()     {}
func (Clean) subcommand()       {}
func (Migrate) subcommand()     {}
func (SQLxPrepare) subcommand() {}
func (SetupZed) subcommand()    {}

// All returns one zero-valued instance of every variant, in help order.
func All() []Subcommand {
	return []Subcommand{
		Dev{}, Shell{}, Run{}, Test{}, Check{}, Release{},
		Stop{}, Restart{}, Clean{}, Migrate{}, SQLxPrepare{}, SetupZed{},
	}
}
