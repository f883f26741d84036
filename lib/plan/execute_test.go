// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"slices"
	"strings"
	"testing"

	"github.com/harborshield/hsdev/lib/invoke"
	"github.com/harborshield/hsdev/lib/sshconfig"
)

// recordingReporter collects reporter output as tagged lines.
type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) Info(text string)    { r.lines = append(r.lines, "info: "+text) }
func (r *recordingReporter) Heading(text string) { r.lines = append(r.lines, "heading: "+text) }
func (r *recordingReporter) Done(lines []string) {
	for _, line := range lines {
		r.lines = append(r.lines, "done: "+line)
	}
}

// memoryRemote is a RemoteConfigurer backed by an in-memory set.
type memoryRemote struct {
	markers map[string]bool
	calls   int
	err     error
}

func (m *memoryRemote) Ensure(block sshconfig.Block) (sshconfig.Outcome, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	if m.markers == nil {
		m.markers = make(map[string]bool)
	}
	if m.markers[block.Marker] {
		return sshconfig.AlreadyPresent, nil
	}
	m.markers[block.Marker] = true
	return sshconfig.Added, nil
}

func execute(t *testing.T, subcommand Subcommand, environment Environment) error {
	t.Helper()
	return Execute(context.Background(), mustBuild(t, subcommand), environment)
}

func TestExecute_CheckStopsAtFirstFailure(t *testing.T) {
	recorder := &invoke.Recorder{ExitCodes: map[string]int{"cargo fmt --check": 1}}
	reporter := &recordingReporter{}

	err := execute(t, Check{}, Environment{Runner: recorder, Reporter: reporter})

	var executionError *invoke.ExecutionError
	if !errors.As(err, &executionError) {
		t.Fatalf("error = %v, want *invoke.ExecutionError", err)
	}
	if executionError.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", executionError.ExitCode)
	}
	if got := recorder.Commands(); !slices.Equal(got, []string{"cargo fmt --check"}) {
		t.Errorf("commands = %q, want only the format check", got)
	}
	if slices.Contains(reporter.lines, "done: All checks passed!") {
		t.Error("summary printed after a failed check")
	}
}

func TestExecute_CheckClippyFailureSkipsTests(t *testing.T) {
	clippy := "cargo clippy --all-targets --all-features -- -D warnings"
	recorder := &invoke.Recorder{ExitCodes: map[string]int{clippy: 101}}

	err := execute(t, Check{}, Environment{Runner: recorder})
	if err == nil {
		t.Fatal("expected clippy failure")
	}
	if got := recorder.Commands(); !slices.Equal(got, []string{"cargo fmt --check", clippy}) {
		t.Errorf("commands = %q", got)
	}
}

func TestExecute_CheckSuccessReportsInOrder(t *testing.T) {
	recorder := &invoke.Recorder{}
	reporter := &recordingReporter{}

	if err := execute(t, Check{Fix: true}, Environment{Runner: recorder, Reporter: reporter}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{
		"info: Checking code quality...",
		"heading: Checking formatting...",
		"heading: Running clippy...",
		"heading: Running tests...",
		"done: All checks passed!",
	}
	if !slices.Equal(reporter.lines, want) {
		t.Errorf("reporter lines =\n%s\nwant\n%s", strings.Join(reporter.lines, "\n"), strings.Join(want, "\n"))
	}
	if got := recorder.Commands(); len(got) != 3 || got[0] != "cargo fmt" {
		t.Errorf("commands = %q", got)
	}
}

func TestExecute_BestEffortFailuresIgnored(t *testing.T) {
	tests := []struct {
		name      string
		command   Subcommand
		recorder  *invoke.Recorder
		wantCalls int
	}{
		{
			name:    "clean removal exits non-zero",
			command: Clean{},
			recorder: &invoke.Recorder{ExitCodes: map[string]int{
				"docker rm -f harborshield-dev test-nginx": 1,
			}},
			wantCalls: 2,
		},
		{
			name:    "clean removal cannot launch",
			command: Clean{Volumes: true},
			recorder: &invoke.Recorder{LaunchErrors: map[string]error{
				"docker rm -f harborshield-dev test-nginx": exec.ErrNotFound,
			}},
			wantCalls: 2,
		},
		{
			name:    "restart teardown exits non-zero",
			command: Restart{},
			recorder: &invoke.Recorder{ExitCodes: map[string]int{
				"docker compose -f docker-compose.dev.yml down": 1,
			}},
			wantCalls: 2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := execute(t, test.command, Environment{Runner: test.recorder}); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if got := len(test.recorder.Calls()); got != test.wantCalls {
				t.Errorf("calls = %d, want %d", got, test.wantCalls)
			}
		})
	}
}

func TestExecute_CleanComposeFailureStops(t *testing.T) {
	recorder := &invoke.Recorder{ExitCodes: map[string]int{
		"docker compose -f docker-compose.dev.yml down": 1,
	}}
	if err := execute(t, Clean{}, Environment{Runner: recorder}); err == nil {
		t.Fatal("expected compose down failure")
	}
	if got := len(recorder.Calls()); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestExecute_RestartOrdersTeardownBeforeStart(t *testing.T) {
	recorder := &invoke.Recorder{}
	if err := execute(t, Restart{}, Environment{Runner: recorder}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	calls := recorder.Calls()
	if len(calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(calls))
	}
	if calls[0].Mode != invoke.Silent || calls[0].Invocation.String() != "docker compose -f docker-compose.dev.yml down" {
		t.Errorf("first call = %s (%v)", calls[0].Invocation, calls[0].Mode)
	}
	if calls[1].Mode != invoke.Captured || calls[1].Invocation.String() != "docker compose -f docker-compose.dev.yml up --build -d" {
		t.Errorf("second call = %s (%v)", calls[1].Invocation, calls[1].Mode)
	}
}

func TestExecute_InteractiveNonZeroIsNotAnError(t *testing.T) {
	recorder := &invoke.Recorder{ExitCodes: map[string]int{
		"docker exec -it harborshield-dev bash": 130,
	}}
	if err := execute(t, Shell{}, Environment{Runner: recorder}); err != nil {
		t.Errorf("shell exiting 130 returned %v", err)
	}
}

func TestExecute_LaunchErrorPropagates(t *testing.T) {
	recorder := &invoke.Recorder{LaunchErrors: map[string]error{
		"cargo sqlx migrate run": exec.ErrNotFound,
	}}

	err := execute(t, Migrate{}, Environment{Runner: recorder})

	var launchError *invoke.LaunchError
	if !errors.As(err, &launchError) {
		t.Fatalf("error = %v, want *invoke.LaunchError", err)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("error does not wrap exec.ErrNotFound: %v", err)
	}
}

func TestExecute_SetupZedIsIdempotent(t *testing.T) {
	remote := &memoryRemote{}
	recorder := &invoke.Recorder{}

	first := &recordingReporter{}
	if err := execute(t, SetupZed{}, Environment{Runner: recorder, Remote: remote, Reporter: first}); err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second := &recordingReporter{}
	if err := execute(t, SetupZed{}, Environment{Runner: recorder, Remote: remote, Reporter: second}); err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if remote.calls != 2 {
		t.Errorf("Ensure called %d times, want 2", remote.calls)
	}
	if len(recorder.Calls()) != 0 {
		t.Errorf("setup-zed started processes: %q", recorder.Commands())
	}
	if !slices.Contains(first.lines, "info: Added SSH config entry to ~/.ssh/config") {
		t.Errorf("first run lines = %q", first.lines)
	}
	if !slices.Contains(second.lines, "info: SSH config entry already exists in ~/.ssh/config") {
		t.Errorf("second run lines = %q", second.lines)
	}
	if !slices.Contains(second.lines, "done:   3. Enter: harborshield-dev") {
		t.Errorf("instructions missing from second run: %q", second.lines)
	}
}

func TestExecute_SetupZedAgainstRealConfig(t *testing.T) {
	home := t.TempDir()
	remote := sshconfig.UserConfig{LookupEnv: func(key string) (string, bool) {
		return home, key == "HOME"
	}}

	for range 2 {
		if err := execute(t, SetupZed{}, Environment{Remote: remote}); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}

	present, err := sshconfig.Contains(home+"/.ssh/config", "Host harborshield-dev")
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !present {
		t.Error("entry not written")
	}
}

func TestExecute_SetupZedFailureSkipsInstructions(t *testing.T) {
	failure := errors.New("permission denied")
	reporter := &recordingReporter{}

	err := execute(t, SetupZed{}, Environment{Remote: &memoryRemote{err: failure}, Reporter: reporter})
	if !errors.Is(err, failure) {
		t.Fatalf("error = %v, want %v", err, failure)
	}
	for _, line := range reporter.lines {
		if strings.HasPrefix(line, "done:") {
			t.Errorf("instructions printed after failure: %q", line)
		}
	}
}

func TestExecute_DryRunTrace(t *testing.T) {
	var trace bytes.Buffer
	recorder := &invoke.Recorder{Out: &trace}

	if err := execute(t, Dev{Build: true, Test: true}, Environment{Runner: recorder}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := "+ docker compose -f docker-compose.dev.yml --profile test up --build -d\n"
	if trace.String() != want {
		t.Errorf("trace = %q, want %q", trace.String(), want)
	}
}

func TestExecute_RequiresRunner(t *testing.T) {
	if err := execute(t, Stop{}, Environment{}); err == nil {
		t.Error("Execute without a runner succeeded")
	}
}
