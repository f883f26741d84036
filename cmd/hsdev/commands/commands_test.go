// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/harborshield/hsdev/cmd/hsdev/cli"
	"github.com/harborshield/hsdev/lib/config"
	"github.com/harborshield/hsdev/lib/invoke"
	"github.com/harborshield/hsdev/lib/testutil"
	"github.com/harborshield/hsdev/lib/version"
)

// harness is a command tree wired to buffers, a temporary project root,
// and an environment holding only a temporary HOME.
type harness struct {
	root    string
	rootErr error
	home    string
	env     map[string]string
	stdin   bytes.Buffer
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	logs    bytes.Buffer
	tree    *cli.Command
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{root: t.TempDir(), home: t.TempDir()}
	h.env = map[string]string{"HOME": h.home}
	h.tree = NewRoot(h.system(&h.stdout))
	return h
}

func (h *harness) system(stdout io.Writer) System {
	return System{
		Stdin:  &h.stdin,
		Stdout: stdout,
		Stderr: &h.stderr,
		LookupEnv: func(key string) (string, bool) {
			value, ok := h.env[key]
			return value, ok
		},
		ProjectRoot: func() (string, error) {
			if h.rootErr != nil {
				return "", h.rootErr
			}
			return h.root, nil
		},
	}
}

func (h *harness) execute(args ...string) error {
	ctx := cli.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&h.logs, nil)))
	return h.tree.Execute(ctx, args)
}

func TestRoot_HasEveryCommand(t *testing.T) {
	want := []string{
		"dev", "shell", "run", "test", "check", "build", "stop", "restart",
		"clean", "migrate", "sqlx-prepare", "setup-zed", "doctor", "version",
	}

	var names []string
	for _, command := range Root().Subcommands {
		names = append(names, command.Name)
		if command.Summary == "" {
			t.Errorf("%s has no summary", command.Name)
		}
		if command.Run == nil {
			t.Errorf("%s has no Run", command.Name)
		}
		if command.Params != nil {
			// Panics on a malformed params struct.
			cli.FlagsFromParams(command.Name, command.Params())
		}
	}
	if !slices.Equal(names, want) {
		t.Errorf("commands = %v, want %v", names, want)
	}
}

func TestDryRun_PrintsCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{
			[]string{"run", "-rw", "--dry-run"},
			"+ docker exec -it harborshield-dev bash -c cargo watch -x 'build --release' -s './target/release/harborshield --data-dir /data --debug'\n",
		},
		{
			[]string{"dev", "--build", "--test", "--dry-run"},
			"+ docker compose -f docker-compose.dev.yml --profile test up --build -d\n",
		},
		{
			[]string{"test", "-u", "-i", "--dry-run"},
			"+ cargo test --lib\n",
		},
		{
			[]string{"build", "--linux", "--dry-run"},
			"+ cargo build --release --target x86_64-unknown-linux-gnu\n",
		},
	}

	for _, test := range tests {
		t.Run(strings.Join(test.args, " "), func(t *testing.T) {
			h := newHarness(t)
			if err := h.execute(test.args...); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if !strings.Contains(h.stdout.String(), test.want) {
				t.Errorf("stdout =\n%s\nwant line %q", h.stdout.String(), test.want)
			}
		})
	}
}

func TestDryRun_RunsNothing(t *testing.T) {
	testutil.FakeTools(t, map[string]string{
		"docker": testutil.RecordingScript(0),
		"cargo":  testutil.RecordingScript(0),
	})
	h := newHarness(t)

	if err := h.execute("check", "--dry-run"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if calls := testutil.ReadLog(t); calls != nil {
		t.Errorf("dry run started processes: %v", calls)
	}
	if !strings.Contains(h.stdout.String(), "All checks passed!") {
		t.Errorf("dry run should still print the plan text:\n%s", h.stdout.String())
	}
}

func TestDryRun_JSON(t *testing.T) {
	h := newHarness(t)
	if err := h.execute("clean", "-v", "--dry-run", "--json"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var decoded struct {
		Command string `json:"command"`
		Steps   []struct {
			Argv       []string `json:"argv"`
			Mode       string   `json:"mode"`
			BestEffort bool     `json:"best_effort"`
		} `json:"steps"`
	}
	if err := json.Unmarshal(h.stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, h.stdout.String())
	}
	if decoded.Command != "clean" || len(decoded.Steps) != 2 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if !slices.Equal(decoded.Steps[0].Argv, []string{"docker", "compose", "-f", "docker-compose.dev.yml", "down", "-v"}) {
		t.Errorf("first argv = %v", decoded.Steps[0].Argv)
	}
	if decoded.Steps[1].Mode != "silent" || !decoded.Steps[1].BestEffort {
		t.Errorf("second step = %+v", decoded.Steps[1])
	}
}

func TestDryRun_JSONKeepsComposedCommand(t *testing.T) {
	h := newHarness(t)
	if err := h.execute("run", "--dry-run", "--json"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := `"cargo build && ./target/debug/harborshield --data-dir /data --debug"`
	if !strings.Contains(h.stdout.String(), want) {
		t.Errorf("stdout =\n%s\nwant literal %s", h.stdout.String(), want)
	}
	if strings.Contains(h.stdout.String(), `\u0026`) {
		t.Errorf("stdout contains escaped ampersands:\n%s", h.stdout.String())
	}
}

func TestJSONRequiresDryRun(t *testing.T) {
	h := newHarness(t)
	err := h.execute("stop", "--json")

	var toolError *cli.ToolError
	if !errors.As(err, &toolError) || toolError.Category != cli.CategoryValidation {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestUnexpectedArgument(t *testing.T) {
	h := newHarness(t)
	err := h.execute("migrate", "now")

	var toolError *cli.ToolError
	if !errors.As(err, &toolError) || toolError.Category != cli.CategoryValidation {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestConfigOverridesFlowIntoCommands(t *testing.T) {
	h := newHarness(t)
	configPath := filepath.Join(t.TempDir(), "hsdev.yaml")
	content := "tools:\n  container: podman\ncompose:\n  file: deploy/compose.yml\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := h.execute("stop", "--dry-run", "--config", configPath); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "+ podman compose -f deploy/compose.yml down\n") {
		t.Errorf("stdout =\n%s", h.stdout.String())
	}
}

func TestConfigFromInjectedEnvironment(t *testing.T) {
	h := newHarness(t)
	fromSystem := filepath.Join(t.TempDir(), "system.yaml")
	fromProcess := filepath.Join(t.TempDir(), "process.yaml")
	if err := os.WriteFile(fromSystem, []byte("tools:\n  container: podman\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fromProcess, []byte("tools:\n  container: nerdctl\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h.env[config.EnvConfig] = fromSystem
	t.Setenv(config.EnvConfig, fromProcess)

	if err := h.execute("stop", "--dry-run"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "+ podman compose -f docker-compose.dev.yml down\n") {
		t.Errorf("stdout =\n%s\nwant the config named by the injected environment", h.stdout.String())
	}
}

func TestMissingProjectRootIsNotFound(t *testing.T) {
	h := newHarness(t)
	rootErr := errors.New("no hsdev checkout above /usr/local/bin")
	h.rootErr = rootErr

	err := h.execute("migrate")

	var toolError *cli.ToolError
	if !errors.As(err, &toolError) || toolError.Category != cli.CategoryNotFound {
		t.Fatalf("error = %v, want not-found ToolError", err)
	}
	if !errors.Is(err, rootErr) {
		t.Errorf("error %v does not wrap the resolution failure", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestDryRun_JSONWriteFailureIsInternal(t *testing.T) {
	h := newHarness(t)
	h.tree = NewRoot(h.system(failingWriter{}))

	err := h.execute("clean", "--dry-run", "--json")

	var toolError *cli.ToolError
	if !errors.As(err, &toolError) || toolError.Category != cli.CategoryInternal {
		t.Errorf("error = %v, want internal ToolError", err)
	}
}

func TestExecute_RunsInProjectRoot(t *testing.T) {
	testutil.FakeTools(t, map[string]string{"cargo": testutil.RecordingScript(0)})
	h := newHarness(t)
	t.Chdir(t.TempDir())

	if err := h.execute("sqlx-prepare"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	calls := testutil.ReadLog(t)
	want := []string{h.root + "|cargo sqlx prepare"}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %q, want %q", calls, want)
	}
	if !strings.Contains(h.stdout.String(), "SQLx cache generated in .sqlx/") {
		t.Errorf("stdout =\n%s", h.stdout.String())
	}
}

func TestMigrate_ForwardsPromptAnswers(t *testing.T) {
	testutil.FakeTools(t, map[string]string{
		"cargo": "read answer\necho \"answer=$answer\"\n",
	})
	h := newHarness(t)
	h.stdin.WriteString("y\n")

	if err := h.execute("migrate"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "answer=y\n") {
		t.Errorf("stdout =\n%s\nwant the child to read the answer from stdin", h.stdout.String())
	}
}

func TestCheck_StopsAtFormatFailure(t *testing.T) {
	testutil.FakeTools(t, map[string]string{"cargo": testutil.RecordingScriptFailingOn("fmt", 1)})
	h := newHarness(t)

	err := h.execute("check")

	var executionError *invoke.ExecutionError
	if !errors.As(err, &executionError) {
		t.Fatalf("error = %v, want *invoke.ExecutionError", err)
	}
	if executionError.Command != "cargo fmt --check" || executionError.ExitCode != 1 {
		t.Errorf("execution error = %+v", executionError)
	}
	if calls := testutil.ReadLog(t); len(calls) != 1 {
		t.Errorf("calls = %q, want only the format check", calls)
	}
}

func TestClean_IgnoresRemovalFailure(t *testing.T) {
	testutil.FakeTools(t, map[string]string{"docker": testutil.RecordingScriptFailingOn("rm", 1)})
	h := newHarness(t)

	if err := h.execute("clean"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{
		h.root + "|docker compose -f docker-compose.dev.yml down",
		h.root + "|docker rm -f harborshield-dev test-nginx",
	}
	if calls := testutil.ReadLog(t); !slices.Equal(calls, want) {
		t.Errorf("calls = %q, want %q", calls, want)
	}
	if !strings.Contains(h.stdout.String(), "Cleanup complete.") {
		t.Errorf("stdout =\n%s", h.stdout.String())
	}
}

func TestShell_NonZeroExitIsNotAnError(t *testing.T) {
	testutil.FakeTools(t, map[string]string{"docker": testutil.RecordingScript(130)})
	h := newHarness(t)

	if err := h.execute("shell"); err != nil {
		t.Errorf("shell exiting 130 returned %v", err)
	}
}

func TestMissingTool(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	h := newHarness(t)

	err := h.execute("migrate")

	var launchError *invoke.LaunchError
	if !errors.As(err, &launchError) {
		t.Errorf("error = %v, want *invoke.LaunchError", err)
	}
}

func TestSetupZed_Idempotent(t *testing.T) {
	h := newHarness(t)

	if err := h.execute("setup-zed"); err != nil {
		t.Fatalf("first setup-zed: %v", err)
	}
	if err := h.execute("setup-zed"); err != nil {
		t.Fatalf("second setup-zed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(h.home, ".ssh", "config"))
	if err != nil {
		t.Fatalf("reading ssh config: %v", err)
	}
	if count := strings.Count(string(data), "Host harborshield-dev"); count != 1 {
		t.Errorf("marker occurs %d times, want 1", count)
	}

	output := h.stdout.String()
	if !strings.Contains(output, "Added SSH config entry to ~/.ssh/config") {
		t.Errorf("first run did not report the addition:\n%s", output)
	}
	if !strings.Contains(output, "SSH config entry already exists in ~/.ssh/config") {
		t.Errorf("second run did not report the existing entry:\n%s", output)
	}
	if strings.Count(output, "  3. Enter: harborshield-dev") != 2 {
		t.Errorf("instructions should print on both runs:\n%s", output)
	}
}

func TestSetupZed_DoesNotNeedProjectRoot(t *testing.T) {
	h := newHarness(t)
	h.rootErr = errors.New("no root")

	if err := h.execute("setup-zed"); err != nil {
		t.Errorf("setup-zed without a project root: %v", err)
	}
}

func TestSetupZed_DryRun(t *testing.T) {
	h := newHarness(t)

	if err := h.execute("setup-zed", "--dry-run"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "SSH config entry would be added to ~/.ssh/config") {
		t.Errorf("stdout =\n%s", h.stdout.String())
	}
	if _, err := os.Stat(filepath.Join(h.home, ".ssh")); !os.IsNotExist(err) {
		t.Errorf("dry run created ~/.ssh (stat error: %v)", err)
	}
}

func TestVersion_JSON(t *testing.T) {
	h := newHarness(t)
	if err := h.execute("version", "--json"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var decoded struct {
		Version string `json:"version"`
		Commit  string `json:"commit"`
	}
	if err := json.Unmarshal(h.stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, h.stdout.String())
	}
	if decoded.Version != version.Short() || decoded.Commit != version.Commit() {
		t.Errorf("decoded = %+v, want %s at %s", decoded, version.Short(), version.Commit())
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	if err := h.execute("version"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(h.stdout.String(), "hsdev ") {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}
