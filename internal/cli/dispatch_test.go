package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tasklist/internal/cli"
	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/testutil"
)

// testFactory creates a store factory that reopens and returns the given
// FakeStore, so one store can serve several runs.
func testFactory(store *testutil.FakeStore) cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		store.Reopen()
		return store, nil
	}
}

func run(t *testing.T, factory cli.StoreFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory).WithEnv(map[string]string{})

	var outBuf, errBuf bytes.Buffer
	args = append(args, "--config", t.TempDir())
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeStore()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "tasklist 0.1.0\n" {
		t.Errorf("expected 'tasklist 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: --unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_CommandHelpFlag(t *testing.T) {
	stdout, _, code := run(t, nil, "add", "--help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "tasklist add") {
		t.Errorf("expected usage, got %q", stdout)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	store := testutil.NewFakeStore().Seed(service.NewTask("buy milk", "high"))
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store)).WithEnv(map[string]string{})

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	expected := "   1  Buy Milk  [High]\n"
	if stdout.String() != expected {
		t.Errorf("expected %q, got %q", expected, stdout.String())
	}
	if !store.Closed() {
		t.Error("expected store to be closed after the command")
	}
}

func TestDispatcher_AddThenList(t *testing.T) {
	store := testutil.NewFakeStore()

	stdout, stderr, code := run(t, testFactory(store), "add", "-p", "high", "Write", "Report")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}

	stdout, _, _ = run(t, testFactory(store), "list")
	expected := "   1  Write Report  [High]\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestDispatcher_QuietSuppressesOK(t *testing.T) {
	stdout, _, code := run(t, testFactory(testutil.NewFakeStore()), "add", "-q", "a")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
}

func TestDispatcher_StoreUnavailable(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("permission denied")
	}
	_, stderr, code := run(t, factory, "list")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	expected := "error: store unavailable: permission denied\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoFactory(t *testing.T) {
	_, _, code := run(t, nil, "list")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
}

func TestDispatcher_InitialRenderFails(t *testing.T) {
	store := testutil.NewFakeStore()
	store.EachErr = errors.New("corrupt page")

	_, stderr, code := run(t, testFactory(store), "list")

	if code != exitcode.OperationError {
		t.Errorf("expected exit code %d, got %d", exitcode.OperationError, code)
	}
	if !strings.Contains(stderr, "corrupt page") {
		t.Errorf("expected render error, got %q", stderr)
	}
	if !store.Closed() {
		t.Error("expected store to be closed")
	}
}

func TestDispatcher_InvalidPolicy(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeStore()), "list", "--policy", "merge")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "invalid duplicate policy: merge") {
		t.Errorf("expected policy error, got %q", stderr)
	}
}

func TestDispatcher_PolicyFromEnv(t *testing.T) {
	store := testutil.NewFakeStore().Seed(service.NewTask("a", "low"))
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(store)).
		WithEnv(map[string]string{config.EnvPolicy: "upsert"})

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"add", "--config", t.TempDir(), "-p", "high", "a"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	tasks := store.Tasks()
	if len(tasks) != 1 || tasks[0].Priority != "high" {
		t.Errorf("expected upsert to replace priority, got %v", tasks)
	}
}
