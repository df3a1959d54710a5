package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"remind/internal/cli"
	"remind/internal/commands"
	"remind/internal/config"
	"remind/internal/exitcode"
	"remind/internal/store"
	"remind/internal/testutil"
)

// testFactory creates a store factory that returns the given FakeStore.
func testFactory(st *testutil.FakeStore) cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config) (store.Store, error) {
		return st, nil
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	st := testutil.NewFakeStore()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(st))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UsageError {
		t.Errorf("expected exit code %d, got %d", exitcode.UsageError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	st := testutil.NewFakeStore()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(st))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UsageError {
		t.Errorf("expected exit code %d, got %d", exitcode.UsageError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	st := testutil.NewFakeStore()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(st))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--config", t.TempDir()}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout.Len() == 0 {
		t.Error("expected help output")
	}
}

func TestDispatcher_NoArgsListsEverything(t *testing.T) {
	st := testutil.NewFakeStore()
	st.AddList("Groceries")
	st.Seed("Groceries", store.Item{Title: "Buy milk"})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(st))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("Buy milk")) {
		t.Errorf("output missing item: %q", stdout.String())
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	st := testutil.NewFakeStore()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(st))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"lists", "--bogus"}, &stdout, &stderr)

	if code != exitcode.UsageError {
		t.Errorf("expected exit code %d, got %d", exitcode.UsageError, code)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("unknown flag")) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestDispatcher_FactoryAccessDenied(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (store.Store, error) {
		return nil, fmt.Errorf("%w: token expired", store.ErrAccessDenied)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"lists", "--config", t.TempDir()}, &stdout, &stderr)

	if code != exitcode.AccessDenied {
		t.Errorf("expected exit code %d, got %d", exitcode.AccessDenied, code)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("token expired")) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestDispatcher_FactoryNotCalledForUnauthCommands(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (store.Store, error) {
		return nil, errors.New("factory should not run")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("exit code = %d, stderr = %q", code, stderr.String())
	}
}

func TestDispatcher_AliasRoutesToSameCommand(t *testing.T) {
	st := testutil.NewFakeStore()
	st.AddList("Groceries")
	st.Seed("Groceries", store.Item{Title: "Buy milk"})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(st))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(),
		[]string{"update", "--config", t.TempDir(), "--title", "Buy oat milk", "Groceries", "Buy milk"},
		&stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}
	items := st.ItemsIn("Groceries")
	if len(items) != 1 || items[0].Title != "Buy oat milk" {
		t.Errorf("items = %v", items)
	}
}
