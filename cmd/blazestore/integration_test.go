package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/blazekit/blazestore/internal/store"
)

type testRow struct {
	ID   int64  `parquet:"id"`
	Name string `parquet:"name"`
	Age  int64  `parquet:"age"`
}

// runCommand executes the CLI with args and returns captured stdout.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	rootCmd.SetArgs(args)
	execErr := rootCmd.Execute()

	_ = w.Close()
	os.Stdout = old

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	if execErr != nil {
		t.Fatalf("command %v failed: %v", args, execErr)
	}

	return string(out)
}

func resetFlags() {
	rootFlag = ""
	formatFlag = "jsonl"
	limitFlag = 0
	absPathFlag = false
	rewriteOnly = false
}

func TestQueryCommand(t *testing.T) {
	resetFlags()
	root := t.TempDir()

	s := store.Open(root)
	rows := []testRow{
		{ID: 1, Name: "Alice", Age: 30},
		{ID: 2, Name: "Bob", Age: 25},
		{ID: 3, Name: "Charlie", Age: 35},
	}
	if err := store.Put(s, rows, "people"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	out := runCommand(t, "query", "SELECT * FROM people WHERE age > 28", "--root", root, "-f", "csv")

	if !strings.Contains(out, "Alice") || !strings.Contains(out, "Charlie") {
		t.Errorf("expected Alice and Charlie in output:\n%s", out)
	}
	if strings.Contains(out, "Bob") {
		t.Errorf("Bob should be filtered out:\n%s", out)
	}
}

func TestQueryCommandRewriteOnly(t *testing.T) {
	resetFlags()
	root := t.TempDir()

	out := runCommand(t, "query", "SELECT * FROM people", "--root", root, "--rewrite-only")

	if !strings.Contains(out, "read_parquet('") || !strings.Contains(out, "/people/**/*.parquet')") {
		t.Errorf("expected rewritten query in output:\n%s", out)
	}
}

func TestTablesCommand(t *testing.T) {
	resetFlags()
	root := t.TempDir()

	s := store.Open(root)
	if err := store.Put(s, []testRow{{ID: 1, Name: "x", Age: 1}}, "people"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	out := runCommand(t, "tables", "--root", root)
	if strings.TrimSpace(out) != "people" {
		t.Errorf("tables output = %q, want people", out)
	}
}

func TestInitCommand(t *testing.T) {
	resetFlags()
	root := t.TempDir()

	out := runCommand(t, "init", "--root", root)

	path := strings.TrimSpace(out)
	if _, err := os.Stat(path); err != nil {
		t.Errorf("init did not create settings file at %q: %v", path, err)
	}
}
