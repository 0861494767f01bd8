package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{
		"new", "list", "info", "delete", "open", "export", "import",
		"render", "tree", "serve", "cache", "completion",
	}
	have := map[string]bool{}
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestDocumentName(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if got := c.documentName(nil); got != "default" {
		t.Errorf("documentName(nil) = %q, want configured default", got)
	}
	if got := c.documentName([]string{"plans"}); got != "plans" {
		t.Errorf("documentName(args) = %q, want %q", got, "plans")
	}
}

func TestDataDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	dir, err := dataDir()
	if err != nil {
		t.Fatalf("dataDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-data", appName) {
		t.Errorf("dataDir = %q", dir)
	}
}

// run executes the CLI as a user would, against isolated XDG directories.
func run(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func isolateEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmp, "cache"))
	return tmp
}

func TestDocumentLifecycle(t *testing.T) {
	tmp := isolateEnv(t)

	if err := run(t, "new", "demo"); err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := run(t, "new", "demo"); err == nil {
		t.Fatal("second new without --force should fail")
	}
	if err := run(t, "new", "demo", "--force"); err != nil {
		t.Fatalf("new --force: %v", err)
	}

	out := filepath.Join(tmp, "demo.json")
	if err := run(t, "export", "demo", "-o", out); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("export wrote no file: %v", err)
	}

	if err := run(t, "import", out, "--name", "copy"); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := run(t, "info", "copy"); err != nil {
		t.Fatalf("info after import: %v", err)
	}

	if err := run(t, "delete", "copy"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := run(t, "info", "copy"); err == nil {
		t.Fatal("info after delete should fail")
	}
}

func TestInfoUnknownDocument(t *testing.T) {
	isolateEnv(t)
	if err := run(t, "info", "missing"); err == nil {
		t.Fatal("info on missing document should fail")
	}
}
