package cli

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestCandidatesOrderAndDedup(t *testing.T) {
	t.Setenv(EnvFileVar, "/etc/catalog/prod.env")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	loader := AddEnvFlag(fs, ".env", "")
	if err := fs.Parse([]string{"--env", "deploy/.env"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	got := loader.Candidates()
	want := []string{"/etc/catalog/prod.env", "deploy/.env", ".env"}
	if len(got) != len(want) {
		t.Fatalf("unexpected candidates: %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidate %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadOverridesEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("CATALOG_TEST_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(EnvFileVar, "")
	t.Setenv("CATALOG_TEST_VALUE", "from-process")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	loader := AddEnvFlag(fs, filepath.Join(dir, "missing.env"), "")
	if err := fs.Parse([]string{"--env", path}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != path {
		t.Fatalf("unexpected loaded path: %q", loaded)
	}
	if got := os.Getenv("CATALOG_TEST_VALUE"); got != "from-file" {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestLoadReportsMissingFiles(t *testing.T) {
	t.Setenv(EnvFileVar, "")

	dir := t.TempDir()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	loader := AddEnvFlag(fs, filepath.Join(dir, "none.env"), "")
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loader.Load(); err == nil {
		t.Fatalf("expected error when no file exists")
	}
}
