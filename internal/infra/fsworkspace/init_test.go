package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/infra/config"
	"github.com/aalvaropc/cardlist/internal/usecase/parse"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "Burn Decks")

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "cardlist.yaml"))
	assertFileExists(t, filepath.Join(tmp, "lists", "example.txt"))
	assertFileExists(t, filepath.Join(tmp, "imports"))
	assertFileExists(t, filepath.Join(tmp, ".cardlist", "logs"))
}

func TestInitializer_Init_RendersValidConfig(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "Burn Decks")

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	cfg, err := config.LoadFile(filepath.Join(tmp, "cardlist.yaml"))
	if err != nil {
		t.Fatalf("rendered config does not load: %v", err)
	}
	if cfg.Lookup.UserAgent != "burn-decks/dev" {
		t.Fatalf("expected rendered user agent, got %q", cfg.Lookup.UserAgent)
	}
	if cfg.Resolve.Policy != domain.PolicyContinue {
		t.Fatalf("expected continue policy, got %s", cfg.Resolve.Policy)
	}
}

func TestInitializer_Init_ExampleListParses(t *testing.T) {
	tmp := t.TempDir()
	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(tmp, "lists", "example.txt"))
	if err != nil {
		t.Fatalf("read example: %v", err)
	}
	entries := parse.All(string(b))
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries in the example list, got %d", len(entries))
	}
	if last := entries[len(entries)-1]; last.Quantity != 1 || last.Name != "Jace, the Mind Sculptor" {
		t.Fatalf("unexpected last entry: %+v", last)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "cardlist.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing cardlist.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read cardlist.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected cardlist.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read cardlist.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "cardlist:") {
		t.Fatalf("expected cardlist.yaml overwritten with template, got %q", string(b))
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}
