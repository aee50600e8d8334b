package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aalvaropc/cardlist/internal/domain"
)

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := t.TempDir()

	// Partial config (only the lookup timeout)
	content := []byte("cardlist:\n  lookup:\n    timeout: 3s\n")
	if err := os.WriteFile(filepath.Join(root, "cardlist.yaml"), content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Lookup.Timeout != 3*time.Second {
		t.Fatalf("expected timeout=3s, got=%s", cfg.Lookup.Timeout)
	}
	if cfg.Lookup.BaseURL != "https://api.scryfall.com" {
		t.Fatalf("expected default base url, got=%s", cfg.Lookup.BaseURL)
	}
	if cfg.Resolve.Policy != domain.PolicyContinue {
		t.Fatalf("expected default policy=continue, got=%s", cfg.Resolve.Policy)
	}
	if cfg.Paths.ListsDir != "lists" || cfg.Paths.ImportsDir != "imports" {
		t.Fatalf("expected default paths, got=%+v", cfg.Paths)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
	if cfg != domain.DefaultConfig() {
		t.Fatalf("expected defaults alongside the error")
	}
}
