package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/cardlist/internal/domain"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse(FileName, []byte("cardlist:\n  resolve:\n    policy: fail_fast\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def := domain.DefaultConfig()
	if cfg.Resolve.Policy != domain.PolicyFailFast {
		t.Fatalf("expected fail_fast, got %s", cfg.Resolve.Policy)
	}
	if cfg.Lookup != def.Lookup {
		t.Fatalf("expected default lookup config, got %+v", cfg.Lookup)
	}
	if cfg.Paths != def.Paths {
		t.Fatalf("expected default paths, got %+v", cfg.Paths)
	}
	if cfg.Resolve.Concurrency != 1 {
		t.Fatalf("expected default concurrency 1, got %d", cfg.Resolve.Concurrency)
	}
}

func TestParse_Overrides(t *testing.T) {
	content := `
cardlist:
  lookup:
    base_url: http://localhost:8080
    timeout: 2500ms
    rate_per_second: 0
    user_agent: deckbuilder/2.0
    colors_field: color_identity
  resolve:
    policy: continue
    concurrency: 4
  paths:
    lists_dir: decks
    imports_dir: out
`
	cfg, err := Parse(FileName, []byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.Config{
		Lookup: domain.LookupConfig{
			BaseURL:       "http://localhost:8080",
			Timeout:       2500 * time.Millisecond,
			RatePerSecond: 0,
			UserAgent:     "deckbuilder/2.0",
			ColorsField:   "color_identity",
		},
		Resolve: domain.ResolveConfig{Policy: domain.PolicyContinue, Concurrency: 4},
		Paths:   domain.PathsConfig{ListsDir: "decks", ImportsDir: "out"},
	}
	if cfg != want {
		t.Fatalf("unexpected config:\n got=%+v\nwant=%+v", cfg, want)
	}
}

func TestParse_InvalidFields(t *testing.T) {
	cases := map[string]string{
		"lookup.timeout":         "cardlist:\n  lookup:\n    timeout: soon\n",
		"lookup.base_url":        "cardlist:\n  lookup:\n    base_url: ftp://cards\n",
		"lookup.rate_per_second": "cardlist:\n  lookup:\n    rate_per_second: -1\n",
		"lookup.colors_field":    "cardlist:\n  lookup:\n    colors_field: mana_cost\n",
		"resolve.policy":         "cardlist:\n  resolve:\n    policy: yolo\n",
		"resolve.concurrency":    "cardlist:\n  resolve:\n    concurrency: 0\n",
	}
	for field, content := range cases {
		_, err := Parse(FileName, []byte(content))
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Fatalf("%s: expected invalid config, got %v", field, err)
		}
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("%s: expected field name in error, got %v", field, err)
		}
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	cfg, err := Parse(FileName, []byte("cardlist: [unterminated"))
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
	if cfg != domain.DefaultConfig() {
		t.Fatalf("expected defaults alongside the error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("cardlist:\n  paths:\n    lists_dir: decks\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Paths.ListsDir != "decks" {
		t.Fatalf("expected lists dir override, got %s", cfg.Paths.ListsDir)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), FileName)); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found for missing file, got %v", err)
	}
}

func TestValidate_Defaults(t *testing.T) {
	if err := Validate("", domain.DefaultConfig()); err != nil {
		t.Fatalf("expected defaults to be valid: %v", err)
	}
}
