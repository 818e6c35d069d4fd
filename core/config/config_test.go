package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Corpus.Words != 20000 {
		t.Errorf("Corpus.Words: got %d, want 20000", cfg.Corpus.Words)
	}
	if cfg.Corpus.MinFreq != 3 {
		t.Errorf("Corpus.MinFreq: got %d, want 3", cfg.Corpus.MinFreq)
	}
	if cfg.Embedding.Model != "all-MiniLM-L6-v2" {
		t.Errorf("Embedding.Model: got %s", cfg.Embedding.Model)
	}
	if cfg.Export.OutputDir != "output" {
		t.Errorf("Export.OutputDir: got %s", cfg.Export.OutputDir)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")

	content := `
corpus:
  path: /data/brown.txt
  words: 5000
embedding:
  model: hashed
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Corpus.Path != "/data/brown.txt" {
		t.Errorf("Corpus.Path: got %s", cfg.Corpus.Path)
	}
	if cfg.Corpus.Words != 5000 {
		t.Errorf("Corpus.Words: got %d, want 5000", cfg.Corpus.Words)
	}
	if cfg.Embedding.Model != "hashed" {
		t.Errorf("Embedding.Model: got %s, want hashed", cfg.Embedding.Model)
	}

	// Unset fields keep defaults.
	if cfg.Corpus.MinFreq != 3 {
		t.Errorf("Corpus.MinFreq should keep default 3, got %d", cfg.Corpus.MinFreq)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(cwd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no config file should use defaults: %v", err)
	}
	if cfg.Corpus.Words != 20000 {
		t.Errorf("Corpus.Words: got %d, want 20000", cfg.Corpus.Words)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("LEXATLAS_CORPUS", "/env/corpus")
	t.Setenv("LEXATLAS_WORDS", "123")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Corpus.Path != "/env/corpus" {
		t.Errorf("Corpus.Path: got %s, want /env/corpus", cfg.Corpus.Path)
	}
	if cfg.Corpus.Words != 123 {
		t.Errorf("Corpus.Words: got %d, want 123", cfg.Corpus.Words)
	}
}
