package embedder

import "testing"

func TestSpecLookup(t *testing.T) {
	spec, err := Spec(ModelMiniLML6)
	if err != nil {
		t.Fatalf("Spec: %v", err)
	}
	if spec.Dimension != 384 {
		t.Errorf("dimension: got %d, want 384", spec.Dimension)
	}
	if spec.HFRepo == "" {
		t.Error("MiniLM spec should have a HuggingFace repo")
	}

	if _, err := Spec("no-such-model"); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestNewSelectsHashed(t *testing.T) {
	e, err := New(Config{Model: ModelHashed})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	if _, ok := e.(*HashedEmbedder); !ok {
		t.Errorf("expected *HashedEmbedder, got %T", e)
	}
}

func TestNewONNXEmbedderRejectsHashed(t *testing.T) {
	if _, err := NewONNXEmbedder(ONNXConfig{Model: ModelHashed, CacheDir: t.TempDir()}); err == nil {
		t.Error("expected error: hashed model has no ONNX weights")
	}
}

func TestNewONNXEmbedderNotReadyBeforeLoad(t *testing.T) {
	e, err := NewONNXEmbedder(ONNXConfig{Model: ModelMiniLML6, CacheDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewONNXEmbedder: %v", err)
	}
	defer e.Close()

	if e.IsReady() {
		t.Error("embedder should not be ready before EnsureModel")
	}
	if e.Dimension() != 384 {
		t.Errorf("dimension: got %d, want 384", e.Dimension())
	}
}
