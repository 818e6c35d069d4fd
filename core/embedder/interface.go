package embedder

import "context"

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
	ModelName() string
	Close() error
}

type Config struct {
	Model          ModelID
	CacheDir       string
	OrtLibraryPath string
	UseGPU         bool
}

func DefaultConfig() Config {
	return Config{
		Model: ModelMiniLML6,
	}
}

// New builds an embedder for the configured model. The hashed model needs no
// runtime; everything else goes through ONNX inference.
func New(cfg Config) (Embedder, error) {
	if cfg.Model == "" {
		cfg.Model = ModelMiniLML6
	}

	if cfg.Model == ModelHashed {
		return NewHashedEmbedder(), nil
	}

	return NewONNXEmbedder(ONNXConfig{
		Model:          cfg.Model,
		CacheDir:       cfg.CacheDir,
		OrtLibraryPath: cfg.OrtLibraryPath,
		UseGPU:         cfg.UseGPU,
	})
}
