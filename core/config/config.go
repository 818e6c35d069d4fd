// Package config loads pipeline settings from a yaml file with environment
// overrides. Command-line flags take precedence over everything here.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no --config flag
// is given.
const DefaultFileName = "lexatlas.yaml"

type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Export    ExportConfig    `yaml:"export"`
}

type CorpusConfig struct {
	Path       string   `yaml:"path"`
	Dictionary string   `yaml:"dictionary"`
	Words      int      `yaml:"words"`
	MinFreq    int      `yaml:"min_frequency"`
	Include    []string `yaml:"include"`
	Exclude    []string `yaml:"exclude"`
}

type EmbeddingConfig struct {
	Model      string `yaml:"model"`
	CacheDir   string `yaml:"cache_dir"`
	OrtLibrary string `yaml:"ort_library"`
	UseGPU     bool   `yaml:"use_gpu"`
	BatchSize  int    `yaml:"batch_size"`
}

type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
	Target    string `yaml:"target"`
}

func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Dictionary: "/usr/share/dict/words",
			Words:      20000,
			MinFreq:    3,
		},
		Embedding: EmbeddingConfig{
			Model:     "all-MiniLM-L6-v2",
			BatchSize: 256,
		},
		Export: ExportConfig{
			OutputDir: "output",
		},
	}
}

// Load reads path over the defaults. An empty path falls back to
// DefaultFileName; a missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults apply.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvironment(cfg)
	return cfg, nil
}

// applyEnvironment maps a small set of LEXATLAS_* variables over the file
// values, mirroring how deployment environments pin paths.
func applyEnvironment(cfg *Config) {
	if v := os.Getenv("LEXATLAS_CORPUS"); v != "" {
		cfg.Corpus.Path = v
	}
	if v := os.Getenv("LEXATLAS_DICTIONARY"); v != "" {
		cfg.Corpus.Dictionary = v
	}
	if v := os.Getenv("LEXATLAS_MODEL_CACHE"); v != "" {
		cfg.Embedding.CacheDir = v
	}
	if v := os.Getenv("LEXATLAS_ORT_LIBRARY"); v != "" {
		cfg.Embedding.OrtLibrary = v
	}
	if v := os.Getenv("LEXATLAS_WORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Corpus.Words = n
		}
	}
}
