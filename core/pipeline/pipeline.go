// Package pipeline runs the end-to-end dataset build: vocabulary selection,
// embedding inference, 2-D projection, multi-format export, and quantization
// collision analysis.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adalundhe/lexatlas/core/analysis"
	"github.com/adalundhe/lexatlas/core/artifact"
	"github.com/adalundhe/lexatlas/core/config"
	"github.com/adalundhe/lexatlas/core/corpus"
	"github.com/adalundhe/lexatlas/core/embedder"
	"github.com/adalundhe/lexatlas/core/export"
	"github.com/adalundhe/lexatlas/core/projection"
	"github.com/adalundhe/lexatlas/core/similarity"
)

const defaultBatchSize = 256

var (
	// ErrNilEmbedder indicates no embedder was supplied.
	ErrNilEmbedder = errors.New("pipeline requires an embedder")
)

// Options configures a pipeline run.
type Options struct {
	Config   *config.Config
	Embedder embedder.Embedder
	Logger   *slog.Logger

	// Progress, when set, is called after each embedding batch.
	Progress func(done, total int)
}

// PairSimilarity is one spot-check result.
type PairSimilarity struct {
	A, B  string
	Score float32
	Found bool
}

// Result aggregates everything a run produced.
type Result struct {
	Selection   *corpus.Selection
	Artifact    *artifact.Artifact
	Exports     []export.Result
	SizeReport  *export.SizeReport
	RowReport   *analysis.RowReport
	ScoreReport *analysis.ScoreReport
	Pairs       []PairSimilarity
	EmbedTime   time.Duration
	ProjectTime time.Duration
}

// Run executes the full pipeline and writes all outputs under the configured
// output directory.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Embedder == nil {
		return nil, ErrNilEmbedder
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	selection, err := SelectVocabulary(opts.Config, logger)
	if err != nil {
		return nil, err
	}

	result := &Result{Selection: selection}

	embeddings, embedTime, err := embedWords(ctx, opts, selection.Words, logger)
	if err != nil {
		return nil, err
	}
	result.EmbedTime = embedTime

	projectStart := time.Now()
	coords, err := projection.Project(embeddings)
	if err != nil {
		return nil, fmt.Errorf("project embeddings: %w", err)
	}
	result.ProjectTime = time.Since(projectStart)
	logger.Info("projected embeddings",
		"method", projection.Method,
		"components", projection.Components,
		"elapsed", result.ProjectTime)

	art, err := artifact.New(
		selection.Words, embeddings, coords,
		opts.Embedder.ModelName(), projection.Method, opts.Config.Corpus.Path,
	)
	if err != nil {
		return nil, fmt.Errorf("assemble artifact: %w", err)
	}
	result.Artifact = art

	outputDir := opts.Config.Export.OutputDir
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := art.Save(filepath.Join(outputDir, artifact.DefaultFileName)); err != nil {
		return nil, fmt.Errorf("save artifact: %w", err)
	}

	exports, err := export.NewExporter(outputDir).Run(art)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Exports = exports

	result.SizeReport = export.NewSizeReport(len(art.Words), result.Exports)

	if err := analyze(result, opts.Config, logger); err != nil {
		return nil, err
	}

	return result, nil
}

// SelectVocabulary runs corpus scanning, dictionary filtering, and frequency
// ranking from config.
func SelectVocabulary(cfg *config.Config, logger *slog.Logger) (*corpus.Selection, error) {
	logger.Info("scanning corpus", "path", cfg.Corpus.Path)

	table, err := corpus.NewScanner(corpus.ScanConfig{
		Path:            cfg.Corpus.Path,
		IncludePatterns: cfg.Corpus.Include,
		ExcludePatterns: cfg.Corpus.Exclude,
	}).Scan()
	if err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}

	dict, err := corpus.LoadDictionary(cfg.Corpus.Dictionary)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	selection, err := corpus.Select(table, dict, corpus.SelectConfig{
		MaxWords:     cfg.Corpus.Words,
		MinFrequency: cfg.Corpus.MinFreq,
	})
	if err != nil {
		return nil, fmt.Errorf("select vocabulary: %w", err)
	}

	logger.Info("selected vocabulary",
		"total_tokens", selection.TotalTokens,
		"unique_tokens", selection.UniqueTokens,
		"dictionary_size", selection.DictionarySize,
		"selected", selection.Len(),
		"highest_freq", selection.HighestFrequency(),
		"lowest_freq", selection.LowestFrequency())

	return selection, nil
}

func embedWords(ctx context.Context, opts Options, words []string, logger *slog.Logger) ([][]float32, time.Duration, error) {
	batchSize := opts.Config.Embedding.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	logger.Info("generating embeddings",
		"model", opts.Embedder.ModelName(),
		"words", len(words),
		"batch_size", batchSize)

	start := time.Now()
	embeddings := make([][]float32, 0, len(words))

	for offset := 0; offset < len(words); offset += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		end := offset + batchSize
		if end > len(words) {
			end = len(words)
		}

		batch, err := opts.Embedder.EmbedBatch(ctx, words[offset:end])
		if err != nil {
			return nil, 0, fmt.Errorf("embed batch at %d: %w", offset, err)
		}
		embeddings = append(embeddings, batch...)

		if opts.Progress != nil {
			opts.Progress(end, len(words))
		}
	}

	elapsed := time.Since(start)
	logger.Info("generated embeddings",
		"count", len(embeddings),
		"dimension", opts.Embedder.Dimension(),
		"elapsed", elapsed)

	return embeddings, elapsed, nil
}

func analyze(result *Result, cfg *config.Config, logger *slog.Logger) error {
	art := result.Artifact

	idx, err := similarity.NewIndex(art.Words, art.Embeddings)
	if err != nil {
		return fmt.Errorf("build similarity index: %w", err)
	}

	for _, pair := range similarity.SamplePairs {
		score, found := idx.Pair(pair.A, pair.B)
		result.Pairs = append(result.Pairs, PairSimilarity{
			A: pair.A, B: pair.B, Score: score, Found: found,
		})
	}

	rowReport, err := analysis.RowCollisions(art.Embeddings, art.Words, 8)
	if err != nil {
		return fmt.Errorf("row collision analysis: %w", err)
	}
	result.RowReport = rowReport
	logger.Info("row collision analysis",
		"bits", rowReport.Bits,
		"unique_rows", rowReport.UniqueRows,
		"collision_rate", rowReport.CollisionRate)

	target := cfg.Export.Target
	if target == "" {
		target = analysis.ChooseTarget(art.Words)
	}

	scoreReport, err := analysis.ScoreCollisions(idx, target, 8)
	if err != nil {
		return fmt.Errorf("similarity collision analysis: %w", err)
	}
	result.ScoreReport = scoreReport
	logger.Info("similarity collision analysis",
		"target", scoreReport.Target,
		"unique_scores", scoreReport.UniqueScores,
		"collision_rate", scoreReport.CollisionRate)

	return nil
}
