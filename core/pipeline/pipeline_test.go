package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adalundhe/lexatlas/core/artifact"
	"github.com/adalundhe/lexatlas/core/config"
	"github.com/adalundhe/lexatlas/core/embedder"
	"github.com/adalundhe/lexatlas/core/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWords = []string{
	"house", "water", "time", "person", "stone", "river", "mountain", "tree",
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	// Corpus: every word at least 3 times, with descending frequencies.
	var b strings.Builder
	for i, word := range testWords {
		for range 3 + len(testWords) - i {
			b.WriteString(word)
			b.WriteString(" ")
		}
	}
	corpusPath := filepath.Join(dir, "corpus.txt")
	require.NoError(t, os.WriteFile(corpusPath, []byte(b.String()), 0644))

	dictPath := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(dictPath, []byte(strings.Join(testWords, "\n")), 0644))

	cfg := config.DefaultConfig()
	cfg.Corpus.Path = corpusPath
	cfg.Corpus.Dictionary = dictPath
	cfg.Corpus.Words = 100
	cfg.Export.OutputDir = filepath.Join(dir, "output")
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunFullPipeline(t *testing.T) {
	cfg := testConfig(t)

	var progressCalls int
	result, err := Run(context.Background(), Options{
		Config:   cfg,
		Embedder: embedder.NewMockEmbedder(16),
		Logger:   quietLogger(),
		Progress: func(done, total int) { progressCalls++ },
	})
	require.NoError(t, err)

	require.NotNil(t, result.Selection)
	assert.Equal(t, len(testWords), result.Selection.Len())
	assert.Equal(t, "house", result.Selection.Words[0])

	require.NotNil(t, result.Artifact)
	assert.Equal(t, 16, result.Artifact.Dim())
	assert.Len(t, result.Artifact.Coordinates, len(testWords))
	assert.Equal(t, "mock", result.Artifact.Metadata.ModelName)
	assert.Equal(t, "pca", result.Artifact.Metadata.Projection)

	assert.Len(t, result.Exports, len(export.Formats()))
	require.NotNil(t, result.SizeReport)
	assert.Positive(t, result.SizeReport.Baseline)

	require.NotNil(t, result.RowReport)
	assert.Equal(t, len(testWords), result.RowReport.TotalWords)

	require.NotNil(t, result.ScoreReport)
	assert.Equal(t, "house", result.ScoreReport.Target)

	assert.Positive(t, progressCalls)

	// Pairs whose words exist in the vocabulary resolve.
	for _, pair := range result.Pairs {
		if pair.A == "time" && pair.B == "day" {
			assert.False(t, pair.Found, "day not in vocabulary")
		}
	}

	// Saved artifact loads back.
	loaded, err := artifact.Load(filepath.Join(cfg.Export.OutputDir, artifact.DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, result.Artifact.Words, loaded.Words)
}

func TestRunBatchesRespectBatchSize(t *testing.T) {
	cfg := testConfig(t)
	cfg.Embedding.BatchSize = 3

	var batches int
	_, err := Run(context.Background(), Options{
		Config:   cfg,
		Embedder: embedder.NewMockEmbedder(8),
		Logger:   quietLogger(),
		Progress: func(done, total int) { batches++ },
	})
	require.NoError(t, err)

	// 8 words at batch size 3 -> 3 batches.
	assert.Equal(t, 3, batches)
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{
		Config:   cfg,
		Embedder: embedder.NewMockEmbedder(8),
		Logger:   quietLogger(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRequiresEmbedder(t *testing.T) {
	_, err := Run(context.Background(), Options{Config: config.DefaultConfig()})
	assert.ErrorIs(t, err, ErrNilEmbedder)
}

func TestRunTargetOverride(t *testing.T) {
	cfg := testConfig(t)
	cfg.Export.Target = "river"

	result, err := Run(context.Background(), Options{
		Config:   cfg,
		Embedder: embedder.NewMockEmbedder(8),
		Logger:   quietLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, "river", result.ScoreReport.Target)
}
