// This file implements the generate command, the full dataset build.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/adalundhe/lexatlas/core/config"
	"github.com/adalundhe/lexatlas/core/embedder"
	"github.com/adalundhe/lexatlas/core/pipeline"
	"github.com/spf13/cobra"
)

// =============================================================================
// Generate Command Flags
// =============================================================================

var (
	generateCorpus     string
	generateDictionary string
	generateWords      int
	generateMinFreq    int
	generateInclude    []string
	generateExclude    []string
	generateModel      string
	generateModelCache string
	generateOrtLibrary string
	generateUseGPU     bool
	generateBatchSize  int
	generateOutput     string
	generateTarget     string
	generateJSON       bool
)

// =============================================================================
// Generate Command
// =============================================================================

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the full dataset",
	Long: `Run the full dataset build: select the vocabulary by corpus frequency,
compute sentence embeddings, project them to 2-D coordinates, export every
candidate client format, and analyze quantization collisions.

Examples:
  lexatlas generate --corpus brown.txt
  lexatlas generate --corpus texts/ --include '*.txt' --words 5000
  lexatlas generate --corpus brown.txt --model hashed --output out/`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateCorpus, "corpus", "", "Corpus text file or directory")
	generateCmd.Flags().StringVar(&generateDictionary, "dictionary", "", "Dictionary wordlist path")
	generateCmd.Flags().IntVarP(&generateWords, "words", "n", 0, "Vocabulary size")
	generateCmd.Flags().IntVar(&generateMinFreq, "min-freq", 0, "Minimum corpus frequency")
	generateCmd.Flags().StringSliceVarP(&generateInclude, "include", "I", nil, "Corpus include patterns (e.g. '*.txt')")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "E", nil, "Corpus exclude patterns")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "Embedding model (all-MiniLM-L6-v2, bge-small-en-v1.5, hashed)")
	generateCmd.Flags().StringVar(&generateModelCache, "model-cache", "", "Model download cache directory")
	generateCmd.Flags().StringVar(&generateOrtLibrary, "ort-library", "", "Path to the ONNX Runtime shared library")
	generateCmd.Flags().BoolVar(&generateUseGPU, "gpu", false, "Run inference on GPU")
	generateCmd.Flags().IntVarP(&generateBatchSize, "batch-size", "b", 0, "Embedding batch size")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory")
	generateCmd.Flags().StringVar(&generateTarget, "target", "", "Target word for similarity collision analysis")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Output as JSON")
}

// =============================================================================
// Generate Execution
// =============================================================================

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGenerateFlags(cmd, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(cmd.OutOrStderr(), "\nInterrupted. Cleaning up...")
		cancel()
	}()

	emb, err := embedder.New(embedder.Config{
		Model:          embedder.ModelID(cfg.Embedding.Model),
		CacheDir:       cfg.Embedding.CacheDir,
		OrtLibraryPath: cfg.Embedding.OrtLibrary,
		UseGPU:         cfg.Embedding.UseGPU,
	})
	if err != nil {
		return fmt.Errorf("create embedder: %w", err)
	}
	defer emb.Close()

	progress := newEmbedProgress(cmd.OutOrStderr(), !generateJSON)

	result, err := pipeline.Run(ctx, pipeline.Options{
		Config:   cfg,
		Embedder: emb,
		Logger:   newLogger(),
		Progress: progress.update,
	})
	progress.finish()
	if err != nil {
		return err
	}

	if generateJSON {
		return outputJSONGenerate(cmd.OutOrStdout(), result)
	}
	outputRichGenerate(cmd.OutOrStdout(), result)
	return nil
}

// applyGenerateFlags overlays explicitly set flags on the file config.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("corpus") {
		cfg.Corpus.Path = generateCorpus
	}
	if flags.Changed("dictionary") {
		cfg.Corpus.Dictionary = generateDictionary
	}
	if flags.Changed("words") {
		cfg.Corpus.Words = generateWords
	}
	if flags.Changed("min-freq") {
		cfg.Corpus.MinFreq = generateMinFreq
	}
	if flags.Changed("include") {
		cfg.Corpus.Include = generateInclude
	}
	if flags.Changed("exclude") {
		cfg.Corpus.Exclude = generateExclude
	}
	if flags.Changed("model") {
		cfg.Embedding.Model = generateModel
	}
	if flags.Changed("model-cache") {
		cfg.Embedding.CacheDir = generateModelCache
	}
	if flags.Changed("ort-library") {
		cfg.Embedding.OrtLibrary = generateOrtLibrary
	}
	if flags.Changed("gpu") {
		cfg.Embedding.UseGPU = generateUseGPU
	}
	if flags.Changed("batch-size") {
		cfg.Embedding.BatchSize = generateBatchSize
	}
	if flags.Changed("output") {
		cfg.Export.OutputDir = generateOutput
	}
	if flags.Changed("target") {
		cfg.Export.Target = generateTarget
	}
}

// =============================================================================
// Output
// =============================================================================

// generateOutputJSON is the JSON shape for scripted runs.
type generateOutputJSON struct {
	Words         int                     `json:"words"`
	EmbeddingDim  int                     `json:"embedding_dim"`
	Model         string                  `json:"model"`
	RunID         string                  `json:"run_id"`
	EmbedSeconds  float64                 `json:"embed_seconds"`
	Exports       []exportEntryJSON       `json:"exports"`
	RowCollisions json.RawMessage         `json:"row_collisions"`
	Scores        json.RawMessage         `json:"similarity_collisions"`
	Pairs         []pairJSON              `json:"sample_pairs"`
}

type exportEntryJSON struct {
	Name    string  `json:"name"`
	File    string  `json:"file"`
	Bytes   int64   `json:"bytes"`
	Savings float64 `json:"savings_percent"`
}

type pairJSON struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
	Found bool    `json:"found"`
}

func outputJSONGenerate(w io.Writer, result *pipeline.Result) error {
	out := generateOutputJSON{
		Words:        result.Artifact.Metadata.WordCount,
		EmbeddingDim: result.Artifact.Metadata.EmbeddingDim,
		Model:        result.Artifact.Metadata.ModelName,
		RunID:        result.Artifact.Metadata.RunID,
		EmbedSeconds: result.EmbedTime.Seconds(),
	}

	for _, entry := range result.SizeReport.Entries {
		out.Exports = append(out.Exports, exportEntryJSON{
			Name:    entry.Name,
			File:    entry.File,
			Bytes:   entry.Bytes,
			Savings: result.SizeReport.Savings(entry),
		})
	}

	rows, err := json.Marshal(result.RowReport)
	if err != nil {
		return err
	}
	out.RowCollisions = rows

	scores, err := json.Marshal(result.ScoreReport)
	if err != nil {
		return err
	}
	out.Scores = scores

	for _, pair := range result.Pairs {
		out.Pairs = append(out.Pairs, pairJSON{
			A: pair.A, B: pair.B, Score: float64(pair.Score), Found: pair.Found,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputRichGenerate(w io.Writer, result *pipeline.Result) {
	printSelectionReport(w, result.Selection)

	fmt.Fprintf(w, "\n%s%sEmbeddings%s\n", colorBold, colorCyan, colorReset)
	fmt.Fprintf(w, "%s%s%s\n", colorGray, strings.Repeat("-", 40), colorReset)
	fmt.Fprintf(w, "%sModel:%s     %s\n", colorGray, colorReset, result.Artifact.Metadata.ModelName)
	fmt.Fprintf(w, "%sShape:%s     %d x %d\n", colorGray, colorReset,
		result.Artifact.Metadata.WordCount, result.Artifact.Metadata.EmbeddingDim)
	fmt.Fprintf(w, "%sElapsed:%s   %s\n", colorGray, colorReset, result.EmbedTime.Round(10*time.Millisecond))

	if len(result.Pairs) > 0 {
		fmt.Fprintf(w, "\n%sSample similarities:%s\n", colorGray, colorReset)
		for _, pair := range result.Pairs {
			if !pair.Found {
				continue
			}
			fmt.Fprintf(w, "  %s - %s: %.3f\n", pair.A, pair.B, pair.Score)
		}
	}

	fmt.Fprintf(w, "\n%s%sExport Sizes%s\n", colorBold, colorCyan, colorReset)
	fmt.Fprintf(w, "%s%s%s\n", colorGray, strings.Repeat("-", 40), colorReset)
	result.SizeReport.Fprint(w)

	printRowCollisions(w, result.RowReport)
	printScoreCollisions(w, result.ScoreReport)
}

// =============================================================================
// Progress Tracking
// =============================================================================

// embedProgress is a single-line progress display for embedding batches.
type embedProgress struct {
	writer    io.Writer
	enabled   bool
	lastLen   int
	startTime time.Time
}

func newEmbedProgress(w io.Writer, enabled bool) *embedProgress {
	return &embedProgress{
		writer:    w,
		enabled:   enabled,
		startTime: time.Now(),
	}
}

func (p *embedProgress) update(done, total int) {
	if !p.enabled {
		return
	}

	elapsed := time.Since(p.startTime)
	rate := float64(done) / elapsed.Seconds()

	line := fmt.Sprintf("\r%sEmbedding:%s %d/%d  %sRate:%s %.0f words/s",
		colorGray, colorReset, done, total,
		colorGreen, colorReset, rate)

	if p.lastLen > len(line) {
		line += strings.Repeat(" ", p.lastLen-len(line))
	}
	p.lastLen = len(line)

	fmt.Fprint(p.writer, line)
}

func (p *embedProgress) finish() {
	if !p.enabled || p.lastLen == 0 {
		return
	}
	fmt.Fprint(p.writer, "\r"+strings.Repeat(" ", p.lastLen)+"\r")
}
