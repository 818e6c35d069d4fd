// This file implements the export command, re-running serialization and
// collision analysis from a saved artifact.
package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/adalundhe/lexatlas/core/analysis"
	"github.com/adalundhe/lexatlas/core/artifact"
	"github.com/adalundhe/lexatlas/core/export"
	"github.com/adalundhe/lexatlas/core/similarity"
	"github.com/spf13/cobra"
)

// =============================================================================
// Export Command Flags
// =============================================================================

var (
	exportArtifactPath string
	exportOutput       string
	exportTarget       string
	exportJSON         bool
	exportSkipAnalysis bool
)

// =============================================================================
// Export Command
// =============================================================================

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-export a saved artifact in every format",
	Long: `Re-run serialization benchmarking and collision analysis from an
artifact.json written by a previous generate run, without re-embedding.

Examples:
  lexatlas export --artifact output/artifact.json
  lexatlas export --artifact output/artifact.json --output resized/`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportArtifactPath, "artifact", "a", filepath.Join("output", artifact.DefaultFileName), "Path to a saved artifact")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output directory (default: the artifact's directory)")
	exportCmd.Flags().StringVar(&exportTarget, "target", "", "Target word for similarity collision analysis")
	exportCmd.Flags().BoolVar(&exportJSON, "json", false, "Output as JSON")
	exportCmd.Flags().BoolVar(&exportSkipAnalysis, "skip-analysis", false, "Skip collision analysis")
}

func runExport(cmd *cobra.Command, args []string) error {
	art, err := artifact.Load(exportArtifactPath)
	if err != nil {
		return err
	}

	outputDir := exportOutput
	if outputDir == "" {
		outputDir = filepath.Dir(exportArtifactPath)
	}

	results, err := export.NewExporter(outputDir).Run(art)
	if err != nil {
		return err
	}
	report := export.NewSizeReport(len(art.Words), results)

	var rowReport *analysis.RowReport
	var scoreReport *analysis.ScoreReport
	if !exportSkipAnalysis {
		rowReport, scoreReport, err = runExportAnalysis(art)
		if err != nil {
			return err
		}
	}

	if exportJSON {
		return outputJSONExport(cmd.OutOrStdout(), report, rowReport, scoreReport)
	}
	outputRichExport(cmd.OutOrStdout(), report, rowReport, scoreReport)
	return nil
}

func runExportAnalysis(art *artifact.Artifact) (*analysis.RowReport, *analysis.ScoreReport, error) {
	rowReport, err := analysis.RowCollisions(art.Embeddings, art.Words, 8)
	if err != nil {
		return nil, nil, fmt.Errorf("row collision analysis: %w", err)
	}

	idx, err := similarity.NewIndex(art.Words, art.Embeddings)
	if err != nil {
		return nil, nil, err
	}

	target := exportTarget
	if target == "" {
		target = analysis.ChooseTarget(art.Words)
	}

	scoreReport, err := analysis.ScoreCollisions(idx, target, 8)
	if err != nil {
		return nil, nil, fmt.Errorf("similarity collision analysis: %w", err)
	}

	return rowReport, scoreReport, nil
}

// =============================================================================
// Output
// =============================================================================

type exportOutputJSON struct {
	Report *export.SizeReport    `json:"report"`
	Rows   *analysis.RowReport   `json:"row_collisions,omitempty"`
	Scores *analysis.ScoreReport `json:"similarity_collisions,omitempty"`
}

func outputJSONExport(w io.Writer, report *export.SizeReport, rows *analysis.RowReport, scores *analysis.ScoreReport) error {
	return encodeIndentedJSON(w, exportOutputJSON{Report: report, Rows: rows, Scores: scores})
}

func outputRichExport(w io.Writer, report *export.SizeReport, rows *analysis.RowReport, scores *analysis.ScoreReport) {
	report.Fprint(w)
	if rows != nil {
		printRowCollisions(w, rows)
	}
	if scores != nil {
		printScoreCollisions(w, scores)
	}
}
