// This file implements the similarity command, cosine lookups against a
// saved artifact.
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/adalundhe/lexatlas/core/artifact"
	"github.com/adalundhe/lexatlas/core/similarity"
	"github.com/spf13/cobra"
)

// =============================================================================
// Similarity Command Flags
// =============================================================================

var (
	similarityArtifactPath string
	similarityJSON         bool
)

// =============================================================================
// Similarity Command
// =============================================================================

var similarityCmd = &cobra.Command{
	Use:   "similarity WORD1 WORD2 [WORD3 WORD4 ...]",
	Short: "Query cosine similarity between word pairs",
	Long: `Query cosine similarity between word pairs from a saved artifact.
Arguments are consumed pairwise.

Examples:
  lexatlas similarity house home
  lexatlas similarity house home water sea time day`,
	Args: validatePairArgs,
	RunE: runSimilarity,
}

func init() {
	rootCmd.AddCommand(similarityCmd)

	similarityCmd.Flags().StringVarP(&similarityArtifactPath, "artifact", "a", filepath.Join("output", artifact.DefaultFileName), "Path to a saved artifact")
	similarityCmd.Flags().BoolVar(&similarityJSON, "json", false, "Output as JSON")
}

func validatePairArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("need at least one word pair")
	}
	if len(args)%2 != 0 {
		return fmt.Errorf("words must be given in pairs, got %d arguments", len(args))
	}
	return nil
}

func runSimilarity(cmd *cobra.Command, args []string) error {
	art, err := artifact.Load(similarityArtifactPath)
	if err != nil {
		return err
	}

	idx, err := similarity.NewIndex(art.Words, art.Embeddings)
	if err != nil {
		return err
	}

	type pairResult struct {
		A     string  `json:"a"`
		B     string  `json:"b"`
		Score float64 `json:"score"`
		Found bool    `json:"found"`
	}

	results := make([]pairResult, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		score, found := idx.Pair(args[i], args[i+1])
		results = append(results, pairResult{
			A: args[i], B: args[i+1], Score: float64(score), Found: found,
		})
	}

	w := cmd.OutOrStdout()
	if similarityJSON {
		return encodeIndentedJSON(w, results)
	}

	for _, result := range results {
		if !result.Found {
			fmt.Fprintf(w, "%s%s - %s: not in vocabulary%s\n",
				colorYellow, result.A, result.B, colorReset)
			continue
		}
		fmt.Fprintf(w, "%s - %s: %.3f\n", result.A, result.B, result.Score)
	}

	return nil
}
