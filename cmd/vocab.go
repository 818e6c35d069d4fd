// This file implements the vocab command, vocabulary selection without the
// embedding stages.
package cmd

import (
	"encoding/json"
	"io"

	"github.com/adalundhe/lexatlas/core/corpus"
	"github.com/adalundhe/lexatlas/core/pipeline"
	"github.com/spf13/cobra"
)

// =============================================================================
// Vocab Command Flags
// =============================================================================

var (
	vocabCorpus     string
	vocabDictionary string
	vocabWords      int
	vocabMinFreq    int
	vocabInclude    []string
	vocabExclude    []string
	vocabJSON       bool
	vocabList       bool
)

// =============================================================================
// Vocab Command
// =============================================================================

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Select the vocabulary and print the report",
	Long: `Run corpus frequency analysis and vocabulary selection without embedding.

Examples:
  lexatlas vocab --corpus brown.txt
  lexatlas vocab --corpus texts/ --words 500 --list`,
	RunE: runVocab,
}

func init() {
	rootCmd.AddCommand(vocabCmd)

	vocabCmd.Flags().StringVar(&vocabCorpus, "corpus", "", "Corpus text file or directory")
	vocabCmd.Flags().StringVar(&vocabDictionary, "dictionary", "", "Dictionary wordlist path")
	vocabCmd.Flags().IntVarP(&vocabWords, "words", "n", 0, "Vocabulary size")
	vocabCmd.Flags().IntVar(&vocabMinFreq, "min-freq", 0, "Minimum corpus frequency")
	vocabCmd.Flags().StringSliceVarP(&vocabInclude, "include", "I", nil, "Corpus include patterns")
	vocabCmd.Flags().StringSliceVarP(&vocabExclude, "exclude", "E", nil, "Corpus exclude patterns")
	vocabCmd.Flags().BoolVar(&vocabJSON, "json", false, "Output as JSON")
	vocabCmd.Flags().BoolVar(&vocabList, "list", false, "Print every selected word")
}

func runVocab(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("corpus") {
		cfg.Corpus.Path = vocabCorpus
	}
	if flags.Changed("dictionary") {
		cfg.Corpus.Dictionary = vocabDictionary
	}
	if flags.Changed("words") {
		cfg.Corpus.Words = vocabWords
	}
	if flags.Changed("min-freq") {
		cfg.Corpus.MinFreq = vocabMinFreq
	}
	if flags.Changed("include") {
		cfg.Corpus.Include = vocabInclude
	}
	if flags.Changed("exclude") {
		cfg.Corpus.Exclude = vocabExclude
	}

	selection, err := pipeline.SelectVocabulary(cfg, newLogger())
	if err != nil {
		return err
	}

	if vocabJSON {
		return outputJSONVocab(cmd.OutOrStdout(), selection)
	}
	return outputRichVocab(cmd.OutOrStdout(), selection)
}

// =============================================================================
// Output
// =============================================================================

type vocabOutputJSON struct {
	TotalTokens    int      `json:"total_tokens"`
	UniqueTokens   int      `json:"unique_tokens"`
	DictionarySize int      `json:"dictionary_size"`
	Selected       int      `json:"selected"`
	HighestFreq    int      `json:"highest_frequency"`
	LowestFreq     int      `json:"lowest_frequency"`
	Words          []string `json:"words,omitempty"`
}

func outputJSONVocab(w io.Writer, sel *corpus.Selection) error {
	out := vocabOutputJSON{
		TotalTokens:    sel.TotalTokens,
		UniqueTokens:   sel.UniqueTokens,
		DictionarySize: sel.DictionarySize,
		Selected:       sel.Len(),
		HighestFreq:    sel.HighestFrequency(),
		LowestFreq:     sel.LowestFrequency(),
	}
	if vocabList {
		out.Words = sel.Words
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputRichVocab(w io.Writer, sel *corpus.Selection) error {
	printSelectionReport(w, sel)

	if vocabList {
		for _, word := range sel.Words {
			if _, err := io.WriteString(w, word+"\n"); err != nil {
				return err
			}
		}
	}

	return nil
}
