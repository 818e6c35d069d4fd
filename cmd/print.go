// Shared report rendering for the rich (non-JSON) output mode.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/adalundhe/lexatlas/core/analysis"
	"github.com/adalundhe/lexatlas/core/corpus"
)

func encodeIndentedJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printSelectionReport(w io.Writer, sel *corpus.Selection) {
	fmt.Fprintf(w, "%s%sVocabulary Selection%s\n", colorBold, colorCyan, colorReset)
	fmt.Fprintf(w, "%s%s%s\n", colorGray, strings.Repeat("-", 40), colorReset)
	fmt.Fprintf(w, "%sCorpus tokens:%s   %d\n", colorGray, colorReset, sel.TotalTokens)
	fmt.Fprintf(w, "%sUnique tokens:%s   %d\n", colorGray, colorReset, sel.UniqueTokens)
	fmt.Fprintf(w, "%sDictionary:%s      %d words\n", colorGray, colorReset, sel.DictionarySize)
	fmt.Fprintf(w, "%sSelected:%s        %d words\n", colorGray, colorReset, sel.Len())
	fmt.Fprintf(w, "%sFrequency range:%s %d to %d occurrences\n", colorGray, colorReset,
		sel.HighestFrequency(), sel.LowestFrequency())
	fmt.Fprintf(w, "%sMost frequent:%s   %s\n", colorGray, colorReset,
		strings.Join(sel.TopSample(15), ", "))
	fmt.Fprintf(w, "%sMid-range:%s       %s\n", colorGray, colorReset,
		strings.Join(sel.MidSample(10), ", "))
}

func printRowCollisions(w io.Writer, report *analysis.RowReport) {
	fmt.Fprintf(w, "\n%s%sCollision Analysis (%d-bit quantization)%s\n",
		colorBold, colorCyan, report.Bits, colorReset)
	fmt.Fprintf(w, "%s%s%s\n", colorGray, strings.Repeat("-", 40), colorReset)
	fmt.Fprintf(w, "%sTotal words:%s       %d\n", colorGray, colorReset, report.TotalWords)
	fmt.Fprintf(w, "%sUnique rows:%s       %d\n", colorGray, colorReset, report.UniqueRows)
	fmt.Fprintf(w, "%sCollision rate:%s    %.1f%%\n", colorGray, colorReset, report.CollisionRate*100)
	fmt.Fprintf(w, "%sColliding words:%s   %d\n", colorGray, colorReset, report.CollidingWords())

	if report.GroupCount == 0 {
		fmt.Fprintf(w, "%sNo collisions found.%s\n", colorGreen, colorReset)
		return
	}

	for _, group := range report.Groups {
		fmt.Fprintf(w, "  %d words share an embedding: %s\n", len(group), strings.Join(group, ", "))
	}
	if remaining := report.GroupCount - len(report.Groups); remaining > 0 {
		fmt.Fprintf(w, "  %s... and %d more collision groups%s\n", colorGray, remaining, colorReset)
	}
}

func printScoreCollisions(w io.Writer, report *analysis.ScoreReport) {
	fmt.Fprintf(w, "\n%s%sSimilarity Collisions (target: %q)%s\n",
		colorBold, colorCyan, report.Target, colorReset)
	fmt.Fprintf(w, "%s%s%s\n", colorGray, strings.Repeat("-", 40), colorReset)
	fmt.Fprintf(w, "%sUnique scores:%s     %d\n", colorGray, colorReset, report.UniqueScores)
	fmt.Fprintf(w, "%sShared buckets:%s    %d\n", colorGray, colorReset, report.GroupCount)
	fmt.Fprintf(w, "%sCollision rate:%s    %.1f%%\n", colorGray, colorReset, report.CollisionRate*100)

	for _, group := range report.Groups {
		fmt.Fprintf(w, "  score %.3f: %s (%d total words)\n",
			group.Score, strings.Join(group.Words, ", "), group.Count)
		if extra := group.Count - len(group.Words); extra > 0 {
			fmt.Fprintf(w, "    %s... and %d more words%s\n", colorGray, extra, colorReset)
		}
	}
}
