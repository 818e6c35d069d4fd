package export

import (
	"fmt"
	"io"
	"sort"
)

// SizeReport ranks export results by on-disk size against the uncompressed
// JSON baseline.
type SizeReport struct {
	WordCount int      `json:"word_count"`
	Baseline  int64    `json:"baseline_bytes"`
	Entries   []Result `json:"entries"`
}

// NewSizeReport sorts results ascending by size. The baseline is the
// BaselineFormat entry when present, else the largest file.
func NewSizeReport(wordCount int, results []Result) *SizeReport {
	entries := make([]Result, len(results))
	copy(entries, results)

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Bytes != entries[j].Bytes {
			return entries[i].Bytes < entries[j].Bytes
		}
		return entries[i].Name < entries[j].Name
	})

	report := &SizeReport{WordCount: wordCount, Entries: entries}
	for _, r := range results {
		if r.Name == BaselineFormat {
			report.Baseline = r.Bytes
			break
		}
	}
	if report.Baseline == 0 && len(entries) > 0 {
		report.Baseline = entries[len(entries)-1].Bytes
	}

	return report
}

// Savings returns the percentage saved versus the baseline.
func (r *SizeReport) Savings(result Result) float64 {
	if r.Baseline == 0 {
		return 0
	}
	return 100 - float64(result.Bytes)/float64(r.Baseline)*100
}

// Smallest returns the best-compressing entry.
func (r *SizeReport) Smallest() Result {
	if len(r.Entries) == 0 {
		return Result{}
	}
	return r.Entries[0]
}

// Fprint writes the human-readable size table.
func (r *SizeReport) Fprint(w io.Writer) {
	fmt.Fprintf(w, "Compression results for %d words:\n", r.WordCount)

	for _, entry := range r.Entries {
		fmt.Fprintf(w, "  %-30s %10s  (%5.1f%% savings)\n",
			entry.Name, FormatBytes(entry.Bytes), r.Savings(entry))
	}

	if len(r.Entries) > 0 {
		smallest := r.Smallest()
		fmt.Fprintf(w, "\nSmallest: %s (%s)\n", smallest.Name, FormatBytes(smallest.Bytes))
		fmt.Fprintf(w, "Good balance for web delivery: %s\n", FormatBase64Brotli)
	}
}

// FormatBytes formats a byte count as a human-readable string.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
