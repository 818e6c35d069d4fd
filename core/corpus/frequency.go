package corpus

import "sort"

// FrequencyTable accumulates token occurrence counts.
type FrequencyTable struct {
	counts map[string]int
	total  int
}

// NewFrequencyTable creates an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Add records one occurrence of token.
func (t *FrequencyTable) Add(token string) {
	t.counts[token]++
	t.total++
}

// AddN records n occurrences of token.
func (t *FrequencyTable) AddN(token string, n int) {
	t.counts[token] += n
	t.total += n
}

// Count returns the number of occurrences of token.
func (t *FrequencyTable) Count(token string) int {
	return t.counts[token]
}

// TotalTokens returns the total number of token occurrences.
func (t *FrequencyTable) TotalTokens() int {
	return t.total
}

// UniqueTokens returns the number of distinct tokens.
func (t *FrequencyTable) UniqueTokens() int {
	return len(t.counts)
}

// Entry is a token with its occurrence count.
type Entry struct {
	Word  string
	Count int
}

// MostCommon returns all entries ordered by descending count. Ties are broken
// alphabetically so the ordering is deterministic across runs.
func (t *FrequencyTable) MostCommon() []Entry {
	entries := make([]Entry, 0, len(t.counts))
	for word, count := range t.counts {
		entries = append(entries, Entry{Word: word, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})

	return entries
}
