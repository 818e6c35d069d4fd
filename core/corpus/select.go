package corpus

import "errors"

// Selection defaults matching the shipped game vocabulary.
const (
	DefaultMaxWords     = 20000
	DefaultMinFrequency = 3
	DefaultMinLength    = 3
	DefaultMaxLength    = 12
)

var (
	// ErrNoEligibleWords indicates filtering removed every candidate.
	ErrNoEligibleWords = errors.New("no words survived selection filters")
)

// SelectConfig tunes vocabulary selection.
type SelectConfig struct {
	// MaxWords caps the vocabulary size. Zero means DefaultMaxWords.
	MaxWords int

	// MinFrequency is the minimum corpus occurrence count. Zero means
	// DefaultMinFrequency.
	MinFrequency int

	// MinLength and MaxLength bound word length in runes. Zero means the
	// package defaults.
	MinLength int
	MaxLength int
}

func (c SelectConfig) withDefaults() SelectConfig {
	if c.MaxWords <= 0 {
		c.MaxWords = DefaultMaxWords
	}
	if c.MinFrequency <= 0 {
		c.MinFrequency = DefaultMinFrequency
	}
	if c.MinLength <= 0 {
		c.MinLength = DefaultMinLength
	}
	if c.MaxLength <= 0 {
		c.MaxLength = DefaultMaxLength
	}
	return c
}

// Selection is a frequency-ranked vocabulary plus the statistics shown in the
// selection report.
type Selection struct {
	Words       []string
	Frequencies []int

	TotalTokens    int
	UniqueTokens   int
	DictionarySize int
}

// Len returns the number of selected words.
func (s *Selection) Len() int {
	return len(s.Words)
}

// HighestFrequency returns the occurrence count of the top-ranked word.
func (s *Selection) HighestFrequency() int {
	if len(s.Frequencies) == 0 {
		return 0
	}
	return s.Frequencies[0]
}

// LowestFrequency returns the occurrence count of the last-ranked word.
func (s *Selection) LowestFrequency() int {
	if len(s.Frequencies) == 0 {
		return 0
	}
	return s.Frequencies[len(s.Frequencies)-1]
}

// TopSample returns up to n of the most frequent selected words.
func (s *Selection) TopSample(n int) []string {
	if n > len(s.Words) {
		n = len(s.Words)
	}
	return s.Words[:n]
}

// MidSample returns up to n words from the middle of the ranking.
func (s *Selection) MidSample(n int) []string {
	mid := len(s.Words) / 2
	end := mid + n
	if end > len(s.Words) {
		end = len(s.Words)
	}
	return s.Words[mid:end]
}

// Select filters the frequency table against the dictionary, stopword set,
// length bounds, and minimum frequency, then returns the top words by
// descending frequency.
func Select(table *FrequencyTable, dict *Dictionary, config SelectConfig) (*Selection, error) {
	config = config.withDefaults()

	selection := &Selection{
		TotalTokens:    table.TotalTokens(),
		UniqueTokens:   table.UniqueTokens(),
		DictionarySize: dict.Len(),
	}

	for _, entry := range table.MostCommon() {
		if len(selection.Words) >= config.MaxWords {
			break
		}
		if !eligible(entry, dict, config) {
			continue
		}
		selection.Words = append(selection.Words, entry.Word)
		selection.Frequencies = append(selection.Frequencies, entry.Count)
	}

	if len(selection.Words) == 0 {
		return nil, ErrNoEligibleWords
	}

	return selection, nil
}

func eligible(entry Entry, dict *Dictionary, config SelectConfig) bool {
	runeLen := len([]rune(entry.Word))

	return dict.Contains(entry.Word) &&
		!IsStopword(entry.Word) &&
		runeLen >= config.MinLength &&
		runeLen <= config.MaxLength &&
		entry.Count >= config.MinFrequency
}
