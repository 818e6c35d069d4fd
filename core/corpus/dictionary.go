package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
)

var (
	// ErrDictionaryEmpty indicates the wordlist contained no usable entries.
	ErrDictionaryEmpty = errors.New("dictionary contains no words")
)

// Dictionary is a set of valid words loaded from a wordlist file.
type Dictionary struct {
	words map[string]struct{}
}

// LoadDictionary reads a one-word-per-line wordlist (e.g. /usr/share/dict/words).
// Entries are lowercased; entries with non-letter characters are skipped.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	dict := &Dictionary{words: make(map[string]struct{})}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || !isAlphabetic(word) {
			continue
		}
		dict.words[strings.ToLower(word)] = struct{}{}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	if len(dict.words) == 0 {
		return nil, ErrDictionaryEmpty
	}

	return dict, nil
}

// NewDictionary builds a dictionary from an explicit word slice.
func NewDictionary(words []string) *Dictionary {
	dict := &Dictionary{words: make(map[string]struct{}, len(words))}
	for _, word := range words {
		dict.words[strings.ToLower(word)] = struct{}{}
	}
	return dict
}

// Contains reports whether word is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[word]
	return ok
}

// Len returns the number of dictionary entries.
func (d *Dictionary) Len() int {
	return len(d.words)
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}
