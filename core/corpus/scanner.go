// Package corpus selects the game vocabulary from a reference text corpus.
// Words are ranked by how often they occur in real text, filtered against a
// dictionary wordlist, and trimmed to the shapes and lengths that make good
// guessing words.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gobwas/glob"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrCorpusPathEmpty indicates the corpus path was not specified.
	ErrCorpusPathEmpty = errors.New("corpus path cannot be empty")

	// ErrCorpusNotExist indicates the corpus path does not exist.
	ErrCorpusNotExist = errors.New("corpus path does not exist")

	// ErrCorpusEmpty indicates no tokens were found in the corpus.
	ErrCorpusEmpty = errors.New("corpus contains no usable tokens")

	// ErrInvalidPattern indicates a glob pattern could not be compiled.
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

// =============================================================================
// Scanner
// =============================================================================

// ScanConfig configures corpus scanning.
type ScanConfig struct {
	// Path is a text file or a directory of text files.
	Path string

	// IncludePatterns limits which files are read when Path is a directory
	// (e.g. "*.txt"). Empty means all files.
	IncludePatterns []string

	// ExcludePatterns skips matching files.
	ExcludePatterns []string
}

// Scanner reads a corpus and accumulates lowercase token frequencies.
type Scanner struct {
	config          ScanConfig
	includeMatchers []glob.Glob
	excludeMatchers []glob.Glob
}

// NewScanner creates a Scanner. Patterns are not compiled until Scan is called.
func NewScanner(config ScanConfig) *Scanner {
	return &Scanner{config: config}
}

// Scan walks the corpus path and returns accumulated token frequencies.
// Only purely alphabetic tokens are counted; everything is lowercased.
func (s *Scanner) Scan() (*FrequencyTable, error) {
	if err := s.validateConfig(); err != nil {
		return nil, err
	}

	if err := s.compilePatterns(); err != nil {
		return nil, err
	}

	table := NewFrequencyTable()

	info, err := os.Stat(s.config.Path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := s.scanFile(s.config.Path, table); err != nil {
			return nil, err
		}
	} else if err := s.scanDirectory(table); err != nil {
		return nil, err
	}

	if table.TotalTokens() == 0 {
		return nil, ErrCorpusEmpty
	}

	return table, nil
}

func (s *Scanner) validateConfig() error {
	if s.config.Path == "" {
		return ErrCorpusPathEmpty
	}

	if _, err := os.Stat(s.config.Path); os.IsNotExist(err) {
		return ErrCorpusNotExist
	}

	return nil
}

func (s *Scanner) compilePatterns() error {
	var err error

	s.includeMatchers, err = compileGlobs(s.config.IncludePatterns)
	if err != nil {
		return err
	}

	s.excludeMatchers, err = compileGlobs(s.config.ExcludePatterns)
	if err != nil {
		return err
	}

	return nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		matcher, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Join(ErrInvalidPattern, err)
		}
		matchers = append(matchers, matcher)
	}

	return matchers, nil
}

func (s *Scanner) scanDirectory(table *FrequencyTable) error {
	return filepath.WalkDir(s.config.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !s.shouldInclude(d.Name()) {
			return nil
		}
		return s.scanFile(path, table)
	})
}

func (s *Scanner) shouldInclude(name string) bool {
	for _, matcher := range s.excludeMatchers {
		if matcher.Match(name) {
			return false
		}
	}

	if len(s.includeMatchers) == 0 {
		return true
	}

	for _, matcher := range s.includeMatchers {
		if matcher.Match(name) {
			return true
		}
	}

	return false
}

func (s *Scanner) scanFile(path string, table *FrequencyTable) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		for _, token := range Tokenize(scanner.Text()) {
			table.Add(token)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read corpus file %s: %w", path, err)
	}

	return nil
}

// Tokenize splits a line into lowercase alphabetic tokens. Tokens joined to
// digits, hyphens, or apostrophes ("don't", "co-op", "b2b") are discarded
// outright rather than split, matching the isalpha treatment of the reference
// corpus. Other punctuation acts as a plain separator.
func Tokenize(line string) []string {
	var tokens []string
	var current strings.Builder
	alphabetic := true

	flush := func() {
		if current.Len() > 0 && alphabetic {
			tokens = append(tokens, strings.ToLower(current.String()))
		}
		current.Reset()
		alphabetic = true
	}

	for _, r := range line {
		switch {
		case unicode.IsLetter(r):
			current.WriteRune(r)
		case r == '\'' || r == '-' || unicode.IsDigit(r):
			alphabetic = false
		default:
			flush()
		}
	}
	flush()

	return tokens
}
