// Package similarity answers cosine-similarity queries over the labeled
// embedding matrix.
package similarity

import (
	"errors"

	"github.com/viterin/vek/vek32"
)

var (
	// ErrLengthMismatch indicates words and vectors differ in count.
	ErrLengthMismatch = errors.New("word and vector counts differ")
)

// Cosine returns the cosine similarity of two equal-length vectors.
func Cosine(a, b []float32) float32 {
	return vek32.CosineSimilarity(a, b)
}

// Index maps words to their embedding rows for similarity lookups.
type Index struct {
	words   []string
	byWord  map[string]int
	vectors [][]float32
}

// NewIndex builds an index over parallel word and vector slices.
func NewIndex(words []string, vectors [][]float32) (*Index, error) {
	if len(words) != len(vectors) {
		return nil, ErrLengthMismatch
	}

	byWord := make(map[string]int, len(words))
	for i, word := range words {
		byWord[word] = i
	}

	return &Index{words: words, byWord: byWord, vectors: vectors}, nil
}

// Len returns the number of indexed words.
func (idx *Index) Len() int {
	return len(idx.words)
}

// Contains reports whether word is indexed.
func (idx *Index) Contains(word string) bool {
	_, ok := idx.byWord[word]
	return ok
}

// Pair returns the similarity of two indexed words. ok is false when either
// word is missing.
func (idx *Index) Pair(a, b string) (sim float32, ok bool) {
	ia, okA := idx.byWord[a]
	ib, okB := idx.byWord[b]
	if !okA || !okB {
		return 0, false
	}
	return Cosine(idx.vectors[ia], idx.vectors[ib]), true
}

// Against returns the similarity of target to every indexed word, in index
// order. ok is false when target is missing.
func (idx *Index) Against(target string) (sims []float32, ok bool) {
	it, found := idx.byWord[target]
	if !found {
		return nil, false
	}

	targetVec := idx.vectors[it]
	sims = make([]float32, len(idx.vectors))
	for i, vec := range idx.vectors {
		sims[i] = Cosine(targetVec, vec)
	}
	return sims, true
}

// Word returns the word at index i.
func (idx *Index) Word(i int) string {
	return idx.words[i]
}

// SamplePair is a word pair shown in the post-run similarity spot check.
type SamplePair struct {
	A, B string
}

// SamplePairs are the default spot-check pairs.
var SamplePairs = []SamplePair{
	{"house", "home"},
	{"person", "man"},
	{"time", "day"},
	{"water", "sea"},
}
