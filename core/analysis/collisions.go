// Package analysis measures how much quantization squeezes distinct words
// together: identical quantized embedding rows, and identical quantized
// similarity scores against a target word. High collision rates mean a bit
// width is too aggressive to ship.
package analysis

import (
	"errors"
	"fmt"

	"github.com/adalundhe/lexatlas/core/quantize"
	"github.com/adalundhe/lexatlas/core/similarity"
)

const (
	// MaxRowGroups caps how many row-collision groups a report lists.
	MaxRowGroups = 5

	// MaxScoreGroups caps how many score-collision groups a report lists.
	MaxScoreGroups = 3

	// maxGroupWords caps listed words per score group.
	maxGroupWords = 5
)

var (
	// ErrLengthMismatch indicates words and embeddings differ in count.
	ErrLengthMismatch = errors.New("word and embedding counts differ")

	// ErrEmptyInput indicates there is nothing to analyze.
	ErrEmptyInput = errors.New("no embeddings to analyze")
)

// preferredTargets are tried in order when no target word is given.
var preferredTargets = []string{"house", "water", "time", "person", "day"}

// =============================================================================
// Row collisions
// =============================================================================

// RowReport summarizes duplicate quantized embedding rows.
type RowReport struct {
	Bits          int        `json:"bits"`
	TotalWords    int        `json:"total_words"`
	UniqueRows    int        `json:"unique_rows"`
	CollisionRate float64    `json:"collision_rate"`
	Groups        [][]string `json:"groups,omitempty"`
	GroupCount    int        `json:"group_count"`
}

// CollidingWords returns how many words share a row with at least one other.
func (r *RowReport) CollidingWords() int {
	return r.TotalWords - r.UniqueRows
}

// RowCollisions quantizes the embedding matrix to the given bit width and
// counts words whose quantized rows are byte-identical. Up to MaxRowGroups
// example groups are listed, ordered by first occurrence.
func RowCollisions(embeddings [][]float32, words []string, bits int) (*RowReport, error) {
	if len(embeddings) == 0 {
		return nil, ErrEmptyInput
	}
	if len(embeddings) != len(words) {
		return nil, ErrLengthMismatch
	}

	keys, err := rowKeys(embeddings, bits)
	if err != nil {
		return nil, err
	}

	membersByKey := make(map[string][]string, len(keys))
	var order []string
	for i, key := range keys {
		if _, seen := membersByKey[key]; !seen {
			order = append(order, key)
		}
		membersByKey[key] = append(membersByKey[key], words[i])
	}

	report := &RowReport{
		Bits:          bits,
		TotalWords:    len(words),
		UniqueRows:    len(membersByKey),
		CollisionRate: float64(len(words)-len(membersByKey)) / float64(len(words)),
	}

	for _, key := range order {
		members := membersByKey[key]
		if len(members) < 2 {
			continue
		}
		report.GroupCount++
		if len(report.Groups) < MaxRowGroups {
			report.Groups = append(report.Groups, members)
		}
	}

	return report, nil
}

func rowKeys(embeddings [][]float32, bits int) ([]string, error) {
	keys := make([]string, len(embeddings))

	switch bits {
	case 8:
		codes, _, err := quantize.Encode8(embeddings)
		if err != nil {
			return nil, err
		}
		offset := 0
		for i, row := range embeddings {
			keys[i] = string(codes[offset : offset+len(row)])
			offset += len(row)
		}
	case 16:
		codes, _, err := quantize.Encode16(embeddings)
		if err != nil {
			return nil, err
		}
		offset := 0
		for i, row := range embeddings {
			buf := make([]byte, 0, len(row)*2)
			for _, c := range codes[offset : offset+len(row)] {
				buf = append(buf, byte(c), byte(c>>8))
			}
			keys[i] = string(buf)
			offset += len(row)
		}
	default:
		return nil, quantize.ErrUnsupportedBits
	}

	return keys, nil
}

// =============================================================================
// Similarity-score collisions
// =============================================================================

// ScoreGroup is a set of words sharing one quantized similarity score.
type ScoreGroup struct {
	Score float64  `json:"score"`
	Count int      `json:"count"`
	Words []string `json:"words"`
}

// ScoreReport summarizes similarity-score bucketing against a target word.
type ScoreReport struct {
	Target        string       `json:"target"`
	Bits          int          `json:"bits"`
	UniqueScores  int          `json:"unique_scores"`
	GroupCount    int          `json:"group_count"`
	Groups        []ScoreGroup `json:"groups,omitempty"`
	CollisionRate float64      `json:"collision_rate"`
}

// ChooseTarget picks the target word for score analysis: the first preferred
// target present in the vocabulary, else the middle-ranked word.
func ChooseTarget(words []string) string {
	if len(words) == 0 {
		return ""
	}

	present := make(map[string]struct{}, len(words))
	for _, w := range words {
		present[w] = struct{}{}
	}
	for _, candidate := range preferredTargets {
		if _, ok := present[candidate]; ok {
			return candidate
		}
	}

	return words[len(words)/2]
}

// ScoreCollisions quantizes every word's cosine similarity to target into
// 2^bits buckets and reports buckets holding more than one word.
func ScoreCollisions(idx *similarity.Index, target string, bits int) (*ScoreReport, error) {
	sims, ok := idx.Against(target)
	if !ok {
		return nil, fmt.Errorf("target word %q not in vocabulary", target)
	}

	codes, params, err := quantize.QuantizeSlice(sims, bits)
	if err != nil {
		return nil, err
	}

	indicesByCode := make(map[uint16][]int, len(codes))
	var order []uint16
	for i, code := range codes {
		if _, seen := indicesByCode[code]; !seen {
			order = append(order, code)
		}
		indicesByCode[code] = append(indicesByCode[code], i)
	}

	report := &ScoreReport{
		Target:       target,
		Bits:         bits,
		UniqueScores: len(indicesByCode),
	}

	var colliding int
	for _, code := range order {
		members := indicesByCode[code]
		if len(members) < 2 {
			continue
		}

		report.GroupCount++
		colliding += len(members) - 1

		if len(report.Groups) < MaxScoreGroups {
			report.Groups = append(report.Groups, newScoreGroup(idx, code, params, members))
		}
	}

	report.CollisionRate = float64(colliding) / float64(idx.Len())
	return report, nil
}

func newScoreGroup(idx *similarity.Index, code uint16, params quantize.Params, members []int) ScoreGroup {
	group := ScoreGroup{Count: len(members)}

	// Reconstruct the score this bucket represents.
	if params.Scale != 0 {
		group.Score = float64(code)/params.Scale + params.Min
	} else {
		group.Score = params.Min
	}

	for _, i := range members {
		if len(group.Words) >= maxGroupWords {
			break
		}
		group.Words = append(group.Words, idx.Word(i))
	}

	return group
}
