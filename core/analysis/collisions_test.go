package analysis

import (
	"testing"

	"github.com/adalundhe/lexatlas/core/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowCollisionsDetectsDuplicates(t *testing.T) {
	embeddings := [][]float32{
		{0.0, 1.0},
		{0.0, 1.0}, // exact duplicate of row 0
		{1.0, 0.0},
		{0.001, 1.0}, // quantizes onto row 0 at 8 bits
	}
	words := []string{"cat", "feline", "dog", "kitten"}

	report, err := RowCollisions(embeddings, words, 8)
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalWords)
	assert.Equal(t, 2, report.UniqueRows)
	assert.InDelta(t, 0.5, report.CollisionRate, 1e-9)
	assert.Equal(t, 2, report.CollidingWords())
	require.Equal(t, 1, report.GroupCount)
	assert.Equal(t, []string{"cat", "feline", "kitten"}, report.Groups[0])
}

func TestRowCollisionsNoDuplicates(t *testing.T) {
	embeddings := [][]float32{
		{0.0, 1.0},
		{0.5, 0.5},
		{1.0, 0.0},
	}

	report, err := RowCollisions(embeddings, []string{"a", "b", "c"}, 8)
	require.NoError(t, err)

	assert.Equal(t, 3, report.UniqueRows)
	assert.Zero(t, report.CollisionRate)
	assert.Zero(t, report.GroupCount)
	assert.Empty(t, report.Groups)
}

func TestRowCollisions16BitFinerThan8(t *testing.T) {
	// Rows differ by less than one 8-bit step but more than one 16-bit step.
	embeddings := [][]float32{
		{0.0, 1.0},
		{0.001, 1.0},
	}
	words := []string{"a", "b"}

	coarse, err := RowCollisions(embeddings, words, 8)
	require.NoError(t, err)
	fine, err := RowCollisions(embeddings, words, 16)
	require.NoError(t, err)

	assert.Equal(t, 1, coarse.UniqueRows)
	assert.Equal(t, 2, fine.UniqueRows)
}

func TestRowCollisionsErrors(t *testing.T) {
	_, err := RowCollisions(nil, nil, 8)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = RowCollisions([][]float32{{1}}, []string{"a", "b"}, 8)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestChooseTarget(t *testing.T) {
	assert.Equal(t, "water", ChooseTarget([]string{"stone", "water", "tree"}))
	assert.Equal(t, "house", ChooseTarget([]string{"water", "house"}))

	// No preferred target present: middle word.
	assert.Equal(t, "b", ChooseTarget([]string{"a", "b", "c"}))
	assert.Equal(t, "", ChooseTarget(nil))
}

func TestScoreCollisions(t *testing.T) {
	// a and b are identical, so they share a similarity score against any
	// target. c sits alone at a different score.
	idx, err := similarity.NewIndex(
		[]string{"target", "a", "b", "c"},
		[][]float32{{1, 0}, {0.6, 0.8}, {0.6, 0.8}, {0, 1}},
	)
	require.NoError(t, err)

	report, err := ScoreCollisions(idx, "target", 8)
	require.NoError(t, err)

	assert.Equal(t, "target", report.Target)
	assert.Equal(t, 3, report.UniqueScores)
	require.Equal(t, 1, report.GroupCount)
	assert.Equal(t, []string{"a", "b"}, report.Groups[0].Words)
	assert.Equal(t, 2, report.Groups[0].Count)
	assert.InDelta(t, 0.6, report.Groups[0].Score, 0.01)
	assert.InDelta(t, 0.25, report.CollisionRate, 1e-9)
}

func TestScoreCollisionsMissingTarget(t *testing.T) {
	idx, err := similarity.NewIndex([]string{"a"}, [][]float32{{1}})
	require.NoError(t, err)

	_, err = ScoreCollisions(idx, "missing", 8)
	assert.Error(t, err)
}
