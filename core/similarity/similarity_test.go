package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 0}, []float32{2, 0}), 1e-6)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 3}), 1e-6)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-4, 0}), 1e-6)
}

func TestIndexPair(t *testing.T) {
	idx, err := NewIndex(
		[]string{"east", "west", "north"},
		[][]float32{{1, 0}, {-1, 0}, {0, 1}},
	)
	require.NoError(t, err)

	sim, ok := idx.Pair("east", "west")
	require.True(t, ok)
	assert.InDelta(t, -1.0, sim, 1e-6)

	sim, ok = idx.Pair("east", "north")
	require.True(t, ok)
	assert.InDelta(t, 0.0, sim, 1e-6)

	_, ok = idx.Pair("east", "missing")
	assert.False(t, ok)
}

func TestIndexAgainst(t *testing.T) {
	idx, err := NewIndex(
		[]string{"a", "b", "c"},
		[][]float32{{1, 0}, {1, 0}, {0, 1}},
	)
	require.NoError(t, err)

	sims, ok := idx.Against("a")
	require.True(t, ok)
	require.Len(t, sims, 3)
	assert.InDelta(t, 1.0, sims[0], 1e-6)
	assert.InDelta(t, 1.0, sims[1], 1e-6)
	assert.InDelta(t, 0.0, sims[2], 1e-6)

	_, ok = idx.Against("missing")
	assert.False(t, ok)
}

func TestNewIndexLengthMismatch(t *testing.T) {
	_, err := NewIndex([]string{"a"}, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}
