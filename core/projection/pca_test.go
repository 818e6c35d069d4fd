package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectShape(t *testing.T) {
	embeddings := [][]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}

	coords, err := Project(embeddings)
	require.NoError(t, err)

	require.Len(t, coords, 4)
	for _, c := range coords {
		assert.Len(t, c, Components)
	}
}

func TestProjectDeterministic(t *testing.T) {
	embeddings := [][]float32{
		{0.1, 0.9, 0.3},
		{0.8, 0.2, 0.5},
		{0.4, 0.4, 0.9},
	}

	first, err := Project(embeddings)
	require.NoError(t, err)
	second, err := Project(embeddings)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProjectPreservesDominantAxis(t *testing.T) {
	// Points spread along one axis with slight noise on another. The first
	// principal component should capture the spread, so the projected first
	// coordinate must separate the extremes much more than the second.
	embeddings := [][]float32{
		{-10, 0.1, 0},
		{-5, -0.1, 0},
		{0, 0.1, 0},
		{5, -0.1, 0},
		{10, 0.1, 0},
	}

	coords, err := Project(embeddings)
	require.NoError(t, err)

	spreadX := math.Abs(float64(coords[4][0] - coords[0][0]))
	spreadY := math.Abs(float64(coords[4][1] - coords[0][1]))
	assert.Greater(t, spreadX, 15.0)
	assert.Less(t, spreadY, 1.0)
}

func TestProjectCentered(t *testing.T) {
	embeddings := [][]float32{
		{100, 200, 300},
		{101, 201, 301},
		{102, 202, 302},
		{99, 199, 299},
	}

	coords, err := Project(embeddings)
	require.NoError(t, err)

	var sumX, sumY float64
	for _, c := range coords {
		sumX += float64(c[0])
		sumY += float64(c[1])
	}
	assert.InDelta(t, 0, sumX, 1e-3)
	assert.InDelta(t, 0, sumY, 1e-3)
}

func TestProjectErrors(t *testing.T) {
	_, err := Project(nil)
	assert.ErrorIs(t, err, ErrNoVectors)

	_, err = Project([][]float32{{1, 2, 3}})
	assert.ErrorIs(t, err, ErrTooFewVectors)

	_, err = Project([][]float32{{1}, {2}})
	assert.ErrorIs(t, err, ErrDimensionTooLow)

	_, err = Project([][]float32{{1, 2, 3}, {1, 2}})
	assert.ErrorIs(t, err, ErrRaggedInput)
}
