package embedder

import (
	"context"
	"hash/fnv"
	"math"
)

// MockEmbedder returns pseudo-random unit vectors seeded by the input text.
// Test use only.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (m *MockEmbedder) Dimension() int {
	return m.dimension
}

func (m *MockEmbedder) ModelName() string {
	return "mock"
}

func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return seededVector(text, m.dimension), nil
}

func (m *MockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		results[i] = seededVector(text, m.dimension)
	}
	return results, nil
}

func (m *MockEmbedder) Close() error {
	return nil
}

// Knuth MMIX LCG constants.
const (
	lcgMult = 6364136223846793005
	lcgInc  = 1442695040888963407
)

func seededVector(text string, dim int) []float32 {
	vec := make([]float32, dim)

	h := fnv.New64a()
	h.Write([]byte(text))
	state := h.Sum64()

	for i := range dim {
		state = state*lcgMult + lcgInc
		vec[i] = (float32(state>>32)/float32(math.MaxUint32))*2 - 1
	}

	normalize(vec)
	return vec
}
