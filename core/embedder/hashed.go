package embedder

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// HashedEmbedder produces deterministic embeddings from character n-gram
// feature hashing. It captures surface similarity only (shared prefixes,
// stems), not meaning, but it needs no model download and keeps the rest of
// the pipeline exercisable offline.
type HashedEmbedder struct {
	dimension int
}

func NewHashedEmbedder() *HashedEmbedder {
	return &HashedEmbedder{dimension: HashedDimension}
}

func (h *HashedEmbedder) Dimension() int {
	return h.dimension
}

func (h *HashedEmbedder) ModelName() string {
	return string(ModelHashed)
}

func (h *HashedEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return h.embed(text), nil
}

func (h *HashedEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		results[i] = h.embed(text)
	}
	return results, nil
}

func (h *HashedEmbedder) Close() error {
	return nil
}

func (h *HashedEmbedder) embed(text string) []float32 {
	vec := make([]float32, h.dimension)
	word := strings.ToLower(strings.TrimSpace(text))

	h.addFeatures(vec, ngrams(word, 3), 0.45)
	h.addFeatures(vec, ngrams(word, 2), 0.25)
	h.addFeatures(vec, []string{word}, 0.30)

	normalize(vec)
	return vec
}

func (h *HashedEmbedder) addFeatures(vec []float32, features []string, weight float64) {
	if len(features) == 0 {
		return
	}

	w := float32(weight / math.Sqrt(float64(len(features))))

	for _, feature := range features {
		hash := fnvHash64(feature)
		for probe := range 4 {
			state := hash ^ (uint64(probe) * 0x9e3779b97f4a7c15)
			idx := int(state % uint64(h.dimension))
			sign := float32(1)
			if state&(1<<63) != 0 {
				sign = -1
			}
			vec[idx] += w * sign
		}
	}
}

func ngrams(text string, n int) []string {
	if len(text) < n {
		return nil
	}

	grams := make([]string, 0, len(text)-n+1)
	for i := 0; i <= len(text)-n; i++ {
		grams = append(grams, text[i:i+n])
	}
	return grams
}

func fnvHash64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

func normalize(vec []float32) {
	var mag float64
	for _, v := range vec {
		mag += float64(v * v)
	}
	if mag == 0 {
		return
	}
	invMag := float32(1.0 / math.Sqrt(mag))
	for i := range vec {
		vec[i] *= invMag
	}
}
