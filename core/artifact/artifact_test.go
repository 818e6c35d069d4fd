package artifact

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleArtifact(t *testing.T) *Artifact {
	t.Helper()
	a, err := New(
		[]string{"house", "water"},
		[][]float32{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}},
		[][]float32{{1, 2}, {3, 4}},
		"all-MiniLM-L6-v2", "pca", "corpus.txt",
	)
	require.NoError(t, err)
	return a
}

func TestNewStampsMetadata(t *testing.T) {
	a := sampleArtifact(t)

	assert.Equal(t, 2, a.Metadata.WordCount)
	assert.Equal(t, 3, a.Metadata.EmbeddingDim)
	assert.Equal(t, "all-MiniLM-L6-v2", a.Metadata.ModelName)
	assert.Equal(t, "pca", a.Metadata.Projection)
	assert.NotEmpty(t, a.Metadata.RunID)
	assert.False(t, a.Metadata.GeneratedAt.IsZero())
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, nil, nil, "m", "pca", "s")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = New([]string{"a"}, [][]float32{{1}, {2}}, [][]float32{{1, 2}}, "m", "pca", "s")
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = New(
		[]string{"a", "b"},
		[][]float32{{1, 2}, {1}},
		[][]float32{{1, 2}, {3, 4}},
		"m", "pca", "s",
	)
	assert.ErrorIs(t, err, ErrRaggedMatrix)
}

func TestFlatten(t *testing.T) {
	a := sampleArtifact(t)

	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, a.FlatEmbeddings())
	assert.Equal(t, []float32{1, 2, 3, 4}, a.FlatCoordinates())
	assert.Equal(t, 3, a.Dim())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	a := sampleArtifact(t)
	path := filepath.Join(t.TempDir(), DefaultFileName)

	require.NoError(t, a.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, a.Words, loaded.Words)
	assert.Equal(t, a.Embeddings, loaded.Embeddings)
	assert.Equal(t, a.Coordinates, loaded.Coordinates)
	assert.Equal(t, a.Metadata.RunID, loaded.Metadata.RunID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
