// Package artifact defines the generated dataset passed between pipeline
// stages and persisted between CLI invocations.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// DefaultFileName is where generate saves the working artifact.
const DefaultFileName = "artifact.json"

var (
	// ErrShapeMismatch indicates words, embeddings, and coordinates disagree
	// in length.
	ErrShapeMismatch = errors.New("words, embeddings, and coordinates must align")

	// ErrEmpty indicates an artifact with no words.
	ErrEmpty = errors.New("artifact contains no words")

	// ErrRaggedMatrix indicates embedding rows of differing widths.
	ErrRaggedMatrix = errors.New("embedding rows have differing dimensions")

	// ErrBadCoordinates indicates coordinate rows that are not 2-D points.
	ErrBadCoordinates = errors.New("coordinate rows must have exactly two components")
)

// Metadata describes how an artifact was produced.
type Metadata struct {
	WordCount    int       `json:"n_words"`
	EmbeddingDim int       `json:"embedding_dim"`
	ModelName    string    `json:"model_name"`
	Projection   string    `json:"projection"`
	GeneratedAt  time.Time `json:"generated_at"`
	Source       string    `json:"source"`
	RunID        string    `json:"run_id"`
}

// Artifact is the full generated dataset: the vocabulary, its embedding
// matrix, and the 2-D map coordinates.
type Artifact struct {
	Words       []string    `json:"words"`
	Embeddings  [][]float32 `json:"embeddings"`
	Coordinates [][]float32 `json:"coordinates"`
	Metadata    Metadata    `json:"metadata"`
}

// New assembles and validates an artifact, stamping run metadata.
func New(words []string, embeddings, coordinates [][]float32, modelName, projection, source string) (*Artifact, error) {
	a := &Artifact{
		Words:       words,
		Embeddings:  embeddings,
		Coordinates: coordinates,
		Metadata: Metadata{
			WordCount:   len(words),
			ModelName:   modelName,
			Projection:  projection,
			GeneratedAt: time.Now().UTC(),
			Source:      source,
			RunID:       uuid.NewString(),
		},
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	a.Metadata.EmbeddingDim = len(embeddings[0])
	return a, nil
}

// Validate checks the artifact's internal shape invariants.
func (a *Artifact) Validate() error {
	if len(a.Words) == 0 {
		return ErrEmpty
	}
	if len(a.Embeddings) != len(a.Words) || len(a.Coordinates) != len(a.Words) {
		return ErrShapeMismatch
	}

	dim := len(a.Embeddings[0])
	for _, row := range a.Embeddings {
		if len(row) != dim {
			return ErrRaggedMatrix
		}
	}

	for _, row := range a.Coordinates {
		if len(row) != 2 {
			return ErrBadCoordinates
		}
	}

	return nil
}

// Dim returns the embedding dimensionality.
func (a *Artifact) Dim() int {
	if len(a.Embeddings) == 0 {
		return 0
	}
	return len(a.Embeddings[0])
}

// FlatEmbeddings returns the embedding matrix row-major.
func (a *Artifact) FlatEmbeddings() []float32 {
	return flatten(a.Embeddings)
}

// FlatCoordinates returns the coordinate matrix row-major.
func (a *Artifact) FlatCoordinates() []float32 {
	return flatten(a.Coordinates)
}

func flatten(matrix [][]float32) []float32 {
	var total int
	for _, row := range matrix {
		total += len(row)
	}

	flat := make([]float32, 0, total)
	for _, row := range matrix {
		flat = append(flat, row...)
	}
	return flat
}

// Save writes the artifact as JSON.
func (a *Artifact) Save(path string) error {
	if err := a.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(a); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	return nil
}

// Load reads and validates an artifact written by Save.
func Load(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact file: %w", err)
	}
	defer f.Close()

	var a Artifact
	if err := json.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return &a, nil
}
