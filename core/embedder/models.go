package embedder

import "fmt"

type ModelID string

const (
	ModelMiniLML6 ModelID = "all-MiniLM-L6-v2"
	ModelBGESmall ModelID = "bge-small-en-v1.5"
	ModelHashed   ModelID = "hashed"
)

type ModelSpec struct {
	ID        ModelID
	Name      string
	HFRepo    string
	Dimension int
	SizeBytes int64
}

// HashedDimension matches the transformer models so artifacts keep the same
// shape whichever embedder produced them.
const HashedDimension = 384

var ModelRegistry = map[ModelID]ModelSpec{
	ModelMiniLML6: {
		ID:        ModelMiniLML6,
		Name:      "all-MiniLM-L6-v2",
		HFRepo:    "sentence-transformers/all-MiniLM-L6-v2",
		Dimension: 384,
		SizeBytes: 90_000_000,
	},
	ModelBGESmall: {
		ID:        ModelBGESmall,
		Name:      "bge-small-en-v1.5",
		HFRepo:    "BAAI/bge-small-en-v1.5",
		Dimension: 384,
		SizeBytes: 133_000_000,
	},
	ModelHashed: {
		ID:        ModelHashed,
		Name:      "hashed",
		HFRepo:    "",
		Dimension: HashedDimension,
		SizeBytes: 0,
	},
}

// Spec resolves a model ID against the registry.
func Spec(id ModelID) (ModelSpec, error) {
	spec, ok := ModelRegistry[id]
	if !ok {
		return ModelSpec{}, fmt.Errorf("unknown embedding model %q", id)
	}
	return spec, nil
}

func (id ModelID) String() string {
	return string(id)
}
