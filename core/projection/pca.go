// Package projection flattens high-dimensional embeddings to the 2-D map
// coordinates the game renders. Principal component analysis over the centered
// embedding matrix; deterministic for a given input.
package projection

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Components is the coordinate dimensionality shipped to the client.
const Components = 2

// Method names the projection recorded in artifact metadata.
const Method = "pca"

var (
	// ErrNoVectors indicates an empty embedding matrix.
	ErrNoVectors = errors.New("no vectors to project")

	// ErrTooFewVectors indicates fewer rows than projection components.
	ErrTooFewVectors = errors.New("need at least as many vectors as components")

	// ErrDimensionTooLow indicates embeddings narrower than the projection.
	ErrDimensionTooLow = errors.New("embedding dimension below projection components")

	// ErrRaggedInput indicates rows of differing width.
	ErrRaggedInput = errors.New("embedding rows have differing dimensions")
)

// Project reduces an n×d embedding matrix to n×2 coordinates along the two
// dominant principal axes.
func Project(embeddings [][]float32) ([][]float32, error) {
	n := len(embeddings)
	if n == 0 {
		return nil, ErrNoVectors
	}
	if n < Components {
		return nil, ErrTooFewVectors
	}

	dim := len(embeddings[0])
	if dim < Components {
		return nil, ErrDimensionTooLow
	}

	matrix, err := toCenteredDense(embeddings, n, dim)
	if err != nil {
		return nil, err
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(matrix, nil); !ok {
		return nil, fmt.Errorf("principal component decomposition failed")
	}

	var axes mat.Dense
	pc.VectorsTo(&axes)

	var projected mat.Dense
	projected.Mul(matrix, axes.Slice(0, dim, 0, Components))

	coords := make([][]float32, n)
	for i := range coords {
		coords[i] = []float32{
			float32(projected.At(i, 0)),
			float32(projected.At(i, 1)),
		}
	}

	return coords, nil
}

// toCenteredDense converts to float64 and subtracts the per-column mean, so
// the projection is centered on the origin.
func toCenteredDense(embeddings [][]float32, n, dim int) (*mat.Dense, error) {
	data := make([]float64, n*dim)
	for i, row := range embeddings {
		if len(row) != dim {
			return nil, ErrRaggedInput
		}
		for j, v := range row {
			data[i*dim+j] = float64(v)
		}
	}

	matrix := mat.NewDense(n, dim, data)

	col := make([]float64, n)
	for j := 0; j < dim; j++ {
		mat.Col(col, j, matrix)
		mean := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			matrix.Set(i, j, matrix.At(i, j)-mean)
		}
	}

	return matrix, nil
}
