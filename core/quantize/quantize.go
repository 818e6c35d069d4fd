// Package quantize implements the lossy min-max integer quantization used by
// the compact client payloads. A whole matrix shares one affine mapping:
// code = round((v - min) * scale), scale = levels / (max - min).
package quantize

import (
	"errors"
	"math"
)

var (
	// ErrEmptyInput indicates there were no values to quantize.
	ErrEmptyInput = errors.New("no values to quantize")

	// ErrUnsupportedBits indicates a bit width other than 8 or 16.
	ErrUnsupportedBits = errors.New("unsupported quantization bit width")
)

// Params captures the affine mapping needed to dequantize.
type Params struct {
	Bits  int     `json:"bits"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Scale float64 `json:"scale"`
}

// Levels returns the number of representable steps (2^bits - 1).
func Levels(bits int) float64 {
	return float64(uint64(1)<<bits - 1)
}

// Encode8 quantizes a matrix to uint8 codes, row-major. All rows share one
// min/max range, matching the client decoder.
func Encode8(matrix [][]float32) ([]uint8, Params, error) {
	flat, params, err := encode(matrix, 8)
	if err != nil {
		return nil, Params{}, err
	}

	codes := make([]uint8, len(flat))
	for i, v := range flat {
		codes[i] = uint8(v)
	}
	return codes, params, nil
}

// Encode16 quantizes a matrix to uint16 codes, row-major.
func Encode16(matrix [][]float32) ([]uint16, Params, error) {
	flat, params, err := encode(matrix, 16)
	if err != nil {
		return nil, Params{}, err
	}

	codes := make([]uint16, len(flat))
	for i, v := range flat {
		codes[i] = uint16(v)
	}
	return codes, params, nil
}

func encode(matrix [][]float32, bits int) ([]uint64, Params, error) {
	if bits != 8 && bits != 16 {
		return nil, Params{}, ErrUnsupportedBits
	}

	var total int
	for _, row := range matrix {
		total += len(row)
	}
	if total == 0 {
		return nil, Params{}, ErrEmptyInput
	}

	minVal, maxVal := matrixRange(matrix)

	params := Params{Bits: bits, Min: minVal, Max: maxVal}
	if maxVal > minVal {
		params.Scale = Levels(bits) / (maxVal - minVal)
	}

	codes := make([]uint64, 0, total)
	for _, row := range matrix {
		for _, v := range row {
			codes = append(codes, quantizeValue(float64(v), params))
		}
	}

	return codes, params, nil
}

func quantizeValue(v float64, p Params) uint64 {
	// Degenerate range: every value maps to code 0.
	if p.Scale == 0 {
		return 0
	}

	code := math.Round((v - p.Min) * p.Scale)
	if code < 0 {
		code = 0
	}
	if limit := Levels(p.Bits); code > limit {
		code = limit
	}
	return uint64(code)
}

// Decode8 reverses Encode8. Values land on quantization grid points, not the
// original floats.
func Decode8(codes []uint8, p Params) []float32 {
	values := make([]float32, len(codes))
	for i, c := range codes {
		values[i] = dequantizeValue(float64(c), p)
	}
	return values
}

// Decode16 reverses Encode16.
func Decode16(codes []uint16, p Params) []float32 {
	values := make([]float32, len(codes))
	for i, c := range codes {
		values[i] = dequantizeValue(float64(c), p)
	}
	return values
}

func dequantizeValue(code float64, p Params) float32 {
	if p.Scale == 0 {
		return float32(p.Min)
	}
	return float32(code/p.Scale + p.Min)
}

// QuantizeSlice quantizes a single float32 slice with its own range, returning
// codes wide enough for either bit width. Used for similarity-score bucketing.
func QuantizeSlice(values []float32, bits int) ([]uint16, Params, error) {
	matrix := [][]float32{values}
	flat, params, err := encode(matrix, bits)
	if err != nil {
		return nil, Params{}, err
	}

	codes := make([]uint16, len(flat))
	for i, v := range flat {
		codes[i] = uint16(v)
	}
	return codes, params, nil
}

func matrixRange(matrix [][]float32) (minVal, maxVal float64) {
	first := true
	for _, row := range matrix {
		for _, v := range row {
			f := float64(v)
			if first {
				minVal, maxVal = f, f
				first = false
				continue
			}
			if f < minVal {
				minVal = f
			}
			if f > maxVal {
				maxVal = f
			}
		}
	}
	return minVal, maxVal
}
