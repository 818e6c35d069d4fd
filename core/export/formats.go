package export

import (
	"compress/gzip"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/adalundhe/lexatlas/core/artifact"
	"github.com/adalundhe/lexatlas/core/quantize"
	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/x448/float16"
)

// =============================================================================
// JSON formats
// =============================================================================

func writeJSONRaw(path string, a *artifact.Artifact) error {
	return writeFile(path, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(a)
	})
}

func writeJSONGzip(path string, a *artifact.Artifact) error {
	return writeGzip(path, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(a)
	})
}

func writeJSONBrotli(path string, a *artifact.Artifact) error {
	return writeBrotli(path, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(a)
	})
}

// =============================================================================
// Binary float formats
// =============================================================================

func writeFloat32Gzip(path string, a *artifact.Artifact) error {
	return writeGzip(path, func(w io.Writer) error {
		return writeFloat32LE(w, a.FlatEmbeddings())
	})
}

func writeFloat16Gzip(path string, a *artifact.Artifact) error {
	return writeGzip(path, func(w io.Writer) error {
		return writeFloat16LE(w, a.FlatEmbeddings())
	})
}

func writeZstdFloat32(path string, a *artifact.Artifact) error {
	return writeFile(path, func(w io.Writer) error {
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return err
		}
		if err := writeFloat32LE(enc, a.FlatEmbeddings()); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	})
}

func writeLZ4Float32(path string, a *artifact.Artifact) error {
	return writeFile(path, func(w io.Writer) error {
		enc := lz4.NewWriter(w)
		if err := writeFloat32LE(enc, a.FlatEmbeddings()); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	})
}

func writeFloat32LE(w io.Writer, values []float32) error {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	_, err := w.Write(buf)
	return err
}

func writeFloat16LE(w io.Writer, values []float32) error {
	buf := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[i*2:], float16.Fromfloat32(v).Bits())
	}
	_, err := w.Write(buf)
	return err
}

// =============================================================================
// Quantized and base64 payloads
// =============================================================================

// quantizedPayload is the 8-bit client payload: codes as base64 plus the
// affine parameters the decoder needs.
type quantizedPayload struct {
	Words         []string `json:"words"`
	EmbeddingsQ8  string   `json:"embeddings_q8"`
	CoordinatesQ8 string   `json:"coordinates_q8"`
	EmbMin        float64  `json:"emb_min"`
	EmbMax        float64  `json:"emb_max"`
	EmbScale      float64  `json:"emb_scale"`
	CoordMin      float64  `json:"coord_min"`
	CoordMax      float64  `json:"coord_max"`
	CoordScale    float64  `json:"coord_scale"`
	Shape         [2]int   `json:"shape"`
	CoordsShape   [2]int   `json:"coords_shape"`
}

func newQuantizedPayload(a *artifact.Artifact) (*quantizedPayload, error) {
	embCodes, embParams, err := quantize.Encode8(a.Embeddings)
	if err != nil {
		return nil, fmt.Errorf("quantize embeddings: %w", err)
	}

	coordCodes, coordParams, err := quantize.Encode8(a.Coordinates)
	if err != nil {
		return nil, fmt.Errorf("quantize coordinates: %w", err)
	}

	return &quantizedPayload{
		Words:         a.Words,
		EmbeddingsQ8:  base64.StdEncoding.EncodeToString(embCodes),
		CoordinatesQ8: base64.StdEncoding.EncodeToString(coordCodes),
		EmbMin:        embParams.Min,
		EmbMax:        embParams.Max,
		EmbScale:      embParams.Scale,
		CoordMin:      coordParams.Min,
		CoordMax:      coordParams.Max,
		CoordScale:    coordParams.Scale,
		Shape:         [2]int{len(a.Words), a.Dim()},
		CoordsShape:   [2]int{len(a.Words), 2},
	}, nil
}

func writeQuantizedRaw(path string, a *artifact.Artifact) error {
	payload, err := newQuantizedPayload(a)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(payload)
	})
}

func writeQuantizedBrotli(path string, a *artifact.Artifact) error {
	payload, err := newQuantizedPayload(a)
	if err != nil {
		return err
	}
	return writeBrotli(path, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(payload)
	})
}

// base64Payload keeps full float32 precision but stays JSON-transportable.
type base64Payload struct {
	Words          []string `json:"words"`
	EmbeddingsB64  string   `json:"embeddings_b64"`
	CoordinatesB64 string   `json:"coordinates_b64"`
	Shape          [2]int   `json:"shape"`
	CoordsShape    [2]int   `json:"coords_shape"`
	Dtype          string   `json:"dtype"`
}

func writeBase64Brotli(path string, a *artifact.Artifact) error {
	payload := &base64Payload{
		Words:          a.Words,
		EmbeddingsB64:  base64.StdEncoding.EncodeToString(float32Bytes(a.FlatEmbeddings())),
		CoordinatesB64: base64.StdEncoding.EncodeToString(float32Bytes(a.FlatCoordinates())),
		Shape:          [2]int{len(a.Words), a.Dim()},
		CoordsShape:    [2]int{len(a.Words), 2},
		Dtype:          "float32",
	}

	return writeBrotli(path, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(payload)
	})
}

func float32Bytes(values []float32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// =============================================================================
// Writer helpers
// =============================================================================

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func writeGzip(path string, write func(io.Writer) error) error {
	return writeFile(path, func(w io.Writer) error {
		gz, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			return err
		}
		if err := write(gz); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()
	})
}

func writeBrotli(path string, write func(io.Writer) error) error {
	return writeFile(path, func(w io.Writer) error {
		br := brotli.NewWriterLevel(w, brotli.BestCompression)
		if err := write(br); err != nil {
			br.Close()
			return err
		}
		return br.Close()
	})
}
