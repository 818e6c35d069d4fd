// Package export writes the generated dataset in every candidate client
// format and measures the resulting file sizes. The game ships whichever
// format wins the size/fidelity trade-off, so each writer here mirrors a
// decoder the client could realistically implement.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adalundhe/lexatlas/core/artifact"
)

// Canonical format names, used as report keys.
const (
	FormatJSONRaw       = "JSON (raw)"
	FormatJSONGzip      = "JSON (gzip)"
	FormatJSONBrotli    = "JSON (brotli)"
	FormatSQLite        = "SQLite"
	FormatFloat32Gzip   = "Float32 binary (gzip)"
	FormatFloat16Gzip   = "Float16 binary (gzip)"
	FormatZstdFloat32   = "Zstd (float32)"
	FormatLZ4Float32    = "LZ4 (float32)"
	FormatQuantizedRaw  = "8-bit quantized JSON (raw)"
	FormatQuantizedBr   = "8-bit quantized + Brotli"
	FormatBase64Brotli  = "Base64 + Brotli (web)"
)

// BaselineFormat is the uncompressed reference the savings column compares
// against.
const BaselineFormat = FormatJSONRaw

var (
	// ErrNoFormats indicates an empty format list.
	ErrNoFormats = errors.New("no export formats selected")
)

// Format couples a report name with a file name and writer.
type Format struct {
	Name     string
	FileName string
	Write    func(path string, a *artifact.Artifact) error
}

// Result records one written file.
type Result struct {
	Name  string `json:"name"`
	File  string `json:"file"`
	Bytes int64  `json:"bytes"`
}

// Formats returns every supported export format in write order.
func Formats() []Format {
	return []Format{
		{FormatJSONRaw, "embeddings.json", writeJSONRaw},
		{FormatJSONGzip, "embeddings.json.gz", writeJSONGzip},
		{FormatJSONBrotli, "embeddings.json.br", writeJSONBrotli},
		{FormatSQLite, "embeddings.db", writeSQLite},
		{FormatFloat32Gzip, "embeddings_float32.bin.gz", writeFloat32Gzip},
		{FormatFloat16Gzip, "embeddings_float16.bin.gz", writeFloat16Gzip},
		{FormatZstdFloat32, "embeddings.zst", writeZstdFloat32},
		{FormatLZ4Float32, "embeddings.lz4", writeLZ4Float32},
		{FormatQuantizedRaw, "embeddings_quantized.json", writeQuantizedRaw},
		{FormatQuantizedBr, "embeddings_quantized.json.br", writeQuantizedBrotli},
		{FormatBase64Brotli, "embeddings_b64.json.br", writeBase64Brotli},
	}
}

// Exporter writes artifacts into a target directory.
type Exporter struct {
	dir     string
	formats []Format
}

// NewExporter creates an exporter using all supported formats.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir, formats: Formats()}
}

// NewExporterWithFormats creates an exporter over an explicit format list.
func NewExporterWithFormats(dir string, formats []Format) *Exporter {
	return &Exporter{dir: dir, formats: formats}
}

// Run writes the artifact in every configured format and returns per-format
// file sizes in write order.
func (e *Exporter) Run(a *artifact.Artifact) ([]Result, error) {
	if len(e.formats) == 0 {
		return nil, ErrNoFormats
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	results := make([]Result, 0, len(e.formats))
	for _, format := range e.formats {
		path := filepath.Join(e.dir, format.FileName)

		if err := format.Write(path, a); err != nil {
			return nil, fmt.Errorf("write %s: %w", format.Name, err)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", format.FileName, err)
		}

		results = append(results, Result{
			Name:  format.Name,
			File:  format.FileName,
			Bytes: info.Size(),
		})
	}

	return results, nil
}
