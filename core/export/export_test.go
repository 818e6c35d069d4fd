package export

import (
	"compress/gzip"
	"database/sql"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/adalundhe/lexatlas/core/artifact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtifact(t *testing.T) *artifact.Artifact {
	t.Helper()
	a, err := artifact.New(
		[]string{"house", "water", "stone"},
		[][]float32{
			{0.1, -0.2, 0.3, 0.4},
			{-0.5, 0.6, -0.7, 0.8},
			{0.9, -1.0, 0.15, -0.25},
		},
		[][]float32{{1.5, -2.5}, {3.5, 4.5}, {-5.5, 6.5}},
		"all-MiniLM-L6-v2", "pca", "test corpus",
	)
	require.NoError(t, err)
	return a
}

func TestExporterWritesAllFormats(t *testing.T) {
	dir := t.TempDir()
	a := testArtifact(t)

	results, err := NewExporter(dir).Run(a)
	require.NoError(t, err)
	require.Len(t, results, len(Formats()))

	for _, result := range results {
		assert.Positive(t, result.Bytes, "format %s wrote empty file", result.Name)

		info, err := os.Stat(filepath.Join(dir, result.File))
		require.NoError(t, err, "format %s missing file", result.Name)
		assert.Equal(t, info.Size(), result.Bytes)
	}
}

func TestJSONGzipRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a := testArtifact(t)

	require.NoError(t, writeJSONGzip(filepath.Join(dir, "out.json.gz"), a))

	f, err := os.Open(filepath.Join(dir, "out.json.gz"))
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	var decoded artifact.Artifact
	require.NoError(t, json.NewDecoder(gz).Decode(&decoded))

	assert.Equal(t, a.Words, decoded.Words)
	assert.Equal(t, a.Embeddings, decoded.Embeddings)
}

func TestFloat32BinaryLayout(t *testing.T) {
	dir := t.TempDir()
	a := testArtifact(t)

	path := filepath.Join(dir, "f32.bin.gz")
	require.NoError(t, writeFloat32Gzip(path, a))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	flat := a.FlatEmbeddings()
	buf := make([]byte, 4*len(flat))
	_, err = io.ReadFull(gz, buf)
	require.NoError(t, err)

	for i, want := range flat {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		assert.Equal(t, want, got, "value %d", i)
	}
}

func TestQuantizedPayloadShape(t *testing.T) {
	a := testArtifact(t)

	payload, err := newQuantizedPayload(a)
	require.NoError(t, err)

	assert.Equal(t, [2]int{3, 4}, payload.Shape)
	assert.Equal(t, [2]int{3, 2}, payload.CoordsShape)

	embCodes, err := base64.StdEncoding.DecodeString(payload.EmbeddingsQ8)
	require.NoError(t, err)
	assert.Len(t, embCodes, 12)

	coordCodes, err := base64.StdEncoding.DecodeString(payload.CoordinatesQ8)
	require.NoError(t, err)
	assert.Len(t, coordCodes, 6)

	assert.Equal(t, -1.0, payload.EmbMin)
	assert.InDelta(t, 0.9, payload.EmbMax, 1e-6)
	assert.Positive(t, payload.EmbScale)
}

func TestSQLiteExport(t *testing.T) {
	dir := t.TempDir()
	a := testArtifact(t)

	path := filepath.Join(dir, "out.db")
	require.NoError(t, writeSQLite(path, a))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM words`).Scan(&count))
	assert.Equal(t, 3, count)

	var word string
	var blob []byte
	var x, y float64
	require.NoError(t, db.QueryRow(
		`SELECT word, embedding, x, y FROM words WHERE id = 0`,
	).Scan(&word, &blob, &x, &y))

	assert.Equal(t, "house", word)
	assert.Len(t, blob, 16)
	assert.InDelta(t, 1.5, x, 1e-6)
	assert.InDelta(t, -2.5, y, 1e-6)

	var model string
	require.NoError(t, db.QueryRow(
		`SELECT value FROM metadata WHERE key = 'model_name'`,
	).Scan(&model))
	assert.Equal(t, "all-MiniLM-L6-v2", model)
}

func TestSQLiteExportOverwrites(t *testing.T) {
	dir := t.TempDir()
	a := testArtifact(t)
	path := filepath.Join(dir, "out.db")

	require.NoError(t, writeSQLite(path, a))
	require.NoError(t, writeSQLite(path, a))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM words`).Scan(&count))
	assert.Equal(t, 3, count)
}

func TestSizeReport(t *testing.T) {
	results := []Result{
		{Name: FormatJSONRaw, File: "a", Bytes: 1000},
		{Name: FormatJSONGzip, File: "b", Bytes: 250},
		{Name: FormatQuantizedBr, File: "c", Bytes: 100},
	}

	report := NewSizeReport(3, results)

	assert.Equal(t, int64(1000), report.Baseline)
	assert.Equal(t, FormatQuantizedBr, report.Smallest().Name)
	assert.Equal(t, FormatQuantizedBr, report.Entries[0].Name)
	assert.Equal(t, FormatJSONRaw, report.Entries[2].Name)

	assert.InDelta(t, 90.0, report.Savings(results[2]), 1e-9)
	assert.InDelta(t, 0.0, report.Savings(results[0]), 1e-9)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KB", FormatBytes(1024))
	assert.Equal(t, "1.5 MB", FormatBytes(1572864))
}
