package export

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/adalundhe/lexatlas/core/artifact"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE words (
	id        INTEGER PRIMARY KEY,
	word      TEXT NOT NULL UNIQUE,
	embedding BLOB NOT NULL,
	x         REAL NOT NULL,
	y         REAL NOT NULL
);
`

// writeSQLite exports the artifact as a single-file SQLite database: one row
// per word carrying its float32 embedding blob and map coordinates.
func writeSQLite(path string, a *artifact.Artifact) error {
	// Rewritten from scratch each run.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale database: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertMetadata(tx, a); err != nil {
		return err
	}
	if err := insertWords(tx, a); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func insertMetadata(tx *sql.Tx, a *artifact.Artifact) error {
	stmt, err := tx.Prepare(`INSERT INTO metadata (key, value) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare metadata insert: %w", err)
	}
	defer stmt.Close()

	entries := map[string]string{
		"n_words":       fmt.Sprintf("%d", a.Metadata.WordCount),
		"embedding_dim": fmt.Sprintf("%d", a.Metadata.EmbeddingDim),
		"model_name":    a.Metadata.ModelName,
		"projection":    a.Metadata.Projection,
		"generated_at":  a.Metadata.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		"source":        a.Metadata.Source,
		"run_id":        a.Metadata.RunID,
	}

	for key, value := range entries {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("insert metadata %s: %w", key, err)
		}
	}

	return nil
}

func insertWords(tx *sql.Tx, a *artifact.Artifact) error {
	stmt, err := tx.Prepare(`INSERT INTO words (id, word, embedding, x, y) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare word insert: %w", err)
	}
	defer stmt.Close()

	for i, word := range a.Words {
		blob := float32Bytes(a.Embeddings[i])
		x := float64(a.Coordinates[i][0])
		y := float64(a.Coordinates[i][1])

		if _, err := stmt.Exec(i, word, blob, x, y); err != nil {
			return fmt.Errorf("insert word %q: %w", word, err)
		}
	}

	return nil
}
