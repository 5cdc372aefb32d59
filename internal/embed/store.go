// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

const dbFile = "code-index.db"

// IndexPath returns the path of the index database under indexDir. Callers
// use it to check whether an index has been built before opening the store.
func IndexPath(indexDir string) string {
	return filepath.Join(indexDir, dbFile)
}

// Store accepts chunks for indexing and serves nearest-neighbor retrieval.
// Append-only at index-build time, query-only afterward; Search is safe for
// concurrent readers once building is done.
type Store interface {
	Add(ctx context.Context, chunks []types.CodeChunk, vectors [][]float32) error
	Search(ctx context.Context, vector []float32, topK int) ([]types.CodeChunk, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// SQLiteStore persists chunks and their vectors in a SQLite database, so a
// built index survives process restarts. Similarity search is brute-force
// cosine over all stored vectors, which is plenty for a single codebase.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the index database under indexDir.
func NewSQLiteStore(indexDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(indexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(indexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS chunks (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			source_path TEXT NOT NULL,
			content     TEXT NOT NULL,
			vector      BLOB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Reset drops all stored chunks. Called before a rebuild.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chunks`); err != nil {
		return fmt.Errorf("resetting index: %w", err)
	}
	return nil
}

// Add inserts chunks and their vectors in one transaction.
func (s *SQLiteStore) Add(ctx context.Context, chunks []types.CodeChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector length mismatch: %d != %d", len(chunks), len(vectors))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (source_path, content, vector) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, chunk.SourcePath, chunk.Content, encodeVector(vectors[i])); err != nil {
			return fmt.Errorf("inserting chunk from %s: %w", chunk.SourcePath, err)
		}
	}
	return tx.Commit()
}

// Search returns the topK chunks most similar to the query vector by cosine
// similarity. Chunk ordering in the store does not matter; ties resolve by
// insertion order.
func (s *SQLiteStore) Search(ctx context.Context, vector []float32, topK int) ([]types.CodeChunk, error) {
	if topK <= 0 {
		topK = 5
	}

	rows, err := s.db.QueryContext(ctx, `SELECT source_path, content, vector FROM chunks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	type scored struct {
		chunk types.CodeChunk
		score float64
	}
	var candidates []scored

	for rows.Next() {
		var (
			chunk types.CodeChunk
			blob  []byte
		)
		if err := rows.Scan(&chunk.SourcePath, &chunk.Content, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		candidates = append(candidates, scored{
			chunk: chunk,
			score: cosine(vector, decodeVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if topK > len(candidates) {
		topK = len(candidates)
	}

	result := make([]types.CodeChunk, 0, topK)
	for _, c := range candidates[:topK] {
		result = append(result, c.chunk)
	}
	return result, nil
}

// Count returns the number of stored chunks.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// encodeVector packs a vector as little-endian float32s.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

// decodeVector unpacks a little-endian float32 blob.
func decodeVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v
}

// cosine computes cosine similarity. Mismatched lengths compare over the
// shorter prefix; a zero vector scores 0.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
