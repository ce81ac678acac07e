// Package vecindex is a per-request, in-memory vector index backed by
// sqlite-vec. The dense search strategy loads one document's chunk
// embeddings into it, runs a KNN query, and discards it; nothing survives
// the request, so the engine stays free of cross-request state.
package vecindex

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	sqlite_vec.Auto()
}

// Match is one KNN result.
type Match struct {
	ID         int
	Similarity float64 // cosine similarity, 1 - distance
}

// Index holds vectors of a fixed dimension in an in-memory database.
type Index struct {
	db  *sql.DB
	dim int
}

// New opens an in-memory index for vectors of the given dimension.
func New(dim int) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("vecindex: invalid dimension %d", dim)
	}
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("vecindex: opening database: %w", err)
	}
	ddl := fmt.Sprintf(`CREATE VIRTUAL TABLE vectors USING vec0(
		id INTEGER PRIMARY KEY,
		embedding float[%d] distance_metric=cosine
	)`, dim)
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("vecindex: creating vec0 table: %w", err)
	}
	return &Index{db: db, dim: dim}, nil
}

// Add stores one vector under id.
func (ix *Index) Add(ctx context.Context, id int, vec []float32) error {
	if len(vec) != ix.dim {
		return fmt.Errorf("vecindex: vector dimension %d, want %d", len(vec), ix.dim)
	}
	_, err := ix.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO vectors (id, embedding) VALUES (?, ?)",
		id, serializeFloat32(vec))
	return err
}

// Search returns the k nearest vectors by cosine distance, best first.
func (ix *Index) Search(ctx context.Context, vec []float32, k int) ([]Match, error) {
	if len(vec) != ix.dim {
		return nil, fmt.Errorf("vecindex: query dimension %d, want %d", len(vec), ix.dim)
	}
	rows, err := ix.db.QueryContext(ctx, `
		SELECT id, distance FROM vectors
		WHERE embedding MATCH ? AND k = ?
		ORDER BY distance
	`, serializeFloat32(vec), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var distance float64
		if err := rows.Scan(&m.ID, &distance); err != nil {
			return nil, err
		}
		m.Similarity = 1 - distance
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Close releases the in-memory database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// serializeFloat32 encodes a vector in the little-endian layout sqlite-vec
// expects for float[] columns.
func serializeFloat32(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
