// Package sqlite implements the vector index on a single SQLite file.
//
// The on-disk form is self-describing: an index_meta row records the
// embedding dimension, the similarity metric, and the model that
// produced the vectors, so a load against a differently configured
// embedder fails instead of returning corrupt results. Embeddings are
// stored as little-endian float32 blobs alongside the chunk payload.
//
// The serving path loads all entries into memory once and searches
// them read-only; a policy corpus is rebuilt wholesale, never mutated
// in place.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driven"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/index/sqlite/migrations"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// metricCosine is the only similarity metric this index supports. It
// must match what the embedding model's vectors were trained for; the
// value is recorded in index_meta and checked on load.
const metricCosine = "cosine"

// Index is a SQLite-persisted vector index with in-memory exhaustive
// cosine search.
type Index struct {
	db    *sql.DB
	path  string
	model string

	// Read-only after Build/Open. Entry order is insertion order,
	// which is also the tie-break order for equal scores.
	entries []domain.IndexEntry
	dims    int
}

// Create opens (or creates) an index file for building. The model name
// is recorded in the index metadata when Build runs.
func Create(path, embeddingModel string) (*Index, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Index{db: db, path: path, model: embeddingModel}, nil
}

// Open loads a persisted index read-only. A missing or unreadable file
// surfaces as ErrIndexUnavailable; a stored dimension different from
// wantDims surfaces as ErrDimensionMismatch. Callers must refuse to
// serve audits on either.
func Open(path string, wantDims int) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrIndexUnavailable, path, err)
	}

	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexUnavailable, err)
	}

	idx := &Index{db: db, path: path}
	if err := idx.load(wantDims); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

// Build constructs and persists the index from all entries at once.
// Any previous contents are replaced in the same transaction.
func (x *Index) Build(ctx context.Context, entries []domain.IndexEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: no entries to index", domain.ErrInvalidInput)
	}

	dims := len(entries[0].Embedding)
	if dims == 0 {
		return fmt.Errorf("%w: empty embedding", domain.ErrDimensionMismatch)
	}
	for i, e := range entries {
		if len(e.Embedding) != dims {
			return fmt.Errorf("%w: entry %d has dimension %d, want %d",
				domain.ErrDimensionMismatch, i, len(e.Embedding), dims)
		}
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin build transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM index_meta"); err != nil {
		return fmt.Errorf("clearing metadata: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO index_meta (id, dimension, metric, embedding_model)
		VALUES (1, ?, ?, ?)`,
		dims, metricCosine, x.model); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (insertion_order, id, document_id, position, content, char_start, char_end, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		c := e.Chunk
		blob := float32SliceToBytes(e.Embedding)
		if _, err := stmt.ExecContext(ctx, i, c.ID, c.DocumentID, c.Position,
			c.Content, c.CharStart, c.CharEnd, blob); err != nil {
			return fmt.Errorf("inserting chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}

	x.entries = append([]domain.IndexEntry(nil), entries...)
	x.dims = dims
	return nil
}

// Search returns the min(k, size) entries nearest to the query vector,
// ranked by descending cosine similarity. Equal scores keep insertion
// order.
func (x *Index) Search(_ context.Context, query []float32, k int) ([]domain.RetrievedChunk, error) {
	if len(x.entries) == 0 {
		return nil, fmt.Errorf("%w: index not built or loaded", domain.ErrIndexUnavailable)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidInput, k)
	}
	if len(query) != x.dims {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrDimensionMismatch, len(query), x.dims)
	}

	hits := make([]domain.RetrievedChunk, len(x.entries))
	for i, e := range x.entries {
		hits[i] = domain.RetrievedChunk{
			Chunk: e.Chunk,
			Score: cosine(query, e.Embedding),
		}
	}

	// Stable keeps insertion order for exact score ties.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Size returns the number of indexed entries.
func (x *Index) Size() int {
	return len(x.entries)
}

// Dimensions returns the embedding dimension the index was built with.
func (x *Index) Dimensions() int {
	return x.dims
}

// ModelName returns the embedding model recorded in the index metadata.
func (x *Index) ModelName() string {
	return x.model
}

// Path returns the index file path.
func (x *Index) Path() string {
	return x.path
}

// Close closes the underlying database.
func (x *Index) Close() error {
	return x.db.Close()
}

// load reads the metadata row and all entries into memory.
func (x *Index) load(wantDims int) error {
	var dims int
	var metric string
	row := x.db.QueryRow("SELECT dimension, metric, embedding_model FROM index_meta WHERE id = 1")
	if err := row.Scan(&dims, &metric, &x.model); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s holds no index metadata", domain.ErrIndexUnavailable, x.path)
		}
		return fmt.Errorf("%w: reading metadata: %v", domain.ErrIndexUnavailable, err)
	}

	if metric != metricCosine {
		return fmt.Errorf("%w: unsupported metric %q", domain.ErrIndexUnavailable, metric)
	}
	if dims <= 0 {
		return fmt.Errorf("%w: stored dimension %d", domain.ErrIndexUnavailable, dims)
	}
	if wantDims > 0 && dims != wantDims {
		return fmt.Errorf("%w: index built with dimension %d, embedder produces %d",
			domain.ErrDimensionMismatch, dims, wantDims)
	}

	rows, err := x.db.Query(`
		SELECT id, document_id, position, content, char_start, char_end, embedding
		FROM chunks ORDER BY insertion_order`)
	if err != nil {
		return fmt.Errorf("%w: reading chunks: %v", domain.ErrIndexUnavailable, err)
	}
	defer rows.Close()

	var entries []domain.IndexEntry
	for rows.Next() {
		var e domain.IndexEntry
		var blob []byte
		if err := rows.Scan(&e.Chunk.ID, &e.Chunk.DocumentID, &e.Chunk.Position,
			&e.Chunk.Content, &e.Chunk.CharStart, &e.Chunk.CharEnd, &blob); err != nil {
			return fmt.Errorf("%w: scanning chunk: %v", domain.ErrIndexUnavailable, err)
		}
		if len(blob) != dims*4 {
			return fmt.Errorf("%w: chunk %s embedding is %d bytes, want %d",
				domain.ErrIndexUnavailable, e.Chunk.ID, len(blob), dims*4)
		}
		e.Embedding = bytesToFloat32Slice(blob)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: reading chunks: %v", domain.ErrIndexUnavailable, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: %s holds no chunks", domain.ErrIndexUnavailable, x.path)
	}

	x.entries = entries
	x.dims = dims
	return nil
}

// openDB opens the SQLite file with WAL mode and runs migrations.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := migrate(db, migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// migrate runs all pending migrations.
func migrate(db *sql.DB, fsys embed.FS) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// cosine computes cosine similarity without assuming unit-length
// vectors. Either vector having zero norm scores 0.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
