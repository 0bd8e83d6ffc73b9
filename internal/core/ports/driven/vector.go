package driven

import (
	"context"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
)

// VectorIndex stores chunk embeddings and serves nearest-neighbour
// queries. The index is built in one batch by the offline indexing
// pipeline, persisted, and loaded read-only by the serving process.
// A rebuild requires re-running the pipeline; there is no incremental
// insert.
type VectorIndex interface {
	// Build constructs and persists the index from all entries at once.
	// All embeddings must share one dimension.
	Build(ctx context.Context, entries []domain.IndexEntry) error

	// Search finds the min(k, size) nearest chunks to the query vector,
	// ranked by descending cosine similarity. Exact score ties keep
	// insertion order.
	Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error)

	// Size returns the number of indexed entries.
	Size() int

	// Dimensions returns the embedding dimension the index was built
	// with.
	Dimensions() int

	// Close releases resources.
	Close() error
}
