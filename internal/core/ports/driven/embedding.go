package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The indexing and serving paths must use the identical embedding
// space: the same implementation and model feed both.
//
// Note: this is separate from VectorIndex, which stores and searches
// vectors. EmbeddingService generates them.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// Empty text is embeddable; it is not an error at this layer.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts. Used by the
	// offline indexing pipeline.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 768).
	// This must match the persisted index; the mismatch is detected at
	// index load time.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request. Used at startup before any audit is accepted.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
