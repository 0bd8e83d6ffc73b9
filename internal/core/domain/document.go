package domain

// Document represents a raw policy source loaded for indexing.
// It is immutable once loaded.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (file path).
	URI string

	// Content is the full raw text.
	Content string
}

// Chunk is a bounded contiguous slice of a source document, the unit of
// indexing and retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// CharStart and CharEnd are the byte offsets of this chunk within
	// the source document text. Consecutive chunks overlap by the
	// configured overlap, so CharStart of chunk n+1 equals
	// CharEnd of chunk n minus the overlap.
	CharStart int
	CharEnd   int
}

// IndexEntry pairs a chunk with its embedding vector. The collection of
// entries is the persisted vector index.
type IndexEntry struct {
	Chunk     Chunk
	Embedding []float32
}
