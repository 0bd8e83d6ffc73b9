package services

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/chunker"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driven"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driving"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/logger"
)

// Ensure IndexingPipeline implements the interface.
var _ driving.Indexer = (*IndexingPipeline)(nil)

// IndexingPipeline composes the chunker, the embedder, and the vector
// index to build the persisted policy index. It runs offline; the
// serving process only loads its output.
type IndexingPipeline struct {
	splitter *chunker.Splitter
	embedder driven.EmbeddingService
	index    driven.VectorIndex
}

// NewIndexingPipeline creates the offline indexing pipeline.
func NewIndexingPipeline(splitter *chunker.Splitter, embedder driven.EmbeddingService, index driven.VectorIndex) *IndexingPipeline {
	return &IndexingPipeline{
		splitter: splitter,
		embedder: embedder,
		index:    index,
	}
}

// BuildIndex reads the policy document at policyPath, chunks it,
// embeds every chunk, and persists the vector index. Returns the
// number of chunks indexed.
func (p *IndexingPipeline) BuildIndex(ctx context.Context, policyPath string) (int, error) {
	data, err := os.ReadFile(policyPath)
	if err != nil {
		return 0, fmt.Errorf("reading policy document: %w", err)
	}

	doc := domain.Document{
		ID:      uuid.New().String(),
		URI:     policyPath,
		Content: string(data),
	}

	chunks, err := p.splitter.Split(doc)
	if err != nil {
		return 0, fmt.Errorf("chunking policy: %w", err)
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w: policy document %s is empty", domain.ErrInvalidInput, policyPath)
	}
	logger.Info("Split policy into %d chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding chunks: %w", err)
	}

	wantDims := p.embedder.Dimensions()
	entries := make([]domain.IndexEntry, len(chunks))
	for i := range chunks {
		if len(vectors[i]) != wantDims {
			return 0, fmt.Errorf("%w: embedder returned dimension %d for chunk %d, configured %d",
				domain.ErrDimensionMismatch, len(vectors[i]), i, wantDims)
		}
		entries[i] = domain.IndexEntry{Chunk: chunks[i], Embedding: vectors[i]}
	}

	if err := p.index.Build(ctx, entries); err != nil {
		return 0, fmt.Errorf("building index: %w", err)
	}
	logger.Info("Indexed %d chunks from %s", len(entries), policyPath)

	return len(entries), nil
}
