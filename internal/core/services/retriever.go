package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driven"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driving"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.Retriever = (*RetrieverService)(nil)

// RetrieverService embeds content and fetches the most relevant policy
// chunks from the loaded index.
type RetrieverService struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
}

// NewRetrieverService creates a retriever over the given embedder and
// index. The index must already be built or loaded; the embedder must
// share its embedding space.
func NewRetrieverService(embedder driven.EmbeddingService, index driven.VectorIndex) *RetrieverService {
	return &RetrieverService{embedder: embedder, index: index}
}

// Retrieve embeds the content and returns the top k policy chunks with
// their texts concatenated in ranked order. Empty content is embedded
// like any other input.
func (s *RetrieverService) Retrieve(ctx context.Context, content string, k int) (*domain.RetrievalResult, error) {
	logger.Section("Rule Retrieval")
	logger.Debug("Content length: %d chars, k=%d", len(content), k)

	vec, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("embedding content: %w", err)
	}

	hits, err := s.index.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(hits))

	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Chunk.Content
		logger.Debug("  [%d] %s (%.4f)", i+1, h.Chunk.ID, h.Score)
	}

	return &domain.RetrievalResult{
		Chunks:       hits,
		RulesContext: strings.Join(texts, "\n\n"),
	}, nil
}
