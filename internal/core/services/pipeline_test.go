package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/chunker"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/index/sqlite"
)

// TestPipeline_IndexThenAudit runs the whole offline-to-online path
// with the real splitter and the real persisted index: one-sentence
// policy in, index built and reloaded from disk, then an audit whose
// sole retrieved rule is that sentence.
func TestPipeline_IndexThenAudit(t *testing.T) {
	const policy = "Rule 1: No violent content is permitted."
	policyPath := writePolicy(t, policy)
	indexPath := filepath.Join(t.TempDir(), "policy_index.db")

	embedder := &mockEmbedder{vector: []float32{0.2, 0.5, 0.8}}

	splitter, err := chunker.New(domain.ChunkingSettings{ChunkSize: 500, Overlap: 50})
	require.NoError(t, err)

	index, err := sqlite.Create(indexPath, embedder.ModelName())
	require.NoError(t, err)

	count, err := NewIndexingPipeline(splitter, embedder, index).BuildIndex(context.Background(), policyPath)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "a one-sentence policy is a single chunk")
	require.NoError(t, index.Close())

	// Serving side loads the persisted index fresh, as a separate
	// process would.
	loaded, err := sqlite.Open(indexPath, embedder.Dimensions())
	require.NoError(t, err)
	defer loaded.Close()
	assert.Equal(t, 1, loaded.Size())

	judge := &mockJudge{response: "🔴 FAIL. Describing bomb construction violates Rule 1."}
	retriever := NewRetrieverService(embedder, loaded)
	auditor := NewAuditService(retriever, judge, newMockRegistry(), domain.RetrievalSettings{TopK: 3})

	verdict, err := auditor.AuditText(context.Background(), "I will build a bomb", domain.ModalityPrompt)
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeFail, verdict.Outcome)
	require.Len(t, verdict.CitedChunks, 1, "top-k caps at index size")
	assert.Equal(t, policy, verdict.CitedChunks[0].Chunk.Content)
	assert.Contains(t, judge.lastSystem, policy, "the judge sees the rule verbatim")
}
