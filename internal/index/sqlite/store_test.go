package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
)

func testEntries() []domain.IndexEntry {
	// Orthogonal-ish vectors so ranking against a query is unambiguous.
	return []domain.IndexEntry{
		{
			Chunk:     domain.Chunk{ID: "policy:0", DocumentID: "policy", Content: "Rule 1: No violent content.", Position: 0, CharStart: 0, CharEnd: 27},
			Embedding: []float32{1, 0, 0},
		},
		{
			Chunk:     domain.Chunk{ID: "policy:1", DocumentID: "policy", Content: "Rule 2: No weapons.", Position: 1, CharStart: 20, CharEnd: 39},
			Embedding: []float32{0, 1, 0},
		},
		{
			Chunk:     domain.Chunk{ID: "policy:2", DocumentID: "policy", Content: "Rule 3: No hate speech.", Position: 2, CharStart: 32, CharEnd: 55},
			Embedding: []float32{0.7, 0.7, 0},
		},
	}
}

func buildTestIndex(t *testing.T) (*Index, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy_index.db")

	idx, err := Create(path, "nomic-embed-text")
	require.NoError(t, err)
	require.NoError(t, idx.Build(context.Background(), testEntries()))
	return idx, path
}

func TestBuild_RejectsEmptyAndRagged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy_index.db")
	idx, err := Create(path, "nomic-embed-text")
	require.NoError(t, err)
	defer idx.Close()

	err = idx.Build(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ragged := testEntries()
	ragged[1].Embedding = []float32{1, 2}
	err = idx.Build(context.Background(), ragged)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestSearch_RankedDescending(t *testing.T) {
	idx, _ := buildTestIndex(t)
	defer idx.Close()

	hits, err := idx.Search(context.Background(), []float32{1, 0.1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "policy:0", hits[0].Chunk.ID)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestSearch_KLargerThanIndex(t *testing.T) {
	idx, _ := buildTestIndex(t)
	defer idx.Close()

	hits, err := idx.Search(context.Background(), []float32{0, 1, 0}, 50)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	seen := map[string]bool{}
	for _, h := range hits {
		assert.False(t, seen[h.Chunk.ID], "duplicate chunk %s", h.Chunk.ID)
		seen[h.Chunk.ID] = true
	}
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy_index.db")
	idx, err := Create(path, "nomic-embed-text")
	require.NoError(t, err)
	defer idx.Close()

	entries := make([]domain.IndexEntry, 4)
	for i := range entries {
		entries[i] = domain.IndexEntry{
			Chunk:     domain.Chunk{ID: fmt.Sprintf("policy:%d", i), DocumentID: "policy", Position: i},
			Embedding: []float32{1, 0, 0},
		}
	}
	require.NoError(t, idx.Build(context.Background(), entries))

	hits, err := idx.Search(context.Background(), []float32{1, 0, 0}, 4)
	require.NoError(t, err)
	require.Len(t, hits, 4)
	for i, h := range hits {
		assert.Equal(t, fmt.Sprintf("policy:%d", i), h.Chunk.ID)
	}
}

func TestSearch_InvalidArguments(t *testing.T) {
	idx, _ := buildTestIndex(t)
	defer idx.Close()

	_, err := idx.Search(context.Background(), []float32{1, 0, 0}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = idx.Search(context.Background(), []float32{1, 0}, 3)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestOpen_RoundTrip(t *testing.T) {
	built, path := buildTestIndex(t)
	query := []float32{0.2, 0.9, 0}

	want, err := built.Search(context.Background(), query, 3)
	require.NoError(t, err)
	require.NoError(t, built.Close())

	loaded, err := Open(path, 3)
	require.NoError(t, err)
	defer loaded.Close()

	assert.Equal(t, 3, loaded.Size())
	assert.Equal(t, 3, loaded.Dimensions())
	assert.Equal(t, "nomic-embed-text", loaded.ModelName())

	got, err := loaded.Search(context.Background(), query, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestOpen_EmptyIndexFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy_index.db")
	idx, err := Create(path, "nomic-embed-text")
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	// The file exists with a schema but was never built.
	_, err = Open(path, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestOpen_DimensionMismatch(t *testing.T) {
	built, path := buildTestIndex(t)
	require.NoError(t, built.Close())

	_, err := Open(path, 768)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestSearch_BeforeBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy_index.db")
	idx, err := Create(path, "nomic-embed-text")
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.Search(context.Background(), []float32{1, 0, 0}, 3)
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}
