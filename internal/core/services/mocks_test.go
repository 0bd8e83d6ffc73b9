package services

import (
	"context"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driven"
)

// mockEmbedder returns a fixed vector for every input and records the
// texts it was asked to embed.
type mockEmbedder struct {
	vector    []float32
	err       error
	dims      int
	seenTexts []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.seenTexts = append(m.seenTexts, text)
	if m.err != nil {
		return nil, m.err
	}
	return m.vector, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return len(m.vector)
}

func (m *mockEmbedder) ModelName() string            { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockIndex returns canned hits and records the queries it received.
type mockIndex struct {
	hits        []domain.RetrievedChunk
	err         error
	built       []domain.IndexEntry
	buildErr    error
	lastQuery   []float32
	lastK       int
	searchCalls int
}

func (m *mockIndex) Build(_ context.Context, entries []domain.IndexEntry) error {
	if m.buildErr != nil {
		return m.buildErr
	}
	m.built = entries
	return nil
}

func (m *mockIndex) Search(_ context.Context, query []float32, k int) ([]domain.RetrievedChunk, error) {
	m.searchCalls++
	m.lastQuery = query
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

func (m *mockIndex) Size() int       { return len(m.built) }
func (m *mockIndex) Dimensions() int { return 3 }
func (m *mockIndex) Close() error    { return nil }

// mockJudge replies with a fixed response and records the prompts.
type mockJudge struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (m *mockJudge) Complete(_ context.Context, systemInstructions, userContent string) (string, error) {
	m.calls++
	m.lastSystem = systemInstructions
	m.lastUser = userContent
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockJudge) ModelName() string            { return "mock-judge" }
func (m *mockJudge) Ping(_ context.Context) error { return nil }
func (m *mockJudge) Close() error                 { return nil }

// mockRetriever returns a canned retrieval result.
type mockRetriever struct {
	result *domain.RetrievalResult
	err    error
	lastK  int
}

func (m *mockRetriever) Retrieve(_ context.Context, _ string, k int) (*domain.RetrievalResult, error) {
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockNormaliser returns a canned normalisation result.
type mockNormaliser struct {
	mimeTypes []string
	text      string
	err       error
}

func (m *mockNormaliser) SupportedMIMETypes() []string { return m.mimeTypes }
func (m *mockNormaliser) Priority() int                { return 10 }

func (m *mockNormaliser) Normalise(_ context.Context, _ []byte) (*driven.NormaliseResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &driven.NormaliseResult{Text: m.text, ExtractedChars: len(m.text)}, nil
}

// mockRegistry matches MIME types by exact string or "image/*" prefix.
type mockRegistry struct {
	normalisers map[string]driven.Normaliser
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{normalisers: make(map[string]driven.Normaliser)}
}

func (m *mockRegistry) Register(n driven.Normaliser) {
	for _, mt := range n.SupportedMIMETypes() {
		m.normalisers[mt] = n
	}
}

func (m *mockRegistry) Get(mimeType string) driven.Normaliser {
	if n, ok := m.normalisers[mimeType]; ok {
		return n
	}
	if len(mimeType) > 6 && mimeType[:6] == "image/" {
		return m.normalisers["image/*"]
	}
	return nil
}
