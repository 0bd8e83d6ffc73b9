package domain

// EmbeddingSettings holds embedding provider configuration.
// Indexing and serving must use the identical embedding space, so the
// same settings feed both paths.
type EmbeddingSettings struct {
	// Model is the embedding model name.
	Model string

	// BaseURL is the Ollama API endpoint.
	BaseURL string

	// Dimensions is the embedding vector size produced by the model.
	Dimensions int

	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	return e.Model != "" && e.Dimensions > 0
}

// JudgeSettings holds judge model configuration.
type JudgeSettings struct {
	// Model is the judging model name.
	Model string

	// BaseURL is the Ollama API endpoint.
	BaseURL string

	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int
}

// IsConfigured returns true if the judge model is set up.
func (j JudgeSettings) IsConfigured() bool {
	return j.Model != ""
}

// VisionSettings holds vision description model configuration.
type VisionSettings struct {
	// Model is the vision model name.
	Model string

	// BaseURL is the Ollama API endpoint.
	BaseURL string

	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int
}

// IsConfigured returns true if the vision model is set up.
func (v VisionSettings) IsConfigured() bool {
	return v.Model != ""
}

// ChunkingSettings configures how policy text is split for indexing.
type ChunkingSettings struct {
	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int

	// Overlap is the number of characters consecutive chunks share.
	// Must be smaller than ChunkSize.
	Overlap int
}

// Validate reports whether the chunking parameters are usable.
func (c ChunkingSettings) Validate() error {
	if c.ChunkSize <= 0 || c.Overlap <= 0 || c.Overlap >= c.ChunkSize {
		return ErrInvalidChunking
	}
	return nil
}

// RetrievalSettings configures similarity retrieval.
type RetrievalSettings struct {
	// TopK is the number of policy chunks retrieved per audit.
	TopK int
}

// AuditSettings configures audit execution.
type AuditSettings struct {
	// Concurrency bounds the number of in-flight audits when many are
	// submitted at once. Each audit makes blocking calls to the
	// embedder and the judge, so this is also the cap on concurrent
	// external calls.
	Concurrency int
}
