package domain

import "errors"

// Domain errors represent the failure taxonomy of the audit pipeline.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidChunking indicates chunk size or overlap configuration
	// is invalid. Fatal at build time, not recoverable per-request.
	ErrInvalidChunking = errors.New("invalid chunking parameters")

	// ErrDimensionMismatch indicates the persisted index was built with
	// a different embedding dimension than the configured embedder.
	// Fatal at startup, not recoverable per-request.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexUnavailable indicates the vector index is missing or
	// corrupted. No audit may be served while this holds; callers must
	// not fall back to an empty index.
	ErrIndexUnavailable = errors.New("policy index unavailable")

	// ErrExternalService indicates the embedder, judge, or vision
	// service failed. Surfaced per-request with the underlying message
	// preserved; the pipeline does not retry.
	ErrExternalService = errors.New("external service failure")

	// ErrNormalization indicates a PDF or image could not be reduced to
	// auditable text. Must never be treated as safe content.
	ErrNormalization = errors.New("content normalization failed")

	// ErrInvalidInput indicates missing or empty required input,
	// rejected before any retrieval or audit work begins.
	ErrInvalidInput = errors.New("invalid input")
)
