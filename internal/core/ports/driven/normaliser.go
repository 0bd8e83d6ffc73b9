package driven

import "context"

// Normaliser reduces raw input bytes of one MIME family to plain text
// so every modality enters the audit path as text.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser
	// handles. Entries may use wildcards (e.g. "image/*").
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred)
	// when multiple normalisers match a MIME type.
	Priority() int

	// Normalise converts raw bytes to auditable text. A failure must
	// surface as an error, never as text fed forward to the judge.
	Normalise(ctx context.Context, raw []byte) (*NormaliseResult, error)
}

// NormaliseResult is the output of normalisation.
type NormaliseResult struct {
	// Text is the normalised plain text.
	Text string

	// ExtractedChars is len(Text), reported separately so callers can
	// surface degraded extraction (e.g. a scanned PDF yielding nearly
	// nothing) in the audit trail.
	ExtractedChars int
}

// NormaliserRegistry selects a normaliser for a MIME type.
type NormaliserRegistry interface {
	// Register adds a normaliser to the registry.
	Register(n Normaliser)

	// Get returns the best-matching normaliser for a MIME type, or nil
	// if none is registered.
	Get(mimeType string) Normaliser
}
