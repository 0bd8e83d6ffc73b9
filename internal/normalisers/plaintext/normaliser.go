// Package plaintext normalises plain text documents. The bytes already
// are the auditable text; normalisation is a passthrough.
package plaintext

import (
	"context"
	"fmt"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/plain"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise returns the bytes as text.
func (n *Normaliser) Normalise(_ context.Context, raw []byte) (*driven.NormaliseResult, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidInput)
	}

	text := string(raw)
	return &driven.NormaliseResult{
		Text:           text,
		ExtractedChars: len(text),
	}, nil
}
