// Package image normalises images by asking the vision service for an
// objective description of what is depicted. The description becomes
// the auditable text; a vision failure is an error, never description
// text, so it can not be judged as if it were safe content.
package image

import (
	"context"
	"fmt"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles image inputs through a vision service.
type Normaliser struct {
	vision driven.VisionService
}

// New creates a new image normaliser backed by the given vision
// service.
func New(vision driven.VisionService) *Normaliser {
	return &Normaliser{vision: vision}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"image/*"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise obtains a vision description of the image.
func (n *Normaliser) Normalise(ctx context.Context, raw []byte) (*driven.NormaliseResult, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}
	if n.vision == nil {
		return nil, fmt.Errorf("%w: no vision service configured", domain.ErrNormalization)
	}

	description, err := n.vision.Describe(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: vision description: %v", domain.ErrNormalization, err)
	}

	return &driven.NormaliseResult{
		Text:           description,
		ExtractedChars: len(description),
	}, nil
}
