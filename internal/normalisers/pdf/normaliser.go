// Package pdf normalises PDF documents by extracting text page by
// page. Pages with no extractable text contribute an empty string, so
// a scanned or image-only PDF degrades to near-empty text rather than
// an error; the reported character count makes that degradation
// visible to callers.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts text from every page in page order.
func (n *Normaliser) Normalise(_ context.Context, raw []byte) (*driven.NormaliseResult, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidInput)
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: open PDF: %v", domain.ErrNormalization, err)
	}

	var textBuilder strings.Builder

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A page that yields no extractable text contributes an
			// empty string, not an error.
			continue
		}
		textBuilder.WriteString(text)
	}

	text := textBuilder.String()
	return &driven.NormaliseResult{
		Text:           text,
		ExtractedChars: len(text),
	}, nil
}
