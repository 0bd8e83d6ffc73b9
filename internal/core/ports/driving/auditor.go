package driving

import (
	"context"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
)

// Auditor audits content against the indexed safety policy.
// All entry points reduce to the single Audit contract after
// modality-specific normalisation. Implementations are stateless across
// calls and safe for concurrent use.
type Auditor interface {
	// Audit retrieves the relevant policy rules for the content,
	// invokes the judge once, and returns the parsed verdict.
	Audit(ctx context.Context, content string, modality domain.Modality) (*domain.AuditVerdict, error)

	// AuditText audits free text under the given modality, which must
	// be ModalityPrompt or ModalityModelOutput.
	AuditText(ctx context.Context, content string, modality domain.Modality) (*domain.AuditVerdict, error)

	// AuditDocument normalises an uploaded document (e.g. PDF) to text
	// and audits it. The returned DocumentAudit carries the extracted
	// character count alongside the verdict.
	AuditDocument(ctx context.Context, raw []byte, mimeType string) (*DocumentAudit, error)

	// AuditImage obtains a vision description of the image and audits
	// the description. The returned ImageAudit carries the description
	// so callers can display it as part of the audit trail.
	AuditImage(ctx context.Context, raw []byte) (*ImageAudit, error)
}

// DocumentAudit is the result of a document audit.
type DocumentAudit struct {
	// Verdict is the audit outcome for the extracted text.
	Verdict *domain.AuditVerdict

	// ExtractedChars is the number of characters extracted from the
	// document. Near-zero values signal a scanned or image-only
	// document whose audit covered almost no content.
	ExtractedChars int
}

// ImageAudit is the result of an image audit.
type ImageAudit struct {
	// Verdict is the audit outcome for the vision description.
	Verdict *domain.AuditVerdict

	// Description is the vision model's account of the image, the text
	// that was actually audited.
	Description string
}

// Retriever fetches the policy chunks most relevant to a piece of
// content.
type Retriever interface {
	// Retrieve embeds the content and queries the vector index for the
	// top k chunks. Empty or whitespace content is embedded and
	// searched like any other; rejection of empty input belongs to the
	// caller.
	Retrieve(ctx context.Context, content string, k int) (*domain.RetrievalResult, error)
}
