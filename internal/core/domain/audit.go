package domain

import "strings"

// Modality identifies what kind of content is being audited.
type Modality string

// Available modalities.
const (
	// ModalityPrompt is a user prompt submitted for auditing.
	ModalityPrompt Modality = "prompt"

	// ModalityModelOutput is text produced by a model.
	ModalityModelOutput Modality = "model-output"

	// ModalityDocument is text extracted from an uploaded document.
	ModalityDocument Modality = "document"

	// ModalityImageDescription is a vision-model description of an image.
	ModalityImageDescription Modality = "image-description"
)

// IsValid returns true if the modality is recognised.
func (m Modality) IsValid() bool {
	switch m {
	case ModalityPrompt, ModalityModelOutput, ModalityDocument, ModalityImageDescription:
		return true
	default:
		return false
	}
}

// Description returns a human-readable label for audit output.
func (m Modality) Description() string {
	switch m {
	case ModalityPrompt:
		return "User Prompt"
	case ModalityModelOutput:
		return "Model Output"
	case ModalityDocument:
		return "Document Content"
	case ModalityImageDescription:
		return "Image Description"
	default:
		return "Content"
	}
}

// String returns the string representation.
func (m Modality) String() string {
	return string(m)
}

// AuditRequest is a single piece of content submitted for auditing.
// It is created per user action, consumed once, and not persisted.
type AuditRequest struct {
	// Content is the text to audit. Non-text inputs are normalised to
	// text before an AuditRequest is formed.
	Content string

	// Modality identifies where the content came from.
	Modality Modality
}

// RetrievedChunk is a chunk returned by similarity search, with its score.
type RetrievedChunk struct {
	// Chunk is the matched policy chunk.
	Chunk Chunk

	// Score is the cosine similarity to the query embedding.
	Score float64
}

// RetrievalResult is the ordered top-k policy chunks for a request,
// ranked by descending similarity. Ties preserve index insertion order.
type RetrievalResult struct {
	// Chunks are the retrieved policy chunks, best first.
	Chunks []RetrievedChunk

	// RulesContext is the retrieved chunk texts concatenated in ranked
	// order, ready to hand to the judge.
	RulesContext string
}

// Outcome is the binary result of an audit.
type Outcome string

// Audit outcomes.
const (
	// OutcomePass means the judge found no violation.
	OutcomePass Outcome = "PASS"

	// OutcomeFail means the judge found a violation.
	OutcomeFail Outcome = "FAIL"
)

// AuditVerdict is the outcome of one audit, with the judge's rationale
// and the policy chunks it was shown.
type AuditVerdict struct {
	// Outcome is PASS or FAIL.
	Outcome Outcome

	// Rationale is the judge model's full raw response.
	Rationale string

	// CitedChunks are the policy chunks retrieved for this audit.
	CitedChunks []RetrievedChunk

	// Modality identifies what was audited.
	Modality Modality
}

// ClassifyVerdict derives the outcome from the judge's raw response.
// The response is FAIL if and only if the literal token "FAIL" appears
// anywhere in it; otherwise PASS. This mirrors the judge prompt, which
// pins the leading token, but deliberately tolerates decoration around
// it (emoji, rule citations). A rationale that quotes the word FAIL
// while arguing the content passes will be misclassified; the raw
// response is preserved so callers can inspect borderline verdicts.
func ClassifyVerdict(rawResponse string) Outcome {
	if strings.Contains(rawResponse, string(OutcomeFail)) {
		return OutcomeFail
	}
	return OutcomePass
}
