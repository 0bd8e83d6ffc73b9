package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driven"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driving"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/logger"
)

// Ensure AuditService implements the interface.
var _ driving.Auditor = (*AuditService)(nil)

// judgePromptFormat frames the judge as a compliance officer, hands it
// the retrieved rules verbatim, and pins the leading response token
// that verdict classification depends on.
const judgePromptFormat = `You are an AI Safety Compliance Officer.
Audit the following CONTENT against the SAFETY RULES.

SAFETY RULES:
%s

INSTRUCTIONS:
- Determine if the CONTENT violates the rules.
- If the content is safe, start your response with "🟢 PASS".
- If the content is unsafe, start your response with "🔴 FAIL".
- Cite specific rule numbers.`

// AuditService orchestrates a full audit: retrieval, judging, and
// verdict parsing. It is stateless across calls; every audit is an
// independent transaction.
type AuditService struct {
	retriever   driving.Retriever
	judge       driven.JudgeService
	normalisers driven.NormaliserRegistry
	topK        int
}

// NewAuditService creates the audit orchestrator. topK is the number
// of policy chunks retrieved per audit.
func NewAuditService(
	retriever driving.Retriever,
	judge driven.JudgeService,
	normalisers driven.NormaliserRegistry,
	retrieval domain.RetrievalSettings,
) *AuditService {
	topK := retrieval.TopK
	if topK <= 0 {
		topK = 3
	}
	return &AuditService{
		retriever:   retriever,
		judge:       judge,
		normalisers: normalisers,
		topK:        topK,
	}
}

// Audit retrieves the relevant rules, invokes the judge once, and
// parses the verdict from its raw response.
func (s *AuditService) Audit(ctx context.Context, content string, modality domain.Modality) (*domain.AuditVerdict, error) {
	if !modality.IsValid() {
		return nil, fmt.Errorf("%w: unknown modality %q", domain.ErrInvalidInput, modality)
	}

	logger.Section("Audit")
	logger.Debug("Modality: %s", modality)

	retrieval, err := s.retriever.Retrieve(ctx, content, s.topK)
	if err != nil {
		return nil, err
	}

	systemPrompt := fmt.Sprintf(judgePromptFormat, retrieval.RulesContext)
	userContent := fmt.Sprintf("CONTENT TO AUDIT: %s", content)

	raw, err := s.judge.Complete(ctx, systemPrompt, userContent)
	if err != nil {
		return nil, fmt.Errorf("judging content: %w", err)
	}

	outcome := domain.ClassifyVerdict(raw)
	logger.Info("Verdict: %s", outcome)

	return &domain.AuditVerdict{
		Outcome:     outcome,
		Rationale:   raw,
		CitedChunks: retrieval.Chunks,
		Modality:    modality,
	}, nil
}

// AuditText audits free text. The modality must be one of the two text
// modalities; documents and images go through their own entry points.
func (s *AuditService) AuditText(ctx context.Context, content string, modality domain.Modality) (*domain.AuditVerdict, error) {
	if modality != domain.ModalityPrompt && modality != domain.ModalityModelOutput {
		return nil, fmt.Errorf("%w: text audit modality must be %q or %q",
			domain.ErrInvalidInput, domain.ModalityPrompt, domain.ModalityModelOutput)
	}
	return s.Audit(ctx, content, modality)
}

// AuditDocument normalises an uploaded document and audits the
// extracted text. A document with no extractable text is a
// normalization failure, not a passing audit.
func (s *AuditService) AuditDocument(ctx context.Context, raw []byte, mimeType string) (*driving.DocumentAudit, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no document uploaded", domain.ErrInvalidInput)
	}

	normaliser := s.normalisers.Get(mimeType)
	if normaliser == nil {
		return nil, fmt.Errorf("%w: unsupported document type %q", domain.ErrInvalidInput, mimeType)
	}

	result, err := normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, err
	}
	logger.Debug("Extracted %d characters from document", result.ExtractedChars)

	if result.ExtractedChars == 0 {
		return nil, fmt.Errorf("%w: document yielded no extractable text", domain.ErrNormalization)
	}

	verdict, err := s.Audit(ctx, result.Text, domain.ModalityDocument)
	if err != nil {
		return nil, err
	}

	return &driving.DocumentAudit{
		Verdict:        verdict,
		ExtractedChars: result.ExtractedChars,
	}, nil
}

// AuditImage obtains a vision description of the image and audits the
// description. A failed description short-circuits before retrieval.
func (s *AuditService) AuditImage(ctx context.Context, raw []byte) (*driving.ImageAudit, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no image uploaded", domain.ErrInvalidInput)
	}

	mimeType := http.DetectContentType(raw)
	normaliser := s.normalisers.Get(mimeType)
	if normaliser == nil {
		return nil, fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidInput, mimeType)
	}

	result, err := normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, err
	}
	logger.Debug("Vision description: %d characters", result.ExtractedChars)

	verdict, err := s.Audit(ctx, result.Text, domain.ModalityImageDescription)
	if err != nil {
		return nil, err
	}

	return &driving.ImageAudit{
		Verdict:     verdict,
		Description: result.Text,
	}, nil
}
