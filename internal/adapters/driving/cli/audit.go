package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/worker"
)

var (
	flagAuditModality string
	flagAuditMIME     string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit content against the indexed policy",
}

var auditTextCmd = &cobra.Command{
	Use:   "text <content>",
	Short: "Audit a prompt or model output",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditText,
}

var auditDocumentCmd = &cobra.Command{
	Use:   "document <path>",
	Short: "Audit a document (PDF or plain text)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditDocument,
}

var auditImageCmd = &cobra.Command{
	Use:   "image <path>",
	Short: "Audit an image via its vision description",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditImage,
}

var auditBatchCmd = &cobra.Command{
	Use:   "batch <path>",
	Short: "Audit every non-empty line of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditBatch,
}

func init() {
	auditTextCmd.Flags().StringVar(&flagAuditModality, "modality", string(domain.ModalityPrompt),
		fmt.Sprintf("Content modality: %q or %q", domain.ModalityPrompt, domain.ModalityModelOutput))
	auditBatchCmd.Flags().StringVar(&flagAuditModality, "modality", string(domain.ModalityPrompt),
		fmt.Sprintf("Content modality: %q or %q", domain.ModalityPrompt, domain.ModalityModelOutput))
	auditDocumentCmd.Flags().StringVar(&flagAuditMIME, "mime", "", "MIME type override (inferred from extension by default)")

	auditCmd.AddCommand(auditTextCmd)
	auditCmd.AddCommand(auditDocumentCmd)
	auditCmd.AddCommand(auditImageCmd)
	auditCmd.AddCommand(auditBatchCmd)
	rootCmd.AddCommand(auditCmd)
}

func runAuditText(cmd *cobra.Command, args []string) error {
	modality, err := textModality(flagAuditModality)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	env, err := newAuditEnv(cfg, false)
	if err != nil {
		return err
	}
	defer env.close()

	verdict, err := env.auditor.AuditText(cmd.Context(), args[0], modality)
	if err != nil {
		return err
	}

	printVerdict(verdict)
	return nil
}

func runAuditDocument(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	mimeType := flagAuditMIME
	if mimeType == "" {
		mimeType = documentMIMEType(args[0])
	}

	env, err := newAuditEnv(cfg, false)
	if err != nil {
		return err
	}
	defer env.close()

	audit, err := env.auditor.AuditDocument(cmd.Context(), raw, mimeType)
	if err != nil {
		return err
	}

	fmt.Printf("Extracted %d characters from %s\n", audit.ExtractedChars, args[0])
	printVerdict(audit.Verdict)
	return nil
}

func runAuditImage(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	env, err := newAuditEnv(cfg, true)
	if err != nil {
		return err
	}
	defer env.close()

	audit, err := env.auditor.AuditImage(cmd.Context(), raw)
	if err != nil {
		return err
	}

	fmt.Printf("Vision description:\n%s\n\n", audit.Description)
	printVerdict(audit.Verdict)
	return nil
}

func runAuditBatch(cmd *cobra.Command, args []string) error {
	modality, err := textModality(flagAuditModality)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	contents, err := readLines(args[0])
	if err != nil {
		return err
	}
	if len(contents) == 0 {
		return fmt.Errorf("%w: %s has no content to audit", domain.ErrInvalidInput, args[0])
	}

	env, err := newAuditEnv(cfg, false)
	if err != nil {
		return err
	}
	defer env.close()

	executor := worker.NewAuditExecutor(env.auditor, cfg.Audit.Concurrency)
	results := executor.AuditAll(cmd.Context(), contents, modality)

	var failures, errors int
	for _, r := range results {
		if r.Err != nil {
			errors++
			fmt.Printf("[%d] ERROR: %v\n", r.Index+1, r.Err)
			continue
		}
		if r.Verdict.Outcome == domain.OutcomeFail {
			failures++
		}
		fmt.Printf("[%d] %s: %s\n", r.Index+1, r.Verdict.Outcome, truncate(contents[r.Index], 60))
	}

	fmt.Printf("\n%d audited, %d failed, %d errors\n", len(results), failures, errors)
	if failures > 0 || errors > 0 {
		return fmt.Errorf("%d of %d audits did not pass", failures+errors, len(results))
	}
	return nil
}

func printVerdict(v *domain.AuditVerdict) {
	fmt.Printf("Verdict: %s\n\n%s\n", v.Outcome, v.Rationale)
	if len(v.CitedChunks) > 0 {
		fmt.Println("\nRules consulted:")
		for _, c := range v.CitedChunks {
			fmt.Printf("  %s (score %.4f)\n", c.Chunk.ID, c.Score)
		}
	}
}

// textModality validates the --modality flag. Batch lines and text
// arguments are free text, so only the two text modalities apply.
func textModality(value string) (domain.Modality, error) {
	m := domain.Modality(value)
	if m != domain.ModalityPrompt && m != domain.ModalityModelOutput {
		return "", fmt.Errorf("%w: --modality must be %q or %q, got %q",
			domain.ErrInvalidInput, domain.ModalityPrompt, domain.ModalityModelOutput, value)
	}
	return m, nil
}

// documentMIMEType infers the MIME type from the file extension. The
// --mime flag overrides it for unusual inputs.
func documentMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	default:
		return "text/plain"
	}
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
