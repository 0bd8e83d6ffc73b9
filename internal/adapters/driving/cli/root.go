package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/adapters/driven/ai"
	configfile "github.com/Kalledda/automated-ai-policy-auditor-demo/internal/adapters/driven/config/file"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driven"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driving"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/services"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/index/sqlite"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/logger"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/normalisers"
	imagenorm "github.com/Kalledda/automated-ai-policy-auditor-demo/internal/normalisers/image"
	pdfnorm "github.com/Kalledda/automated-ai-policy-auditor-demo/internal/normalisers/pdf"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/normalisers/plaintext"
)

var (
	flagVerbose   bool
	flagConfigDir string
)

var rootCmd = &cobra.Command{
	Use:          "policyaudit",
	Short:        "Audit AI content against an indexed safety policy",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `policyaudit indexes a safety policy document into a local vector index
and audits prompts, model outputs, documents, and images against it.
Each audit retrieves the most relevant policy rules, asks a local judge
model for a verdict, and reports PASS or FAIL with the judge's rationale.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print pipeline details to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Config directory (default ~/.policyaudit)")
}

// Execute is called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*configfile.Config, error) {
	store, err := configfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("Config loaded from %s", store.Path())
	return cfg, nil
}

// auditEnv is the fully wired serving side: validated model services,
// the loaded index, and the audit orchestrator.
type auditEnv struct {
	auditor  driving.Auditor
	embedder driven.EmbeddingService
	judge    driven.JudgeService
	vision   driven.VisionService
	index    driven.VectorIndex
}

func (e *auditEnv) close() {
	if e.index != nil {
		e.index.Close()
	}
	if e.embedder != nil {
		e.embedder.Close()
	}
	if e.judge != nil {
		e.judge.Close()
	}
	if e.vision != nil {
		e.vision.Close()
	}
}

// newAuditEnv creates and validates every service an audit needs. The
// vision service is only created (and pinged) when the command audits
// images.
func newAuditEnv(cfg *configfile.Config, needVision bool) (*auditEnv, error) {
	env := &auditEnv{}

	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.EmbeddingSettings())
	if err != nil {
		return nil, err
	}
	env.embedder = embedder

	judge, err := ai.CreateAndValidateJudgeService(cfg.JudgeSettings())
	if err != nil {
		env.close()
		return nil, err
	}
	env.judge = judge

	index, err := sqlite.Open(cfg.Index.Path, embedder.Dimensions())
	if err != nil {
		env.close()
		return nil, fmt.Errorf("loading index %s: %w (run 'policyaudit index <policy-file>' first)",
			cfg.Index.Path, err)
	}
	env.index = index
	logger.Info("Loaded index: %d chunks, %d dimensions", index.Size(), index.Dimensions())

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(pdfnorm.New())

	if needVision {
		vision, err := ai.CreateAndValidateVisionService(cfg.VisionSettings())
		if err != nil {
			env.close()
			return nil, err
		}
		env.vision = vision
		registry.Register(imagenorm.New(vision))
	}

	retriever := services.NewRetrieverService(embedder, index)
	env.auditor = services.NewAuditService(retriever, judge, registry, cfg.RetrievalSettings())
	return env, nil
}
