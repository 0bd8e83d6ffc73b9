package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/adapters/driven/ai"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/chunker"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/services"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/index/sqlite"
)

var indexCmd = &cobra.Command{
	Use:   "index <policy-file>",
	Short: "Build the policy index from a policy document",
	Long: `Reads the policy document, splits it into overlapping chunks, embeds
each chunk, and persists the vector index. Re-running replaces the
existing index; there is no incremental update.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	splitter, err := chunker.New(cfg.ChunkingSettings())
	if err != nil {
		return fmt.Errorf("invalid chunking config: %w", err)
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.EmbeddingSettings())
	if err != nil {
		return err
	}
	defer embedder.Close()

	index, err := sqlite.Create(cfg.Index.Path, embedder.ModelName())
	if err != nil {
		return fmt.Errorf("creating index %s: %w", cfg.Index.Path, err)
	}
	defer index.Close()

	pipeline := services.NewIndexingPipeline(splitter, embedder, index)
	count, err := pipeline.BuildIndex(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d chunks from %s into %s\n", count, args[0], cfg.Index.Path)
	return nil
}
