package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oncorag/gliorag/pkg/corpus"
	"github.com/oncorag/gliorag/pkg/indexer"
)

var buildIndexCmd = &cobra.Command{
	Use:   "build-index",
	Short: "Chunk, embed and index the ingested literature and guideline records",
	RunE:  runBuildIndex,
}

func init() {
	rootCmd.AddCommand(buildIndexCmd)
}

func runBuildIndex(cmd *cobra.Command, args []string) error {
	cfg := currentConfig
	ctx := cmd.Context()

	literature, litStats, err := corpus.LoadLiterature(cfg.Paths.PubMedJSONL)
	if err != nil {
		return err
	}
	reportReadStats("literature", litStats)

	guidelines, glStats, err := corpus.LoadGuidelines(cfg.Paths.GuidelineJSONL)
	if err != nil {
		return err
	}
	reportReadStats("guidelines", glStats)

	client, err := buildLLMClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	vs, err := buildStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %w", err)
	}
	defer vs.Close()

	ix := indexer.NewWithConfig(indexer.IndexerConfig{
		ChunkSize:    cfg.RAG.ChunkSize,
		ChunkOverlap: cfg.RAG.ChunkOverlap,
		BatchSize:    cfg.Database.BatchSize,
	}, client, vs)

	bar := getProgressBar(-1, "Embedding & indexing chunks...")
	stats, err := ix.BuildIndex(ctx, literature, guidelines, func(indexed, total int) {
		bar.ChangeMax(total)
		bar.Set(indexed)
	})
	bar.Finish()
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	color.Green("\n✓ Indexed %d chunks in %d batches (%d literature records, %d guideline records, %d skipped empty)\n",
		stats.Chunks, stats.Batches, stats.LiteratureRecords, stats.GuidelineRecords, stats.SkippedEmpty)
	return nil
}

func reportReadStats(name string, stats corpus.ReadStats) {
	if stats.FileMissing {
		color.Yellow("%s file missing, skipping: %s\n", name, stats.Path)
		return
	}
	color.Blue("Loaded %d %s records from %s (%d malformed lines skipped)\n",
		stats.Records, name, stats.Path, stats.Skipped())
}
