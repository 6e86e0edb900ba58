package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oncorag/gliorag/pkg/corpus"
	"github.com/oncorag/gliorag/pkg/pdffetch"
)

var ingestGuidelinesCmd = &cobra.Command{
	Use:   "ingest-guidelines",
	Short: "Extract text from local guideline PDFs into the guidelines JSONL",
	RunE:  runIngestGuidelines,
}

func init() {
	rootCmd.AddCommand(ingestGuidelinesCmd)
}

func runIngestGuidelines(cmd *cobra.Command, args []string) error {
	cfg := currentConfig

	records, stats, err := pdffetch.IngestDirectory(cfg.Paths.GuidelineDir, nil)
	if err != nil {
		return err
	}

	color.Blue("Processed %d PDFs: %d extracted, %d failed, %d empty\n",
		stats.Records, stats.Extracted, stats.Failed, stats.EmptyText)

	if len(records) == 0 {
		color.Yellow("No guideline PDFs found in %s, nothing to write.\n", cfg.Paths.GuidelineDir)
		return nil
	}

	count, err := corpus.WriteGuidelines(cfg.Paths.GuidelineJSONL, records)
	if err != nil {
		return err
	}

	color.Green("✓ Saved %d guideline records to %s\n", count, cfg.Paths.GuidelineJSONL)
	return nil
}
