package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oncorag/gliorag/pkg/corpus"
)

var ingestDatasetCmd = &cobra.Command{
	Use:   "ingest-dataset",
	Short: "Filter the curated open-guidelines dataset for neuro-oncology entries",
	RunE:  runIngestDataset,
}

func init() {
	rootCmd.AddCommand(ingestDatasetCmd)
}

func runIngestDataset(cmd *cobra.Command, args []string) error {
	cfg := currentConfig

	records, stats, err := corpus.FilterDataset(cfg.Paths.DatasetJSONL)
	if err != nil {
		return err
	}
	if stats.FileMissing {
		color.Yellow("Dataset file missing: %s\n", cfg.Paths.DatasetJSONL)
		return nil
	}

	color.Blue("Read %d lines: %d neuro-oncology guideline entries, %d malformed lines skipped\n",
		stats.Lines, stats.Records, stats.Skipped())

	if len(records) == 0 {
		color.Yellow("No matching guideline entries, nothing to write.\n")
		return nil
	}

	count, err := corpus.WriteGuidelines(cfg.Paths.GuidelineJSONL, records)
	if err != nil {
		return err
	}

	color.Green("✓ Wrote %d guideline records to %s\n", count, cfg.Paths.GuidelineJSONL)
	return nil
}
