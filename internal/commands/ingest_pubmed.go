package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oncorag/gliorag/pkg/corpus"
	"github.com/oncorag/gliorag/pkg/pubmed"
)

var (
	pubmedQuery   string
	pubmedMinDate string
	pubmedMaxDate string
	pubmedRetMax  int
)

var ingestPubMedCmd = &cobra.Command{
	Use:   "ingest-pubmed",
	Short: "Fetch guideline-type GBM literature from PubMed into the literature JSONL",
	RunE:  runIngestPubMed,
}

func init() {
	ingestPubMedCmd.Flags().StringVar(&pubmedQuery, "query", pubmed.DefaultQuery, "PubMed search expression")
	ingestPubMedCmd.Flags().StringVar(&pubmedMinDate, "mindate", "2010/01/01", "earliest publication date")
	ingestPubMedCmd.Flags().StringVar(&pubmedMaxDate, "maxdate", "2025/12/31", "latest publication date")
	ingestPubMedCmd.Flags().IntVar(&pubmedRetMax, "retmax", 2000, "maximum number of PMIDs to fetch")
	rootCmd.AddCommand(ingestPubMedCmd)
}

func runIngestPubMed(cmd *cobra.Command, args []string) error {
	cfg := currentConfig
	ctx := cmd.Context()

	client, err := pubmed.NewClient(pubmed.ClientConfig{
		Email:  cfg.PubMed.Email,
		APIKey: cfg.PubMed.APIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize PubMed client: %w", err)
	}

	pmids, err := client.Search(ctx, pubmedQuery, pubmedMinDate, pubmedMaxDate, pubmedRetMax)
	if err != nil {
		return fmt.Errorf("PubMed search failed: %w", err)
	}
	color.Blue("Found %d PMIDs\n", len(pmids))

	if len(pmids) == 0 {
		color.Yellow("No PMIDs found, nothing to ingest.\n")
		return nil
	}

	bar := getProgressBar(len(pmids), "Fetching PubMed records...")
	records, err := client.Fetch(ctx, pmids, func(fetched int) {
		bar.Set(fetched)
	})
	if err != nil {
		return fmt.Errorf("PubMed fetch failed: %w", err)
	}
	bar.Finish()

	count, err := corpus.WriteLiterature(cfg.Paths.PubMedJSONL, records)
	if err != nil {
		return err
	}

	color.Green("\n✓ Saved %d of %d records to %s\n", count, len(records), cfg.Paths.PubMedJSONL)
	return nil
}
