package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oncorag/gliorag/pkg/corpus"
	"github.com/oncorag/gliorag/pkg/pdffetch"
)

var fetchPDFsCmd = &cobra.Command{
	Use:   "fetch-pdfs",
	Short: "Download article PDFs via DOI / pdf_url and extract full text into the guidelines JSONL",
	Long: `Walks the literature JSONL, tries each record's pdf_url or DOI redirect,
keeps only responses that actually are PDFs, extracts their text, and
replaces the guidelines JSONL with the resulting full-text records.

Only use this against open-access material or articles you are licensed to
download.`,
	RunE: runFetchPDFs,
}

func init() {
	rootCmd.AddCommand(fetchPDFsCmd)
}

func runFetchPDFs(cmd *cobra.Command, args []string) error {
	cfg := currentConfig

	records, readStats, err := corpus.LoadLiterature(cfg.Paths.PubMedJSONL)
	if err != nil {
		return err
	}
	if readStats.FileMissing {
		color.Yellow("Literature file missing: %s — run ingest-pubmed first.\n", cfg.Paths.PubMedJSONL)
		return nil
	}
	color.Blue("Loaded %d literature records (%d malformed lines skipped)\n", readStats.Records, readStats.Skipped())

	fetcher, err := pdffetch.NewFetcher(pdffetch.FetcherConfig{
		PDFDir: cfg.Paths.PDFDir,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize PDF fetcher: %w", err)
	}

	bar := getProgressBar(len(records), "Downloading & extracting PDFs...")
	fulltext, stats, err := fetcher.FetchAll(cmd.Context(), records, func(done int) {
		bar.Set(done)
	})
	bar.Finish()
	if err != nil {
		return err
	}

	color.Blue("\nProcessed %d records: %d extracted, %d downloaded, %d cached, %d without URL, %d not PDF, %d failed, %d empty\n",
		stats.Records, stats.Extracted, stats.Downloaded, stats.Cached, stats.NoURL, stats.NotPDF, stats.Failed, stats.EmptyText)

	if len(fulltext) == 0 {
		color.Yellow("No fulltext records collected, nothing to write.\n")
		return nil
	}

	count, err := corpus.WriteGuidelines(cfg.Paths.GuidelineJSONL, fulltext)
	if err != nil {
		return err
	}

	color.Green("✓ Wrote %d fulltext guideline records to %s\n", count, cfg.Paths.GuidelineJSONL)
	return nil
}
