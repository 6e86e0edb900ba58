package pdffetch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oncorag/gliorag/internal/models"
)

// knownGuideline maps a recognized file name onto a canonical guideline
// name and year. Unrecognized PDFs keep their file name.
func knownGuideline(fileName string) (name, year string) {
	lower := strings.ToLower(fileName)
	switch {
	case strings.Contains(lower, "nccn") && strings.Contains(lower, "cns"):
		return "NCCN Guidelines: Central Nervous System Cancers", "2024"
	case strings.Contains(lower, "eano") && strings.Contains(lower, "glioma"):
		return "EANO guideline for diffuse/malignant glioma", ""
	case strings.Contains(lower, "esmo") && strings.Contains(lower, "glioma"):
		return "ESMO Clinical Practice Guideline for high-grade glioma", ""
	default:
		return fileName, ""
	}
}

// IngestDirectory extracts text from every PDF in dir and returns one
// guideline record per file. Files whose extraction fails or comes back
// empty are skipped and counted.
func IngestDirectory(dir string, extractor TextExtractor) ([]models.GuidelineRecord, Stats, error) {
	if extractor == nil {
		extractor = PDFExtractor{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Stats{}, nil
		}
		return nil, Stats{}, fmt.Errorf("failed to read guideline directory %s: %w", dir, err)
	}

	var records []models.GuidelineRecord
	var stats Stats

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		stats.Records++

		text, err := extractor.ExtractText(filepath.Join(dir, entry.Name()))
		if err != nil {
			stats.Failed++
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			stats.EmptyText++
			continue
		}

		name, year := knownGuideline(entry.Name())
		records = append(records, models.GuidelineRecord{
			GuidelineName: name,
			Year:          year,
			Text:          text,
			SourceType:    models.SourceTypeGuideline,
			FileName:      entry.Name(),
		})
		stats.Extracted++
	}

	return records, stats, nil
}
