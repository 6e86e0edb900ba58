package corpus

import (
	"encoding/json"
	"strings"

	"github.com/oncorag/gliorag/internal/models"
)

// datasetRow mirrors one row of the curated open-guidelines dataset.
type datasetRow struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	RawText   string `json:"raw_text"`
	CleanText string `json:"clean_text"`
}

// neuroOncologyKeywords select guideline rows about gliomas and other CNS
// tumors from the general-purpose dataset.
var neuroOncologyKeywords = []string{
	"glioblastoma",
	"gbm",
	"glioma",
	"anaplastic glioma",
	"brain tumour",
	"brain tumor",
	"malignant glioma",
	"central nervous system tumour",
	"central nervous system tumor",
	"cns tumour",
	"cns tumor",
}

// IsNeuroOncologyRelated reports whether a title or body mentions any of
// the glioma / brain tumor keywords, case-insensitively.
func IsNeuroOncologyRelated(title, text string) bool {
	titleL := strings.ToLower(title)
	textL := strings.ToLower(text)
	for _, k := range neuroOncologyKeywords {
		if strings.Contains(titleL, k) || strings.Contains(textL, k) {
			return true
		}
	}
	return false
}

// FilterDataset reads the curated guideline dataset and returns the
// neuro-oncology-related rows as guideline records. Rows with no usable
// text and rows that fail the keyword filter are skipped.
func FilterDataset(path string) ([]models.GuidelineRecord, ReadStats, error) {
	var records []models.GuidelineRecord

	stats, err := readLines(path, func(line []byte) error {
		var row datasetRow
		if err := json.Unmarshal(line, &row); err != nil {
			return err
		}

		text := strings.TrimSpace(row.CleanText)
		if text == "" {
			text = strings.TrimSpace(row.RawText)
		}
		if text == "" {
			return nil
		}
		if !IsNeuroOncologyRelated(row.Title, text) {
			return nil
		}

		name := row.Title
		if name == "" {
			name = row.ID
		}
		records = append(records, models.GuidelineRecord{
			GuidelineName: name,
			Text:          text,
			SourceType:    models.SourceTypeDatasetGuideline,
			FileName:      row.ID,
			URL:           row.URL,
			SourceTag:     row.Source,
		})
		return nil
	})
	stats.Records = len(records)

	return records, stats, err
}
