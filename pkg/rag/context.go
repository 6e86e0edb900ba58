package rag

import (
	"fmt"
	"strings"

	"github.com/oncorag/gliorag/internal/models"
)

// BuildContext renders retrieved chunks into one source-tagged context
// block. Labels are positional and 1-based; downstream citation display
// depends on the i-th result always being [source_i].
func BuildContext(results []models.RetrievedChunk) string {
	parts := make([]string, 0, len(results))

	for i, item := range results {
		label := fmt.Sprintf("[source_%d]", i+1)

		var header string
		switch metaString(item.Metadata, "source_type") {
		case models.SourceTypePubMed, models.SourceTypePubMedGuideline:
			header = fmt.Sprintf("%s PubMed PMID %s (%s) - %s",
				label,
				metaString(item.Metadata, "pmid"),
				metaString(item.Metadata, "year"),
				metaString(item.Metadata, "title"))
		default:
			name := metaString(item.Metadata, "guideline_name")
			if name == "" {
				name = metaString(item.Metadata, "file_name")
			}
			if name == "" {
				name = "Guideline"
			}
			header = fmt.Sprintf("%s Guideline %s (%s)",
				label, name, metaString(item.Metadata, "year"))
		}

		parts = append(parts, header+"\n"+strings.TrimSpace(item.Text))
	}

	return "\n\n" + strings.Join(parts, "\n\n")
}

func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
