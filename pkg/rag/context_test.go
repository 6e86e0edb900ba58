package rag_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oncorag/gliorag/internal/models"
	"github.com/oncorag/gliorag/pkg/rag"
)

func TestBuildContext_PubMedHeader(t *testing.T) {
	results := []models.RetrievedChunk{
		{
			Text: "Temozolomide plus radiotherapy is the standard of care.",
			Metadata: map[string]any{
				"source_type": "pubmed_guideline",
				"pmid":        "25079102",
				"year":        "2014",
				"title":       "EANO guideline on glioblastoma",
			},
		},
	}

	ctx := rag.BuildContext(results)

	assert.Contains(t, ctx, "[source_1] PubMed PMID 25079102 (2014) - EANO guideline on glioblastoma")
	assert.Contains(t, ctx, "Temozolomide plus radiotherapy is the standard of care.")
}

func TestBuildContext_GuidelineHeaderWithFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		expected string
	}{
		{
			"named guideline",
			map[string]any{"source_type": "guideline", "guideline_name": "NCCN CNS Cancers", "year": "2024"},
			"[source_1] Guideline NCCN CNS Cancers (2024)",
		},
		{
			"file name fallback",
			map[string]any{"source_type": "guideline_pdf", "file_name": "eano_glioma.pdf", "year": ""},
			"[source_1] Guideline eano_glioma.pdf ()",
		},
		{
			"no identifiers",
			map[string]any{"source_type": "epfl_guideline"},
			"[source_1] Guideline Guideline ()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := rag.BuildContext([]models.RetrievedChunk{{Text: "body", Metadata: tt.metadata}})
			assert.Contains(t, ctx, tt.expected)
		})
	}
}

func TestBuildContext_PositionalLabels(t *testing.T) {
	var results []models.RetrievedChunk
	for i := 0; i < 5; i++ {
		results = append(results, models.RetrievedChunk{
			Text:     fmt.Sprintf("chunk %d", i),
			Metadata: map[string]any{"source_type": "guideline", "guideline_name": "G"},
		})
	}

	ctx := rag.BuildContext(results)

	// The i-th result is always labeled source_i regardless of metadata.
	for i := 1; i <= 5; i++ {
		assert.Contains(t, ctx, fmt.Sprintf("[source_%d] Guideline G ()\nchunk %d", i, i-1))
	}
}

func TestBuildContext_Empty(t *testing.T) {
	assert.Equal(t, "\n\n", rag.BuildContext(nil))
}
