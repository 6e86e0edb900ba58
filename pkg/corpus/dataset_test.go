package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncorag/gliorag/internal/models"
)

func TestIsNeuroOncologyRelated(t *testing.T) {
	tests := []struct {
		title string
		text  string
		want  bool
	}{
		{"Management of Glioblastoma", "", true},
		{"Adult brain tumour pathway", "", true},
		{"", "patients with malignant glioma should be offered", true},
		{"CNS Tumor staging", "", true},
		{"Diabetes management", "insulin dosing schedules", false},
		{"", "", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsNeuroOncologyRelated(tt.title, tt.text), "title=%q", tt.title)
	}
}

func TestFilterDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "open_guidelines.jsonl")
	data := `{"id":"g1","source":"nice","title":"Brain tumours (primary) and brain metastases","url":"https://example.org/g1","clean_text":"Glioma management recommendations."}
{"id":"g2","source":"nice","title":"Hypertension in adults","clean_text":"Blood pressure targets."}
{"id":"g3","source":"who","title":"","raw_text":"Treatment of glioblastoma in adults.","clean_text":""}
{"id":"g4","source":"who","title":"Empty entry","clean_text":"","raw_text":""}
broken line
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	records, stats, err := FilterDataset(path)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Lines)
	assert.Equal(t, 1, stats.Skipped())
	require.Len(t, records, 2)

	assert.Equal(t, "Brain tumours (primary) and brain metastases", records[0].GuidelineName)
	assert.Equal(t, models.SourceTypeDatasetGuideline, records[0].SourceType)
	assert.Equal(t, "g1", records[0].FileName)
	assert.Equal(t, "nice", records[0].SourceTag)

	// Falls back to raw_text and to the row id as name.
	assert.Equal(t, "g3", records[1].GuidelineName)
	assert.Equal(t, "Treatment of glioblastoma in adults.", records[1].Text)
}

func TestFilterDataset_MissingFile(t *testing.T) {
	records, stats, err := FilterDataset(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	assert.True(t, stats.FileMissing)
	assert.Empty(t, records)
}
