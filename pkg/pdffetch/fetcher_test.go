package pdffetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncorag/gliorag/internal/models"
)

// fileExtractor returns the raw bytes of the saved file, standing in for
// real PDF parsing.
type fileExtractor struct{}

func (fileExtractor) ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}

func TestCandidateURL(t *testing.T) {
	assert.Equal(t, "https://publisher.example/x.pdf",
		CandidateURL(models.LiteratureRecord{PDFURL: "https://publisher.example/x.pdf", DOI: "10.1/ignored"}))
	assert.Equal(t, "https://doi.org/10.1016/j.example",
		CandidateURL(models.LiteratureRecord{DOI: "10.1016/j.example"}))
	assert.Equal(t, "", CandidateURL(models.LiteratureRecord{}))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "25079102.pdf", SafeFilename(" 25079102.pdf "))
	assert.Equal(t, "my_file_v2.pdf", SafeFilename("my file/v2.pdf"))
	assert.Equal(t, "weird.pdf", SafeFilename("weird✨§.pdf"))
}

func TestFetchAll(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// Direct PDF response.
	mux.HandleFunc("/direct.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "PDF BODY ONE")
	})
	// Landing page advertising its PDF via the citation meta tag.
	mux.HandleFunc("/landing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `<html><head><meta name="citation_pdf_url" content="%s/via-meta.pdf"></head><body>article page</body></html>`, srv.URL)
	})
	mux.HandleFunc("/via-meta.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "PDF BODY TWO")
	})
	// Publisher page with no PDF anywhere: expected negative.
	mux.HandleFunc("/paywall", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body>subscribe to read</body></html>")
	})

	dir := t.TempDir()
	f, err := NewFetcher(FetcherConfig{PDFDir: dir, Extractor: fileExtractor{}})
	require.NoError(t, err)

	records := []models.LiteratureRecord{
		{PMID: "1", Title: "Direct", Year: "2020", Journal: "J1", DOI: "x", PDFURL: srv.URL + "/direct.pdf"},
		{PMID: "2", Title: "Via meta", PDFURL: srv.URL + "/landing"},
		{PMID: "3", Title: "Paywalled", PDFURL: srv.URL + "/paywall"},
		{PMID: "4", Title: "No URL at all"},
	}

	out, stats, err := f.FetchAll(context.Background(), records, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Records)
	assert.Equal(t, 2, stats.Extracted)
	assert.Equal(t, 2, stats.Downloaded)
	assert.Equal(t, 1, stats.NotPDF)
	assert.Equal(t, 1, stats.NoURL)
	assert.Equal(t, 0, stats.Failed)

	require.Len(t, out, 2)
	assert.Equal(t, "Direct", out[0].GuidelineName)
	assert.Equal(t, "PDF BODY ONE", out[0].Text)
	assert.Equal(t, models.SourceTypeGuidelinePDF, out[0].SourceType)
	assert.Equal(t, "1.pdf", out[0].FileName)
	assert.Equal(t, "J1", out[0].Journal)
	assert.Equal(t, "PDF BODY TWO", out[1].Text)

	// Second run reuses the saved PDFs instead of re-downloading.
	out2, stats2, err := f.FetchAll(context.Background(), records, nil)
	require.NoError(t, err)
	assert.Len(t, out2, 2)
	assert.Equal(t, 2, stats2.Cached)
	assert.Equal(t, 0, stats2.Downloaded)
}

func TestFetchAll_EmptyExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		// Empty body: extraction yields nothing usable.
	}))
	defer srv.Close()

	f, err := NewFetcher(FetcherConfig{PDFDir: t.TempDir(), Extractor: fileExtractor{}})
	require.NoError(t, err)

	out, stats, err := f.FetchAll(context.Background(), []models.LiteratureRecord{
		{PMID: "9", PDFURL: srv.URL},
	}, nil)
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Equal(t, 1, stats.EmptyText)
}

func TestIngestDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "NCCN_cns_2024.pdf"), []byte("nccn body"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "misc_notes.pdf"), []byte("misc body"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not a pdf"), 0o644))

	records, stats, err := IngestDirectory(dir, fileExtractor{})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Records)
	assert.Equal(t, 2, stats.Extracted)
	require.Len(t, records, 2)

	byFile := map[string]models.GuidelineRecord{}
	for _, rec := range records {
		byFile[rec.FileName] = rec
	}

	nccn := byFile["NCCN_cns_2024.pdf"]
	assert.Equal(t, "NCCN Guidelines: Central Nervous System Cancers", nccn.GuidelineName)
	assert.Equal(t, "2024", nccn.Year)
	assert.Equal(t, models.SourceTypeGuideline, nccn.SourceType)

	misc := byFile["misc_notes.pdf"]
	assert.Equal(t, "misc_notes.pdf", misc.GuidelineName, "unrecognized files keep their file name")
}

func TestIngestDirectory_Missing(t *testing.T) {
	records, stats, err := IngestDirectory(filepath.Join(t.TempDir(), "absent"), fileExtractor{})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, stats.Records)
}
