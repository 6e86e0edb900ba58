package models

import "strings"

// Source type tags carried through record metadata and used by the context
// assembler to pick a citation header format.
const (
	SourceTypePubMed           = "pubmed"
	SourceTypePubMedGuideline  = "pubmed_guideline"
	SourceTypeGuideline        = "guideline"
	SourceTypeGuidelinePDF     = "guideline_pdf"
	SourceTypeDatasetGuideline = "epfl_guideline"
)

// LiteratureRecord is one PubMed article as persisted in the literature
// JSONL file, one object per line.
type LiteratureRecord struct {
	PMID       string   `json:"pmid"`
	PMCID      string   `json:"pmcid,omitempty"`
	DOI        string   `json:"doi,omitempty"`
	Title      string   `json:"title"`
	Abstract   string   `json:"abstract"`
	Journal    string   `json:"journal"`
	Year       string   `json:"year"`
	MeshTerms  []string `json:"mesh_terms,omitempty"`
	PubTypes   []string `json:"pub_types,omitempty"`
	CleanText  string   `json:"clean_text,omitempty"`
	Fulltext   string   `json:"fulltext,omitempty"`
	PDFURL     string   `json:"pdf_url,omitempty"`
	SourceType string   `json:"source_type"`
}

// ResolveText returns the canonical text for indexing: extracted full text
// when available, otherwise title plus abstract. Empty means the record is
// not indexable and must be skipped.
func (r LiteratureRecord) ResolveText() string {
	if t := strings.TrimSpace(r.CleanText); t != "" {
		return t
	}
	if t := strings.TrimSpace(r.Fulltext); t != "" {
		return t
	}
	return strings.TrimSpace(r.Title + "\n\n" + r.Abstract)
}

// HasFulltext reports whether the record carries extracted article text
// rather than just title and abstract.
func (r LiteratureRecord) HasFulltext() bool {
	return strings.TrimSpace(r.CleanText) != "" || strings.TrimSpace(r.Fulltext) != ""
}

// GuidelineRecord is one guideline document: a local PDF, a PDF downloaded
// via DOI, or a row from the curated open-guidelines dataset.
type GuidelineRecord struct {
	GuidelineName string `json:"guideline_name"`
	Year          string `json:"year,omitempty"`
	Text          string `json:"text"`
	SourceType    string `json:"source_type"`
	FileName      string `json:"file_name,omitempty"`
	URL           string `json:"url,omitempty"`

	// Provenance for records produced from downloaded article PDFs.
	PMID        string `json:"pmid,omitempty"`
	Journal     string `json:"journal,omitempty"`
	DOI         string `json:"doi,omitempty"`
	OriginalURL string `json:"original_url,omitempty"`
	SourceTag   string `json:"source_tag,omitempty"`
}

// ResolveText returns the guideline body text, trimmed.
func (r GuidelineRecord) ResolveText() string {
	return strings.TrimSpace(r.Text)
}
