package pdffetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/oncorag/gliorag/internal/models"
)

type FetcherConfig struct {
	PDFDir    string
	Timeout   time.Duration
	Extractor TextExtractor
	UserAgent string
}

// Fetcher downloads article PDFs for literature records and extracts their
// full text into guideline records. Candidate URLs come from an explicit
// pdf_url field or from following the DOI redirect; responses that are not
// PDFs are expected negatives, not errors.
type Fetcher struct {
	config FetcherConfig
	client *http.Client
}

// Stats accounts for one fetch run.
type Stats struct {
	Records    int
	NoURL      int
	NotPDF     int
	Failed     int
	EmptyText  int
	Extracted  int
	Downloaded int
	Cached     int
}

func NewFetcher(config FetcherConfig) (*Fetcher, error) {
	if config.PDFDir == "" {
		return nil, fmt.Errorf("PDF directory is required")
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.Extractor == nil {
		config.Extractor = PDFExtractor{}
	}
	if config.UserAgent == "" {
		config.UserAgent = "gliorag/1.0"
	}

	if err := os.MkdirAll(config.PDFDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create PDF directory: %w", err)
	}

	return &Fetcher{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}, nil
}

// FetchAll walks the literature records, downloads whatever resolves to a
// PDF, extracts text, and returns the resulting guideline records. Records
// without a candidate URL or without PDF content are skipped and counted.
func (f *Fetcher) FetchAll(ctx context.Context, records []models.LiteratureRecord, onProgress func(done int)) ([]models.GuidelineRecord, Stats, error) {
	var out []models.GuidelineRecord
	stats := Stats{Records: len(records)}

	for i, rec := range records {
		if onProgress != nil {
			onProgress(i)
		}

		candidate := CandidateURL(rec)
		if candidate == "" {
			stats.NoURL++
			continue
		}

		name := rec.PMID
		if name == "" {
			name = "unknown"
		}
		pdfPath := filepath.Join(f.config.PDFDir, SafeFilename(name+".pdf"))

		if _, err := os.Stat(pdfPath); err == nil {
			stats.Cached++
		} else {
			ok, err := f.download(ctx, candidate, pdfPath)
			if err != nil {
				log.Printf("[pdffetch] download failed for %s: %v", candidate, err)
				stats.Failed++
				continue
			}
			if !ok {
				stats.NotPDF++
				continue
			}
			stats.Downloaded++
		}

		text, err := f.config.Extractor.ExtractText(pdfPath)
		if err != nil {
			log.Printf("[pdffetch] extraction failed for %s: %v", pdfPath, err)
			stats.Failed++
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			stats.EmptyText++
			continue
		}

		out = append(out, models.GuidelineRecord{
			GuidelineName: rec.Title,
			Year:          rec.Year,
			Text:          text,
			SourceType:    models.SourceTypeGuidelinePDF,
			FileName:      filepath.Base(pdfPath),
			PMID:          rec.PMID,
			Journal:       rec.Journal,
			DOI:           rec.DOI,
			OriginalURL:   candidate,
		})
		stats.Extracted++
	}

	return out, stats, nil
}

// download fetches the URL following redirects. A PDF response is written
// to dest and reported true. An HTML landing page is probed once for a
// citation_pdf_url meta tag; anything else is a negative outcome (false,
// no error).
func (f *Fetcher) download(ctx context.Context, rawURL, dest string) (bool, error) {
	return f.downloadOnce(ctx, rawURL, dest, true)
}

func (f *Fetcher) downloadOnce(ctx context.Context, rawURL, dest string, followLanding bool) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, rawURL)
	}

	ctype := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.Contains(ctype, "pdf"):
		return true, f.save(resp.Body, dest)

	case followLanding && strings.Contains(ctype, "html"):
		pdfURL, err := findCitationPDF(resp.Body, resp.Request.URL)
		if err != nil || pdfURL == "" {
			return false, nil
		}
		return f.downloadOnce(ctx, pdfURL, dest, false)

	default:
		return false, nil
	}
}

func (f *Fetcher) save(body io.Reader, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, body); err != nil {
		os.Remove(dest)
		return err
	}
	return nil
}

// findCitationPDF looks for the citation_pdf_url meta tag most publishers
// put on article landing pages, resolving it against the page URL.
func findCitationPDF(body io.Reader, base *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", err
	}

	href, exists := doc.Find(`meta[name="citation_pdf_url"]`).Attr("content")
	if !exists || href == "" {
		return "", nil
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if !parsed.IsAbs() && base != nil {
		parsed = base.ResolveReference(parsed)
	}
	return parsed.String(), nil
}

// CandidateURL picks the download URL for a record: an explicit pdf_url
// wins, otherwise the DOI resolver, otherwise nothing.
func CandidateURL(rec models.LiteratureRecord) string {
	if rec.PDFURL != "" {
		return rec.PDFURL
	}
	if rec.DOI != "" {
		return "https://doi.org/" + rec.DOI
	}
	return ""
}

var unsafeFilenameChars = regexp.MustCompile(`[^0-9A-Za-z_.-]`)

// SafeFilename strips everything but letters, digits, underscore, dot and
// dash, mapping spaces to underscores first.
func SafeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	return unsafeFilenameChars.ReplaceAllString(name, "")
}
