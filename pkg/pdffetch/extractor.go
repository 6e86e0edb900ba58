package pdffetch

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// TextExtractor pulls plain text out of a PDF file. The pipeline treats
// extraction as an opaque collaborator; tests substitute a fake.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// PDFExtractor extracts text with a pure-Go PDF reader.
type PDFExtractor struct{}

func (PDFExtractor) ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("failed to read extracted text from %s: %w", path, err)
	}

	return buf.String(), nil
}
