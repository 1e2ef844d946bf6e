package ingest

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ExtractFunc extracts plain text and a page count from a document file.
// Injected into the Pipeline so tests can avoid real PDF fixtures.
type ExtractFunc func(path string) (text string, pages int, err error)

// ExtractPDF reads a PDF file and returns its plain text content.
func ExtractPDF(path string) (string, int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("opening pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", 0, fmt.Errorf("extracting text: %w", err)
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", 0, fmt.Errorf("reading text: %w", err)
	}

	return buf.String(), reader.NumPage(), nil
}
