package service

import (
	"fmt"
	"strings"

	"pdf-toolkit-server/internal/domain"

	"github.com/ledongthuc/pdf"
)

// PlainTextExtractor implements domain.TextExtractor with ledongthuc/pdf.
type PlainTextExtractor struct {
	logger domain.Logger
}

// NewTextExtractor creates a plain-text extractor.
func NewTextExtractor(logger domain.Logger) *PlainTextExtractor {
	return &PlainTextExtractor{logger: logger}
}

// ExtractText concatenates the text of every page in page order. Each page is
// introduced by a "--- Page N ---" marker and followed by a blank line. A page
// that cannot be extracted degrades to an empty page rather than failing the
// whole document.
func (e *PlainTextExtractor) ExtractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := reader.NumPage()
	for num := 1; num <= total; num++ {
		fmt.Fprintf(&b, "--- Page %d ---\n\n", num)

		page := reader.Page(num)
		if page.V.IsNull() {
			b.WriteString("\n\n")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("Failed to extract text from page", "page", num, "total", total, "error", err)
			text = ""
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	return b.String(), nil
}
