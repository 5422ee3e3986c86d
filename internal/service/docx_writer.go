package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gingfrederik/docx"
)

// DocxWriter implements domain.DocumentWriter with a minimal OOXML writer.
type DocxWriter struct{}

// NewDocxWriter creates a DOCX document writer.
func NewDocxWriter() *DocxWriter {
	return &DocxWriter{}
}

// FromText renders text as a document with one paragraph per line.
// The newline character is the paragraph boundary; empty lines become
// empty paragraphs.
func (w *DocxWriter) FromText(text string) ([]byte, error) {
	f := docx.NewFile()
	for _, line := range strings.Split(text, "\n") {
		para := f.AddParagraph()
		if line != "" {
			para.AddText(line)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write docx: %w", err)
	}
	return buf.Bytes(), nil
}
