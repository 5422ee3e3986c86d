package service

import (
	"fmt"
	"os"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFCPUEngine implements domain.PDFEngine on top of pdfcpu's file-based API.
type PDFCPUEngine struct {
	conf *model.Configuration
}

// NewPDFEngine creates a pdfcpu-backed engine with default configuration.
func NewPDFEngine() *PDFCPUEngine {
	return &PDFCPUEngine{conf: model.NewDefaultConfiguration()}
}

// Validate checks that the file is a well-formed PDF.
func (e *PDFCPUEngine) Validate(path string) error {
	return pdfapi.ValidateFile(path, e.conf)
}

// PageCount returns the number of pages in the file.
func (e *PDFCPUEngine) PageCount(path string) (int, error) {
	return pdfapi.PageCountFile(path)
}

// Merge concatenates every page of every input, in order, into outPath.
// MergeAppendFile is more tolerant of mildly broken inputs, so it serves
// as a fallback when the strict create-mode merge fails.
func (e *PDFCPUEngine) Merge(inPaths []string, outPath string) error {
	if err := pdfapi.MergeCreateFile(inPaths, outPath, false, e.conf); err != nil {
		_ = os.Remove(outPath)
		if e2 := pdfapi.MergeAppendFile(inPaths, outPath, false, e.conf); e2 != nil {
			return fmt.Errorf("merge failed: %w", err)
		}
	}
	return nil
}

// ExtractPages writes the inclusive 1-indexed page range [from, to] of
// inPath to outPath, preserving page order.
func (e *PDFCPUEngine) ExtractPages(inPath, outPath string, from, to int) error {
	selection := []string{fmt.Sprintf("%d-%d", from, to)}
	if err := pdfapi.TrimFile(inPath, outPath, selection, e.conf); err != nil {
		return fmt.Errorf("page extraction failed for %s: %w", selection[0], err)
	}
	return nil
}
