package service

import (
	"bytes"
	"path/filepath"
	"strings"

	"pdf-toolkit-server/internal/domain"
	apperrors "pdf-toolkit-server/pkg/errors"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

var pdfSignature = []byte("%PDF-")

// storeUpload validates one raw upload, persists it, and derives its page
// count. Failing the extension or signature check yields invalid_file_kind;
// a payload the PDF library cannot parse yields upstream_failure.
func storeUpload(blobs domain.BlobStore, engine domain.PDFEngine, up domain.FileUpload) (*domain.UploadedDocument, error) {
	name := filepath.Base(strings.TrimSpace(up.Name))
	if name == "" || name == "." {
		name = "document.pdf"
	}

	if strings.ToLower(filepath.Ext(name)) != ".pdf" {
		return nil, apperrors.NewInvalidFileKindError("Only PDF files are accepted", name)
	}
	if !bytes.HasPrefix(up.Data, pdfSignature) {
		return nil, apperrors.NewInvalidFileKindError("File is not a PDF", name)
	}

	stored, err := blobs.Save(name, up.Data)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to store uploaded file", err)
	}

	pages, err := engine.PageCount(blobs.Path(stored))
	if err != nil {
		_ = blobs.Remove(stored)
		return nil, apperrors.NewUpstreamFailureError("Failed to read PDF", err)
	}

	size := int64(len(up.Data))
	return &domain.UploadedDocument{
		ID:          uuid.NewString(),
		Name:        name,
		Size:        size,
		SizeDisplay: humanize.Bytes(uint64(size)),
		PageCount:   pages,
		StoredName:  stored,
	}, nil
}
