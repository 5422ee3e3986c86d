package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"pdf-toolkit-server/internal/domain"
	apperrors "pdf-toolkit-server/pkg/errors"
)

// readUploads drains multipart file headers into memory, enforcing the
// per-file size limit.
func readUploads(headers []*multipart.FileHeader, maxSize int64) ([]domain.FileUpload, error) {
	uploads := make([]domain.FileUpload, 0, len(headers))
	for _, header := range headers {
		up, err := readUpload(header, maxSize)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, *up)
	}
	return uploads, nil
}

func readUpload(header *multipart.FileHeader, maxSize int64) (*domain.FileUpload, error) {
	if header.Size > maxSize {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("File too large. Maximum file size is %d bytes", maxSize), header.Filename)
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to read uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to read uploaded file", err)
	}

	return &domain.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// singleUpload pulls the one multipart file expected under field from the
// parsed form.
func singleUpload(form *multipart.Form, field string, maxSize int64) (*domain.FileUpload, error) {
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, apperrors.NewValidationError("No file uploaded")
	}
	return readUpload(headers[0], maxSize)
}
