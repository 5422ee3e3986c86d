package domain

// UploadedDocument represents one accepted PDF held for a session.
// It is immutable once stored and replaced wholesale on re-upload.
type UploadedDocument struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	SizeDisplay string `json:"size_display"`
	PageCount   int    `json:"page_count"`

	// StoredName is the blob store key for the raw payload.
	StoredName string `json:"-"`
}

// ProcessedFile represents one output produced by a merge or split operation.
type ProcessedFile struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	SizeDisplay string `json:"size_display"`
	PageCount   int    `json:"page_count"`

	StoredName string `json:"-"`
}

// FileUpload carries one raw upload from the HTTP layer into a service.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// RejectedFile reports an upload that failed validation during a batch upload.
type RejectedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ExportFormat selects the output format for extracted text.
type ExportFormat string

const (
	ExportFormatTXT  ExportFormat = "txt"
	ExportFormatDOCX ExportFormat = "docx"
)

// ExportedText is the materialized export of a session's extracted text.
type ExportedText struct {
	Name string
	MIME string
	Data []byte
}
