package domain

import "time"

// PDFEngine defines the page-level PDF operations backed by the PDF library.
// All operations work on files held in the blob store.
type PDFEngine interface {
	Validate(path string) error
	PageCount(path string) (int, error)
	Merge(inPaths []string, outPath string) error
	ExtractPages(inPath, outPath string, from, to int) error
}

// TextExtractor extracts the textual content of a PDF, page by page,
// into one concatenated string.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// DocumentWriter renders extracted text as a word-processing document.
type DocumentWriter interface {
	FromText(text string) ([]byte, error)
}

// BlobStore holds session-scoped file payloads. Contents are transient
// scratch space, torn down with the owning session.
type BlobStore interface {
	// Save writes data under a fresh stored name derived from name.
	Save(name string, data []byte) (string, error)
	// Allocate reserves a stored name and returns it with its absolute path
	// so an engine operation can write the file directly.
	Allocate(name string) (stored string, path string)
	Path(stored string) string
	Read(stored string) ([]byte, error)
	Size(stored string) (int64, error)
	Remove(stored string) error
}

// MergeService is the use-case surface of the merge tab: an ordered list of
// uploaded PDFs concatenated into one output.
type MergeService interface {
	AddFiles(sessionID string, uploads []FileUpload) ([]UploadedDocument, []RejectedFile, error)
	Files(sessionID string) []UploadedDocument
	Reorder(sessionID string, from, to int) ([]UploadedDocument, error)
	Process(sessionID string) (*ProcessedFile, error)
	Result(sessionID string) (*ProcessedFile, error)
	Clear(sessionID string)
}

// SplitService is the use-case surface of the split tab: one uploaded PDF
// partitioned into per-range outputs.
type SplitService interface {
	Upload(sessionID string, upload FileUpload) (*UploadedDocument, error)
	Process(sessionID string, req SplitRequest) ([]ProcessedFile, error)
	Output(sessionID string, index int) (*ProcessedFile, error)
	Clear(sessionID string)
}

// ConvertService is the use-case surface of the convert tab: text extraction,
// in-place edits, and export as txt or docx.
type ConvertService interface {
	Upload(sessionID string, upload FileUpload) (*UploadedDocument, error)
	Extract(sessionID string) (string, error)
	UpdateText(sessionID string, text string) error
	Export(sessionID string, format ExportFormat) (*ExportedText, error)
	Clear(sessionID string)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetSessionTTL() time.Duration
	GetAllowedOrigins() []string
}
