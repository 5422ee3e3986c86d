package service

import (
	"strings"

	"pdf-toolkit-server/internal/domain"
	"pdf-toolkit-server/internal/session"
	apperrors "pdf-toolkit-server/pkg/errors"
)

const docxMIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// TextConverter implements domain.ConvertService: extract a PDF's text,
// accept edits, and export the buffer as txt or docx.
type TextConverter struct {
	sessions  *session.Store
	blobs     domain.BlobStore
	engine    domain.PDFEngine
	extractor domain.TextExtractor
	writer    domain.DocumentWriter
	logger    domain.Logger
}

// NewConvertService creates the text converter.
func NewConvertService(
	sessions *session.Store,
	blobs domain.BlobStore,
	engine domain.PDFEngine,
	extractor domain.TextExtractor,
	writer domain.DocumentWriter,
	logger domain.Logger,
) *TextConverter {
	return &TextConverter{
		sessions:  sessions,
		blobs:     blobs,
		engine:    engine,
		extractor: extractor,
		writer:    writer,
		logger:    logger,
	}
}

// Upload stores the source PDF, replacing any previous file and clearing
// the text buffer.
func (s *TextConverter) Upload(sessionID string, up domain.FileUpload) (*domain.UploadedDocument, error) {
	doc, err := storeUpload(s.blobs, s.engine, up)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	if sess.Convert.File != nil {
		s.removeBlob(sessionID, sess.Convert.File.StoredName)
	}
	sess.Convert = session.ConvertState{File: doc}

	s.logger.Info("Convert file uploaded", "session_id", sessionID, "file", doc.Name, "pages", doc.PageCount)
	out := *doc
	return &out, nil
}

// Extract pulls the document's text into the session buffer. Re-extraction
// of the same stored bytes yields the same text, discarding any edits.
func (s *TextConverter) Extract(sessionID string) (string, error) {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	if sess.Convert.File == nil {
		return "", apperrors.NewValidationError("No file uploaded")
	}

	text, err := s.extractor.ExtractText(s.blobs.Path(sess.Convert.File.StoredName))
	if err != nil {
		return "", apperrors.NewUpstreamFailureError("Failed to extract text", err)
	}

	sess.Convert.Text = text
	sess.Convert.Extracted = true
	s.logger.Info("Text extracted", "session_id", sessionID, "file", sess.Convert.File.Name, "chars", len(text))
	return text, nil
}

// UpdateText replaces the stored text verbatim. No validation is applied;
// the latest full string wins.
func (s *TextConverter) UpdateText(sessionID string, text string) error {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	sess.Convert.Text = text
	return nil
}

// Export materializes the current text buffer in the requested format.
// Exporting before extraction has run fails with no_text_available.
func (s *TextConverter) Export(sessionID string, format domain.ExportFormat) (*domain.ExportedText, error) {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	if !sess.Convert.Extracted {
		return nil, apperrors.NewNoTextAvailableError("No text available")
	}

	base := "document"
	if sess.Convert.File != nil {
		base = strings.TrimSuffix(sess.Convert.File.Name, ".pdf")
	}

	switch format {
	case domain.ExportFormatTXT:
		return &domain.ExportedText{
			Name: base + "-extracted.txt",
			MIME: "text/plain; charset=utf-8",
			Data: []byte(sess.Convert.Text),
		}, nil

	case domain.ExportFormatDOCX:
		data, err := s.writer.FromText(sess.Convert.Text)
		if err != nil {
			return nil, apperrors.NewUpstreamFailureError("Failed to build docx", err)
		}
		return &domain.ExportedText{
			Name: base + "-extracted.docx",
			MIME: docxMIMEType,
			Data: data,
		}, nil

	default:
		return nil, apperrors.NewValidationError("Invalid export format", string(format))
	}
}

// Clear discards the source file and text buffer.
func (s *TextConverter) Clear(sessionID string) {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	if sess.Convert.File != nil {
		s.removeBlob(sessionID, sess.Convert.File.StoredName)
	}
	sess.Convert = session.ConvertState{}
}

func (s *TextConverter) removeBlob(sessionID, stored string) {
	if err := s.blobs.Remove(stored); err != nil {
		s.logger.Warn("Failed to remove blob", "session_id", sessionID, "blob", stored, "error", err)
	}
}
