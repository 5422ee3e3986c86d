package handler

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pdf-toolkit-server/internal/domain"
)

// Noop logger used by handler tests.
type testLogger struct{}

func (testLogger) Info(msg string, fields ...interface{})             {}
func (testLogger) Error(msg string, err error, fields ...interface{}) {}
func (testLogger) Debug(msg string, fields ...interface{})            {}
func (testLogger) Warn(msg string, fields ...interface{})             {}

type stubConfig struct {
	maxFileSize int64
}

func (c stubConfig) GetServerPort() string        { return "8080" }
func (c stubConfig) GetUploadPath() string        { return "/tmp" }
func (c stubConfig) GetMaxFileSize() int64        { return c.maxFileSize }
func (c stubConfig) GetLogLevel() string          { return "info" }
func (c stubConfig) GetSessionTTL() time.Duration { return time.Hour }
func (c stubConfig) GetAllowedOrigins() []string {
	return []string{"http://localhost:5173"}
}

func newStubConfig() stubConfig {
	return stubConfig{maxFileSize: 50 * 1024 * 1024}
}

// stubBlobs resolves stored names to paths without touching disk.
type stubBlobs struct {
	paths map[string]string
}

func (b *stubBlobs) Save(name string, data []byte) (string, error) { return name, nil }
func (b *stubBlobs) Allocate(name string) (string, string)         { return name, b.Path(name) }
func (b *stubBlobs) Path(stored string) string {
	if p, ok := b.paths[stored]; ok {
		return p
	}
	return "/nonexistent/" + stored
}
func (b *stubBlobs) Read(stored string) ([]byte, error) {
	return nil, fmt.Errorf("blob %s not found", stored)
}
func (b *stubBlobs) Size(stored string) (int64, error) { return 0, nil }
func (b *stubBlobs) Remove(stored string) error        { return nil }

// Service stubs with overridable function fields.
type stubMergeService struct {
	addFilesFn func(sessionID string, uploads []domain.FileUpload) ([]domain.UploadedDocument, []domain.RejectedFile, error)
	filesFn    func(sessionID string) []domain.UploadedDocument
	reorderFn  func(sessionID string, from, to int) ([]domain.UploadedDocument, error)
	processFn  func(sessionID string) (*domain.ProcessedFile, error)
	resultFn   func(sessionID string) (*domain.ProcessedFile, error)
	cleared    []string
}

func (s *stubMergeService) AddFiles(sessionID string, uploads []domain.FileUpload) ([]domain.UploadedDocument, []domain.RejectedFile, error) {
	return s.addFilesFn(sessionID, uploads)
}

func (s *stubMergeService) Files(sessionID string) []domain.UploadedDocument {
	if s.filesFn == nil {
		return nil
	}
	return s.filesFn(sessionID)
}

func (s *stubMergeService) Reorder(sessionID string, from, to int) ([]domain.UploadedDocument, error) {
	return s.reorderFn(sessionID, from, to)
}

func (s *stubMergeService) Process(sessionID string) (*domain.ProcessedFile, error) {
	return s.processFn(sessionID)
}

func (s *stubMergeService) Result(sessionID string) (*domain.ProcessedFile, error) {
	return s.resultFn(sessionID)
}

func (s *stubMergeService) Clear(sessionID string) {
	s.cleared = append(s.cleared, sessionID)
}

type stubSplitService struct {
	uploadFn  func(sessionID string, up domain.FileUpload) (*domain.UploadedDocument, error)
	processFn func(sessionID string, req domain.SplitRequest) ([]domain.ProcessedFile, error)
	outputFn  func(sessionID string, index int) (*domain.ProcessedFile, error)
	cleared   []string
}

func (s *stubSplitService) Upload(sessionID string, up domain.FileUpload) (*domain.UploadedDocument, error) {
	return s.uploadFn(sessionID, up)
}

func (s *stubSplitService) Process(sessionID string, req domain.SplitRequest) ([]domain.ProcessedFile, error) {
	return s.processFn(sessionID, req)
}

func (s *stubSplitService) Output(sessionID string, index int) (*domain.ProcessedFile, error) {
	return s.outputFn(sessionID, index)
}

func (s *stubSplitService) Clear(sessionID string) {
	s.cleared = append(s.cleared, sessionID)
}

type stubConvertService struct {
	uploadFn     func(sessionID string, up domain.FileUpload) (*domain.UploadedDocument, error)
	extractFn    func(sessionID string) (string, error)
	updateTextFn func(sessionID string, text string) error
	exportFn     func(sessionID string, format domain.ExportFormat) (*domain.ExportedText, error)
	cleared      []string
}

func (s *stubConvertService) Upload(sessionID string, up domain.FileUpload) (*domain.UploadedDocument, error) {
	return s.uploadFn(sessionID, up)
}

func (s *stubConvertService) Extract(sessionID string) (string, error) {
	return s.extractFn(sessionID)
}

func (s *stubConvertService) UpdateText(sessionID string, text string) error {
	return s.updateTextFn(sessionID, text)
}

func (s *stubConvertService) Export(sessionID string, format domain.ExportFormat) (*domain.ExportedText, error) {
	return s.exportFn(sessionID, format)
}

func (s *stubConvertService) Clear(sessionID string) {
	s.cleared = append(s.cleared, sessionID)
}

// withSession attaches a session ID the way the middleware does.
func withSession(r *http.Request, sessionID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionContextKey, sessionID))
}

// multipartRequest builds a multipart POST with the given field holding one
// part per name/payload pair.
func multipartRequest(t *testing.T, target, field string, files map[string][]byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, target, &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}
