package service

import (
	"pdf-toolkit-server/internal/domain"
	"pdf-toolkit-server/internal/session"
	apperrors "pdf-toolkit-server/pkg/errors"

	"github.com/dustin/go-humanize"
)

const mergedDocumentName = "merged-document.pdf"

// MergeOrchestrator implements domain.MergeService: an ordered list of
// uploaded PDFs, reorderable by index, concatenated into one output.
type MergeOrchestrator struct {
	sessions *session.Store
	blobs    domain.BlobStore
	engine   domain.PDFEngine
	logger   domain.Logger
}

// NewMergeService creates the merge orchestrator.
func NewMergeService(sessions *session.Store, blobs domain.BlobStore, engine domain.PDFEngine, logger domain.Logger) *MergeOrchestrator {
	return &MergeOrchestrator{
		sessions: sessions,
		blobs:    blobs,
		engine:   engine,
		logger:   logger,
	}
}

// AddFiles appends valid uploads to the session's ordered list. Uploads that
// fail validation are reported per entry; zero valid uploads is not an
// operation failure. Appending anything invalidates a prior merge result.
func (s *MergeOrchestrator) AddFiles(sessionID string, uploads []domain.FileUpload) ([]domain.UploadedDocument, []domain.RejectedFile, error) {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	var accepted []domain.UploadedDocument
	var rejected []domain.RejectedFile
	for _, up := range uploads {
		doc, err := storeUpload(s.blobs, s.engine, up)
		if err != nil {
			s.logger.Warn("Merge upload rejected", "session_id", sessionID, "file", up.Name, "error", err)
			rejected = append(rejected, domain.RejectedFile{Name: up.Name, Reason: err.Error()})
			continue
		}
		sess.Merge.Files = append(sess.Merge.Files, *doc)
		accepted = append(accepted, *doc)
	}

	if len(accepted) > 0 {
		s.invalidateResult(sess)
		s.logger.Info("Merge files added", "session_id", sessionID, "added", len(accepted), "total", len(sess.Merge.Files))
	}
	return accepted, rejected, nil
}

// Files returns a snapshot of the session's ordered file list.
func (s *MergeOrchestrator) Files(sessionID string) []domain.UploadedDocument {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	out := make([]domain.UploadedDocument, len(sess.Merge.Files))
	copy(out, sess.Merge.Files)
	return out
}

// Reorder moves the element at from to position to. Equal indices are a
// no-op; the move invalidates a prior merge result.
func (s *MergeOrchestrator) Reorder(sessionID string, from, to int) ([]domain.UploadedDocument, error) {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	files := sess.Merge.Files
	if from < 0 || from >= len(files) || to < 0 || to >= len(files) {
		return nil, apperrors.NewIndexOutOfRangeError("Reorder index out of range")
	}

	if from != to {
		moved := files[from]
		remaining := make([]domain.UploadedDocument, 0, len(files))
		remaining = append(remaining, files[:from]...)
		remaining = append(remaining, files[from+1:]...)

		reordered := make([]domain.UploadedDocument, 0, len(files))
		reordered = append(reordered, remaining[:to]...)
		reordered = append(reordered, moved)
		reordered = append(reordered, remaining[to:]...)

		sess.Merge.Files = reordered
		s.invalidateResult(sess)
	}

	out := make([]domain.UploadedDocument, len(sess.Merge.Files))
	copy(out, sess.Merge.Files)
	return out, nil
}

// Process concatenates every page of every file in current order into one
// output. At least two files are required.
func (s *MergeOrchestrator) Process(sessionID string) (*domain.ProcessedFile, error) {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	if len(sess.Merge.Files) < 2 {
		return nil, apperrors.NewInsufficientInputsError("Need at least 2 files to merge")
	}

	s.invalidateResult(sess)

	inPaths := make([]string, len(sess.Merge.Files))
	for i, f := range sess.Merge.Files {
		inPaths[i] = s.blobs.Path(f.StoredName)
	}

	stored, outPath := s.blobs.Allocate(mergedDocumentName)
	if err := s.engine.Merge(inPaths, outPath); err != nil {
		_ = s.blobs.Remove(stored)
		return nil, apperrors.NewUpstreamFailureError("Failed to merge documents", err)
	}

	pages, err := s.engine.PageCount(outPath)
	if err != nil {
		_ = s.blobs.Remove(stored)
		return nil, apperrors.NewUpstreamFailureError("Failed to read merged document", err)
	}

	result := &domain.ProcessedFile{
		Name:       mergedDocumentName,
		PageCount:  pages,
		StoredName: stored,
	}
	if size, err := s.blobs.Size(stored); err == nil {
		result.Size = size
		result.SizeDisplay = humanize.Bytes(uint64(size))
	}

	sess.Merge.Result = result
	s.logger.Info("Merge processed", "session_id", sessionID, "inputs", len(inPaths), "pages", pages)

	out := *result
	return &out, nil
}

// Result returns the current merge output, if any.
func (s *MergeOrchestrator) Result(sessionID string) (*domain.ProcessedFile, error) {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	if sess.Merge.Result == nil {
		return nil, apperrors.NewNotFoundError("No merged document available")
	}
	out := *sess.Merge.Result
	return &out, nil
}

// Clear discards the ordered list, any result, and their stored payloads.
func (s *MergeOrchestrator) Clear(sessionID string) {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	for _, f := range sess.Merge.Files {
		s.removeBlob(sessionID, f.StoredName)
	}
	s.invalidateResult(sess)
	sess.Merge = session.MergeState{}
}

func (s *MergeOrchestrator) invalidateResult(sess *session.Session) {
	if sess.Merge.Result != nil {
		s.removeBlob(sess.ID, sess.Merge.Result.StoredName)
		sess.Merge.Result = nil
	}
}

func (s *MergeOrchestrator) removeBlob(sessionID, stored string) {
	if err := s.blobs.Remove(stored); err != nil {
		s.logger.Warn("Failed to remove blob", "session_id", sessionID, "blob", stored, "error", err)
	}
}
