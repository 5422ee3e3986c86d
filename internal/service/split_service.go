package service

import (
	"fmt"

	"pdf-toolkit-server/internal/domain"
	"pdf-toolkit-server/internal/session"
	apperrors "pdf-toolkit-server/pkg/errors"

	"github.com/dustin/go-humanize"
)

const defaultPagesPerFile = 2

// SplitPlanner implements domain.SplitService: one uploaded PDF partitioned
// into per-range outputs according to the chosen split mode.
type SplitPlanner struct {
	sessions *session.Store
	blobs    domain.BlobStore
	engine   domain.PDFEngine
	logger   domain.Logger
}

// NewSplitService creates the split planner.
func NewSplitService(sessions *session.Store, blobs domain.BlobStore, engine domain.PDFEngine, logger domain.Logger) *SplitPlanner {
	return &SplitPlanner{
		sessions: sessions,
		blobs:    blobs,
		engine:   engine,
		logger:   logger,
	}
}

// Upload stores the source PDF, replacing any previous file and discarding
// previous outputs.
func (s *SplitPlanner) Upload(sessionID string, up domain.FileUpload) (*domain.UploadedDocument, error) {
	doc, err := storeUpload(s.blobs, s.engine, up)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	s.dropOutputs(sess)
	if sess.Split.File != nil {
		s.removeBlob(sessionID, sess.Split.File.StoredName)
	}
	sess.Split.File = doc

	s.logger.Info("Split file uploaded", "session_id", sessionID, "file", doc.Name, "pages", doc.PageCount)
	out := *doc
	return &out, nil
}

// Process materializes one output per planned range. Previous outputs are
// discarded first. Overlapping or out-of-order custom ranges are permitted;
// only per-range bounds are validated.
func (s *SplitPlanner) Process(sessionID string, req domain.SplitRequest) ([]domain.ProcessedFile, error) {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	if sess.Split.File == nil {
		return nil, apperrors.NewValidationError("No file uploaded")
	}
	src := sess.Split.File

	plan, err := planRanges(req, src.PageCount)
	if err != nil {
		return nil, err
	}

	s.dropOutputs(sess)

	srcPath := s.blobs.Path(src.StoredName)
	outputs := make([]domain.ProcessedFile, 0, len(plan))
	for i, rng := range plan {
		name := outputName(req.Mode, i, rng)
		stored, outPath := s.blobs.Allocate(name)
		if err := s.engine.ExtractPages(srcPath, outPath, rng.Start, rng.End); err != nil {
			_ = s.blobs.Remove(stored)
			for _, o := range outputs {
				s.removeBlob(sessionID, o.StoredName)
			}
			return nil, apperrors.NewUpstreamFailureError("Failed to split document", err)
		}

		out := domain.ProcessedFile{
			Name:       name,
			PageCount:  rng.Pages(),
			StoredName: stored,
		}
		if size, err := s.blobs.Size(stored); err == nil {
			out.Size = size
			out.SizeDisplay = humanize.Bytes(uint64(size))
		}
		outputs = append(outputs, out)
	}

	sess.Split.Outputs = outputs
	s.logger.Info("Split processed", "session_id", sessionID, "mode", req.Mode, "outputs", len(outputs))

	result := make([]domain.ProcessedFile, len(outputs))
	copy(result, outputs)
	return result, nil
}

// Output returns the produced file at index.
func (s *SplitPlanner) Output(sessionID string, index int) (*domain.ProcessedFile, error) {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	if index < 0 || index >= len(sess.Split.Outputs) {
		return nil, apperrors.NewIndexOutOfRangeError("Split output index out of range")
	}
	out := sess.Split.Outputs[index]
	return &out, nil
}

// Clear discards the source file, outputs, and their stored payloads.
func (s *SplitPlanner) Clear(sessionID string) {
	sess := s.sessions.Get(sessionID)
	sess.Mutex.Lock()
	defer sess.Mutex.Unlock()

	s.dropOutputs(sess)
	if sess.Split.File != nil {
		s.removeBlob(sessionID, sess.Split.File.StoredName)
	}
	sess.Split = session.SplitState{}
}

func (s *SplitPlanner) dropOutputs(sess *session.Session) {
	for _, o := range sess.Split.Outputs {
		s.removeBlob(sess.ID, o.StoredName)
	}
	sess.Split.Outputs = nil
}

func (s *SplitPlanner) removeBlob(sessionID, stored string) {
	if err := s.blobs.Remove(stored); err != nil {
		s.logger.Warn("Failed to remove blob", "session_id", sessionID, "blob", stored, "error", err)
	}
}

// planRanges turns a split request into the ordered list of page ranges to
// materialize, validated against the source page count.
func planRanges(req domain.SplitRequest, pageCount int) ([]domain.PageRange, error) {
	switch req.Mode {
	case domain.SplitModeIndividual:
		plan := make([]domain.PageRange, 0, pageCount)
		for page := 1; page <= pageCount; page++ {
			plan = append(plan, domain.PageRange{Start: page, End: page})
		}
		return plan, nil

	case domain.SplitModeRanges:
		k := req.PagesPerFile
		if k < 1 {
			return nil, apperrors.NewInvalidChunkSizeError(fmt.Sprintf("Pages per file must be at least 1, got %d", k))
		}
		var plan []domain.PageRange
		for start := 1; start <= pageCount; start += k {
			end := start + k - 1
			if end > pageCount {
				end = pageCount
			}
			plan = append(plan, domain.PageRange{Start: start, End: end})
		}
		return plan, nil

	case domain.SplitModeCustom:
		if len(req.Ranges) == 0 {
			return nil, apperrors.NewInvalidRangeError("No ranges specified")
		}
		plan := make([]domain.PageRange, 0, len(req.Ranges))
		for _, rng := range req.Ranges {
			if rng.Start < 1 || rng.End < rng.Start || rng.End > pageCount {
				return nil, apperrors.NewInvalidRangeError(
					fmt.Sprintf("Range %d-%d is outside pages 1-%d", rng.Start, rng.End, pageCount))
			}
			plan = append(plan, rng)
		}
		return plan, nil

	default:
		return nil, apperrors.NewValidationError("Invalid split mode", string(req.Mode))
	}
}

// outputName follows the naming scheme of the download listings: one file
// per page, per chunk, or per requested range.
func outputName(mode domain.SplitMode, index int, rng domain.PageRange) string {
	switch mode {
	case domain.SplitModeIndividual:
		return fmt.Sprintf("page_%d.pdf", rng.Start)
	case domain.SplitModeRanges:
		return fmt.Sprintf("part_%d_pages_%d-%d.pdf", index+1, rng.Start, rng.End)
	default:
		return fmt.Sprintf("range_%d_pages_%d-%d.pdf", index+1, rng.Start, rng.End)
	}
}
