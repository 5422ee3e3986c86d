package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pdf-toolkit-server/internal/domain"

	"github.com/gorilla/mux"
)

// SplitHandler handles split tab HTTP requests
type SplitHandler struct {
	split  domain.SplitService
	blobs  domain.BlobStore
	config domain.Config
	logger domain.Logger
}

// NewSplitHandler creates a new split handler
func NewSplitHandler(split domain.SplitService, blobs domain.BlobStore, config domain.Config, logger domain.Logger) *SplitHandler {
	return &SplitHandler{
		split:  split,
		blobs:  blobs,
		config: config,
		logger: logger,
	}
}

// Upload handles the single PDF upload for splitting (multipart field "file")
func (h *SplitHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	if err := r.ParseMultipartForm(h.config.GetMaxFileSize()); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	upload, err := singleUpload(r.MultipartForm, "file", h.config.GetMaxFileSize())
	if err != nil {
		writeAppError(w, err)
		return
	}

	doc, err := h.split.Upload(sessionID, *upload)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "file": doc})
}

type splitRangeRequest struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type splitProcessRequest struct {
	Mode         string              `json:"mode"`
	PagesPerFile *int                `json:"pages_per_file"`
	Ranges       []splitRangeRequest `json:"ranges"`
}

// Process splits the uploaded PDF according to the selected mode
func (h *SplitHandler) Process(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	var req splitProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	splitReq := domain.SplitRequest{
		Mode:         domain.SplitMode(req.Mode),
		PagesPerFile: 2,
	}
	if req.Mode == "" {
		splitReq.Mode = domain.SplitModeIndividual
	}
	if req.PagesPerFile != nil {
		splitReq.PagesPerFile = *req.PagesPerFile
	}
	for _, rng := range req.Ranges {
		splitReq.Ranges = append(splitReq.Ranges, domain.PageRange{Start: rng.Start, End: rng.End})
	}

	outputs, err := h.split.Process(sessionID, splitReq)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "files": outputs})
}

// Download streams one split output by index
func (h *SplitHandler) Download(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid file index")
		return
	}

	output, err := h.split.Output(sessionID, index)
	if err != nil {
		writeAppError(w, err)
		return
	}

	serveAttachment(w, r, h.blobs.Path(output.StoredName), output.Name, "application/pdf")
}
