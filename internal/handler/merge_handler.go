// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"net/http"

	"pdf-toolkit-server/internal/domain"
)

// MergeHandler handles merge tab HTTP requests
type MergeHandler struct {
	merge  domain.MergeService
	blobs  domain.BlobStore
	config domain.Config
	logger domain.Logger
}

// NewMergeHandler creates a new merge handler
func NewMergeHandler(merge domain.MergeService, blobs domain.BlobStore, config domain.Config, logger domain.Logger) *MergeHandler {
	return &MergeHandler{
		merge:  merge,
		blobs:  blobs,
		config: config,
		logger: logger,
	}
}

// Upload handles multiple PDF file uploads for merging (multipart field "files")
func (h *MergeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	if err := r.ParseMultipartForm(h.config.GetMaxFileSize()); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	uploads, err := readUploads(headers, h.config.GetMaxFileSize())
	if err != nil {
		writeAppError(w, err)
		return
	}

	accepted, rejected, err := h.merge.AddFiles(sessionID, uploads)
	if err != nil {
		writeAppError(w, err)
		return
	}

	if accepted == nil {
		accepted = make([]domain.UploadedDocument, 0)
	}
	if rejected == nil {
		rejected = make([]domain.RejectedFile, 0)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"files":    accepted,
		"rejected": rejected,
	})
}

// Files returns the session's current ordered file list
func (h *MergeHandler) Files(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	files := h.merge.Files(sessionID)
	if files == nil {
		files = make([]domain.UploadedDocument, 0)
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

type reorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// Reorder moves a file to a new position in the merge order
func (h *MergeHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.From == nil || req.To == nil {
		writeError(w, http.StatusBadRequest, "Both from and to indices are required")
		return
	}

	files, err := h.merge.Reorder(sessionID, *req.From, *req.To)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "files": files})
}

// Process merges the uploaded PDFs in current order
func (h *MergeHandler) Process(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	result, err := h.merge.Process(sessionID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "file": result})
}

// Download streams the merged PDF
func (h *MergeHandler) Download(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	result, err := h.merge.Result(sessionID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	serveAttachment(w, r, h.blobs.Path(result.StoredName), result.Name, "application/pdf")
}
