package handler

import (
	"encoding/json"
	"net/http"

	"pdf-toolkit-server/internal/domain"

	"github.com/gorilla/mux"
)

// ConvertHandler handles convert tab HTTP requests
type ConvertHandler struct {
	convert domain.ConvertService
	config  domain.Config
	logger  domain.Logger
}

// NewConvertHandler creates a new convert handler
func NewConvertHandler(convert domain.ConvertService, config domain.Config, logger domain.Logger) *ConvertHandler {
	return &ConvertHandler{
		convert: convert,
		config:  config,
		logger:  logger,
	}
}

// Upload handles the single PDF upload for text extraction (multipart field "file")
func (h *ConvertHandler) Upload(w http.ResponseWriter, r *http.Request) {
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

	doc, err := h.convert.Upload(sessionID, *upload)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "file": doc})
}

// Extract pulls the uploaded PDF's text into the session buffer
func (h *ConvertHandler) Extract(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	text, err := h.convert.Extract(sessionID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "text": text})
}

type updateTextRequest struct {
	Text *string `json:"text"`
}

// UpdateText replaces the session's text buffer with the submitted string
func (h *ConvertHandler) UpdateText(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	var req updateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == nil {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	if err := h.convert.UpdateText(sessionID, *req.Text); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Download exports the text buffer as txt or docx
func (h *ConvertHandler) Download(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	format := domain.ExportFormat(mux.Vars(r)["format"])
	export, err := h.convert.Export(sessionID, format)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeAttachment(w, export.Data, export.Name, export.MIME)
}
