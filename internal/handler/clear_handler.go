package handler

import (
	"net/http"

	"pdf-toolkit-server/internal/domain"

	"github.com/gorilla/mux"
)

// ClearHandler resets one tab's session state on request
type ClearHandler struct {
	merge   domain.MergeService
	split   domain.SplitService
	convert domain.ConvertService
	logger  domain.Logger
}

// NewClearHandler creates a new clear handler
func NewClearHandler(merge domain.MergeService, split domain.SplitService, convert domain.ConvertService, logger domain.Logger) *ClearHandler {
	return &ClearHandler{
		merge:   merge,
		split:   split,
		convert: convert,
		logger:  logger,
	}
}

// Clear discards the named section's state for the session
func (h *ClearHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Session not found in context")
		return
	}

	section := mux.Vars(r)["section"]
	switch section {
	case "merge":
		h.merge.Clear(sessionID)
	case "split":
		h.split.Clear(sessionID)
	case "convert":
		h.convert.Clear(sessionID)
	default:
		writeError(w, http.StatusBadRequest, "Unknown section")
		return
	}

	h.logger.Info("Section cleared", "session_id", sessionID, "section", section)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
