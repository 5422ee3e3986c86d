package handler

import (
	"context"
	"net/http"

	"pdf-toolkit-server/internal/domain"

	"github.com/google/uuid"
)

type contextKey string

const sessionContextKey contextKey = "session_id"

// SessionCookieName identifies the browsing session across requests.
const SessionCookieName = "pdf_toolkit_session"

// SessionMiddleware attaches a session ID to every request, minting a new
// cookie when the browser does not present one.
func SessionMiddleware(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
				sessionID = c.Value
			} else {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				logger.Debug("Session cookie issued", "session_id", sessionID)
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionIDFromContext extracts the session ID from request context
func GetSessionIDFromContext(r *http.Request) (string, bool) {
	sessionID, ok := r.Context().Value(sessionContextKey).(string)
	return sessionID, ok
}
