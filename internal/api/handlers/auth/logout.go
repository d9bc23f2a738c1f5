package auth

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"Quill/internal/api/middleware"
)

// LogoutHandler clears the session cookie
type LogoutHandler struct {
	store *sessions.CookieStore
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(store *sessions.CookieStore) *LogoutHandler {
	return &LogoutHandler{store: store}
}

// HandleLogout handles POST /auth/logout
// Token-based clients simply discard their tokens; this endpoint exists
// for session-cookie clients.
func (h *LogoutHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		log.Printf("Failed to decode session on logout: %v", err)
	}

	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		log.Printf("Failed to clear session: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
