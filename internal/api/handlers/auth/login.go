package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"Quill/internal/api/middleware"
	coreauth "Quill/internal/core/auth"
	"Quill/internal/core/users"
)

// LoginHandler handles credential verification and token issuance
type LoginHandler struct {
	service coreauth.Service
	store   *sessions.CookieStore
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(service coreauth.Service, store *sessions.CookieStore) *LoginHandler {
	return &LoginHandler{
		service: service,
		store:   store,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string      `json:"access"`
	RefreshToken string      `json:"refresh"`
	User         *users.User `json:"user"`
}

// HandleLogin handles POST /auth/login
// Issues an access/refresh token pair and establishes a session cookie so
// browser clients can skip token management entirely.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	pair, user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		// A tampered cookie decodes to a fresh session; only log it
		log.Printf("Failed to decode existing session: %v", err)
	}
	session.Values[middleware.SessionUserIDKey] = user.ID
	session.Values[middleware.SessionUsernameKey] = user.Username
	if err := session.Save(r, w); err != nil {
		log.Printf("Failed to save session: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}); err != nil {
		log.Printf("Failed to encode login response: %v", err)
	}
}
