package auth

import (
	"encoding/json"
	"log"
	"net/http"

	coreauth "Quill/internal/core/auth"
)

// RefreshHandler exchanges refresh tokens for new access tokens
type RefreshHandler struct {
	service coreauth.Service
}

// NewRefreshHandler creates a new refresh handler
func NewRefreshHandler(service coreauth.Service) *RefreshHandler {
	return &RefreshHandler{service: service}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh"`
}

type refreshResponse struct {
	AccessToken string `json:"access"`
}

// HandleRefresh handles POST /auth/refresh
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "refresh token is required")
		return
	}

	access, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(refreshResponse{AccessToken: access}); err != nil {
		log.Printf("Failed to encode refresh response: %v", err)
	}
}
