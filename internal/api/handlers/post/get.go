package post

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Quill/internal/api/middleware"
	"Quill/internal/core/posts"
)

// GetHandler handles single post retrieval requests
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet handles GET /posts/{key}
// The key is a numeric identifier or a slug. Retrieval carries no
// visibility restriction: unpublished posts are readable by anyone who
// knows the key.
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	viewer := middleware.GetIdentity(r)

	found, err := h.service.GetPost(r.Context(), viewer, key)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(found); err != nil {
		log.Printf("Failed to encode post response: %v", err)
	}
}
