package post

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"Quill/internal/api/middleware"
	"Quill/internal/core/posts"
)

// ListHandler handles feed and my-posts listing requests
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{service: service}
}

type listResponse struct {
	Cursor *string       `json:"cursor,omitempty"`
	Posts  []*posts.Post `json:"posts"`
}

// HandleList handles GET /posts
// Anonymous viewers see only published posts; authenticated viewers see all
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	req, ok := parseListRequest(w, r)
	if !ok {
		return
	}

	viewer := middleware.GetIdentity(r)

	result, cursor, err := h.service.ListPosts(r.Context(), viewer, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeListResponse(w, result, cursor)
}

// HandleMine handles GET /posts/mine
// Returns the caller's own posts in any publication state
func (h *ListHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	req, ok := parseListRequest(w, r)
	if !ok {
		return
	}

	viewer := middleware.GetIdentity(r)

	result, cursor, err := h.service.MyPosts(r.Context(), viewer, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeListResponse(w, result, cursor)
}

func parseListRequest(w http.ResponseWriter, r *http.Request) (posts.ListPostsRequest, bool) {
	var req posts.ListPostsRequest

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "InvalidRequest", "limit must be a non-negative integer")
			return req, false
		}
		req.Limit = limit
	}

	if cursor := r.URL.Query().Get("cursor"); cursor != "" {
		req.Cursor = &cursor
	}

	return req, true
}

func writeListResponse(w http.ResponseWriter, result []*posts.Post, cursor *string) {
	if result == nil {
		result = []*posts.Post{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(listResponse{Cursor: cursor, Posts: result}); err != nil {
		log.Printf("Failed to encode post list response: %v", err)
	}
}
