package post

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"Quill/internal/api/middleware"
	"Quill/internal/core/identity"
	"Quill/internal/core/posts"
)

// mockService implements posts.Service for testing
type mockService struct {
	createFunc func(ctx context.Context, viewer identity.Identity, req posts.CreatePostRequest) (*posts.Post, error)
	updateFunc func(ctx context.Context, viewer identity.Identity, key string, req posts.UpdatePostRequest) (*posts.Post, error)
	deleteFunc func(ctx context.Context, viewer identity.Identity, key string) error
}

func (m *mockService) CreatePost(ctx context.Context, viewer identity.Identity, req posts.CreatePostRequest) (*posts.Post, error) {
	return m.createFunc(ctx, viewer, req)
}

func (m *mockService) ListPosts(ctx context.Context, viewer identity.Identity, req posts.ListPostsRequest) ([]*posts.Post, *string, error) {
	return nil, nil, nil
}

func (m *mockService) MyPosts(ctx context.Context, viewer identity.Identity, req posts.ListPostsRequest) ([]*posts.Post, *string, error) {
	return nil, nil, nil
}

func (m *mockService) GetPost(ctx context.Context, viewer identity.Identity, key string) (*posts.Post, error) {
	return nil, posts.ErrNotFound
}

func (m *mockService) UpdatePost(ctx context.Context, viewer identity.Identity, key string, req posts.UpdatePostRequest) (*posts.Post, error) {
	return m.updateFunc(ctx, viewer, key, req)
}

func (m *mockService) DeletePost(ctx context.Context, viewer identity.Identity, key string) error {
	return m.deleteFunc(ctx, viewer, key)
}

func authedRequest(method, target, body string, viewer identity.Identity) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middleware.WithIdentity(req.Context(), viewer))
}

func TestHandleCreate(t *testing.T) {
	alice := identity.Identity{UserID: 1, Username: "alice"}

	t.Run("valid request returns 201 with the created post", func(t *testing.T) {
		svc := &mockService{
			createFunc: func(ctx context.Context, viewer identity.Identity, req posts.CreatePostRequest) (*posts.Post, error) {
				return &posts.Post{
					ID:        10,
					Slug:      "hello-world",
					Title:     req.Title,
					Content:   req.Content,
					AuthorID:  viewer.UserID,
					CreatedAt: time.Now().UTC(),
					UpdatedAt: time.Now().UTC(),
				}, nil
			},
		}
		h := NewCreateHandler(svc)

		req := authedRequest(http.MethodPost, "/posts", `{"title":"Hello World","content":"First."}`, alice)
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		var got posts.Post
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if got.Slug != "hello-world" || got.Title != "Hello World" {
			t.Errorf("unexpected post: %+v", got)
		}
	})

	t.Run("author in the body is discarded", func(t *testing.T) {
		var seenViewer identity.Identity
		svc := &mockService{
			createFunc: func(ctx context.Context, viewer identity.Identity, req posts.CreatePostRequest) (*posts.Post, error) {
				seenViewer = viewer
				return &posts.Post{ID: 11, Title: req.Title, AuthorID: viewer.UserID}, nil
			},
		}
		h := NewCreateHandler(svc)

		body := `{"title":"Hijack","content":"x","author":999,"authorId":999,"slug":"forced"}`
		req := authedRequest(http.MethodPost, "/posts", body, alice)
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if seenViewer.UserID != 1 {
			t.Errorf("service saw viewer %d, want 1", seenViewer.UserID)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		h := NewCreateHandler(&mockService{})
		req := authedRequest(http.MethodPost, "/posts", `{"title":`, alice)
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("validation failure returns 400", func(t *testing.T) {
		svc := &mockService{
			createFunc: func(ctx context.Context, viewer identity.Identity, req posts.CreatePostRequest) (*posts.Post, error) {
				return nil, posts.NewValidationError("title", "title is required")
			},
		}
		h := NewCreateHandler(svc)
		req := authedRequest(http.MethodPost, "/posts", `{"title":"","content":"x"}`, alice)
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "title is required") {
			t.Errorf("expected validation message in body, got %s", rec.Body.String())
		}
	})

	t.Run("slug collision returns 409", func(t *testing.T) {
		svc := &mockService{
			createFunc: func(ctx context.Context, viewer identity.Identity, req posts.CreatePostRequest) (*posts.Post, error) {
				return nil, posts.ErrSlugTaken
			},
		}
		h := NewCreateHandler(svc)
		req := authedRequest(http.MethodPost, "/posts", `{"title":"Hello","content":"x"}`, alice)
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})
}

func TestHandleUpdate(t *testing.T) {
	alice := identity.Identity{UserID: 1, Username: "alice"}

	// Route through chi so URL parameters resolve
	newRouter := func(h *UpdateHandler) *chi.Mux {
		r := chi.NewRouter()
		r.Patch("/posts/{key}", h.HandleUpdate)
		return r
	}

	t.Run("partial update forwards the key and changed fields", func(t *testing.T) {
		var seenKey string
		var seenReq posts.UpdatePostRequest
		svc := &mockService{
			updateFunc: func(ctx context.Context, viewer identity.Identity, key string, req posts.UpdatePostRequest) (*posts.Post, error) {
				seenKey = key
				seenReq = req
				return &posts.Post{ID: 10, Slug: "hello-world", Title: *req.Title, AuthorID: viewer.UserID}, nil
			},
		}
		router := newRouter(NewUpdateHandler(svc))

		req := authedRequest(http.MethodPatch, "/posts/hello-world", `{"title":"Renamed"}`, alice)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if seenKey != "hello-world" {
			t.Errorf("key = %q, want %q", seenKey, "hello-world")
		}
		if seenReq.Title == nil || *seenReq.Title != "Renamed" {
			t.Errorf("Title = %v, want Renamed", seenReq.Title)
		}
		if seenReq.Content != nil || seenReq.Published != nil {
			t.Errorf("absent fields must stay nil, got %+v", seenReq)
		}
	})

	t.Run("non-owner update returns 403", func(t *testing.T) {
		svc := &mockService{
			updateFunc: func(ctx context.Context, viewer identity.Identity, key string, req posts.UpdatePostRequest) (*posts.Post, error) {
				return nil, posts.ErrNotAuthorized
			},
		}
		router := newRouter(NewUpdateHandler(svc))

		req := authedRequest(http.MethodPatch, "/posts/10", `{"title":"Mine now"}`, alice)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("unknown post returns 404", func(t *testing.T) {
		svc := &mockService{
			updateFunc: func(ctx context.Context, viewer identity.Identity, key string, req posts.UpdatePostRequest) (*posts.Post, error) {
				return nil, posts.ErrNotFound
			},
		}
		router := newRouter(NewUpdateHandler(svc))

		req := authedRequest(http.MethodPatch, "/posts/no-such-post", `{}`, alice)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandleDelete(t *testing.T) {
	alice := identity.Identity{UserID: 1, Username: "alice"}

	newRouter := func(h *DeleteHandler) *chi.Mux {
		r := chi.NewRouter()
		r.Delete("/posts/{key}", h.HandleDelete)
		return r
	}

	t.Run("owner delete returns 204", func(t *testing.T) {
		svc := &mockService{
			deleteFunc: func(ctx context.Context, viewer identity.Identity, key string) error {
				return nil
			},
		}
		router := newRouter(NewDeleteHandler(svc))

		req := authedRequest(http.MethodDelete, "/posts/10", "", alice)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("anonymous delete returns 401", func(t *testing.T) {
		svc := &mockService{
			deleteFunc: func(ctx context.Context, viewer identity.Identity, key string) error {
				return posts.ErrAuthenticationRequired
			},
		}
		router := newRouter(NewDeleteHandler(svc))

		req := authedRequest(http.MethodDelete, "/posts/10", "", identity.Anonymous())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}
