package posts

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"Quill/internal/core/identity"

	"github.com/gosimple/slug"
)

// Content limits enforced at creation and update
const (
	maxTitleLength   = 200
	maxContentLength = 100000
)

// List pagination bounds
const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type postService struct {
	repo Repository
}

// NewPostService creates a new post service
func NewPostService(repo Repository) Service {
	return &postService{repo: repo}
}

// CreatePost creates a new post authored by the viewer
// Flow:
// 1. Require an authenticated viewer
// 2. Validate input
// 3. Derive the slug from the title
// 4. Persist; the repository's uniqueness constraint rejects slug collisions
func (s *postService) CreatePost(ctx context.Context, viewer identity.Identity, req CreatePostRequest) (*Post, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrAuthenticationRequired
	}

	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)

	// Slug derivation is deterministic; a title that slugifies to an existing
	// slug is a Conflict, never silently disambiguated
	postSlug := slug.Make(title)
	if postSlug == "" {
		return nil, NewValidationError("title", "title must contain at least one letter or digit")
	}

	now := time.Now().UTC()
	post := &Post{
		Slug:      postSlug,
		Title:     title,
		Content:   req.Content,
		Published: req.Published != nil && *req.Published,
		AuthorID:  viewer.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// ListPosts returns the feed scoped by the visibility policy for the viewer
func (s *postService) ListPosts(ctx context.Context, viewer identity.Identity, req ListPostsRequest) ([]*Post, *string, error) {
	return s.listWithView(ctx, viewer, ViewList, req)
}

// MyPosts returns the viewer's own posts in any publication state
func (s *postService) MyPosts(ctx context.Context, viewer identity.Identity, req ListPostsRequest) ([]*Post, *string, error) {
	return s.listWithView(ctx, viewer, ViewMine, req)
}

func (s *postService) listWithView(ctx context.Context, viewer identity.Identity, view string, req ListPostsRequest) ([]*Post, *string, error) {
	vis, ok := VisibilityFor(viewer, view)
	if !ok {
		return nil, nil, ErrAuthenticationRequired
	}

	q := ListQuery{
		Visibility: vis,
		Limit:      normalizeLimit(req.Limit),
		Cursor:     req.Cursor,
	}

	return s.repo.List(ctx, q)
}

// GetPost retrieves a post by numeric identifier or slug
func (s *postService) GetPost(ctx context.Context, viewer identity.Identity, key string) (*Post, error) {
	post, err := s.fetchByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	// Reads are always allowed; the check is kept explicit so every
	// operation consults the same authorizer
	if !Authorized(viewer, post, OpRead) {
		return nil, ErrNotAuthorized
	}

	return post, nil
}

// UpdatePost applies a partial update to a post the viewer owns.
// The author and slug are immutable: the request type carries no author
// field and the repository never writes those columns, so whatever a client
// sends for them is discarded.
func (s *postService) UpdatePost(ctx context.Context, viewer identity.Identity, key string, req UpdatePostRequest) (*Post, error) {
	post, err := s.fetchByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	if !Authorized(viewer, post, OpWrite) {
		return nil, writeDenied(viewer)
	}

	if err := validateUpdateRequest(req); err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost removes a post the viewer owns
func (s *postService) DeletePost(ctx context.Context, viewer identity.Identity, key string) error {
	post, err := s.fetchByKey(ctx, key)
	if err != nil {
		return err
	}

	if !Authorized(viewer, post, OpWrite) {
		return writeDenied(viewer)
	}

	return s.repo.Delete(ctx, post.ID)
}

// fetchByKey resolves a URL key to a post. All-digit keys are numeric
// identifiers; anything else is treated as a slug.
func (s *postService) fetchByKey(ctx context.Context, key string) (*Post, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrNotFound
	}

	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		return s.repo.GetByID(ctx, id)
	}

	return s.repo.GetBySlug(ctx, key)
}

// writeDenied translates a denied write decision into the error taxonomy:
// anonymous callers get AuthenticationRequired, mismatched authors Forbidden
func writeDenied(viewer identity.Identity) error {
	if !viewer.IsAuthenticated() {
		return ErrAuthenticationRequired
	}
	return ErrNotAuthorized
}

func validateCreateRequest(req CreatePostRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return NewValidationError("title", "title is required")
	}
	if len(title) > maxTitleLength {
		return NewValidationError("title",
			fmt.Sprintf("title too long (max %d characters)", maxTitleLength))
	}
	if len(req.Content) > maxContentLength {
		return NewValidationError("content",
			fmt.Sprintf("content too long (max %d characters)", maxContentLength))
	}
	return nil
}

func validateUpdateRequest(req UpdatePostRequest) error {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return NewValidationError("title", "title cannot be empty")
		}
		if len(title) > maxTitleLength {
			return NewValidationError("title",
				fmt.Sprintf("title too long (max %d characters)", maxTitleLength))
		}
	}
	if req.Content != nil && len(*req.Content) > maxContentLength {
		return NewValidationError("content",
			fmt.Sprintf("content too long (max %d characters)", maxContentLength))
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
