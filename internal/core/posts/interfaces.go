package posts

import (
	"context"

	"Quill/internal/core/identity"
)

// Service defines the business logic interface for posts.
// Every operation receives the calling identity explicitly; nothing is read
// from ambient request state.
type Service interface {
	// CreatePost creates a new post authored by the viewer.
	// The slug is derived from the title; a collision is rejected outright.
	CreatePost(ctx context.Context, viewer identity.Identity, req CreatePostRequest) (*Post, error)

	// ListPosts returns the feed for the viewer: published posts only for
	// anonymous viewers, all posts for authenticated ones. Newest first.
	ListPosts(ctx context.Context, viewer identity.Identity, req ListPostsRequest) ([]*Post, *string, error)

	// MyPosts returns the viewer's own posts in any publication state
	MyPosts(ctx context.Context, viewer identity.Identity, req ListPostsRequest) ([]*Post, *string, error)

	// GetPost retrieves a post by numeric identifier or slug
	GetPost(ctx context.Context, viewer identity.Identity, key string) (*Post, error)

	// UpdatePost applies a partial update after the ownership check
	UpdatePost(ctx context.Context, viewer identity.Identity, key string, req UpdatePostRequest) (*Post, error)

	// DeletePost removes a post after the ownership check
	DeletePost(ctx context.Context, viewer identity.Identity, key string) error
}

// Repository defines the data access interface for posts.
// The repository is the sole owner of post storage; slug uniqueness is
// enforced by its backing constraint, atomically with insertion.
type Repository interface {
	// Create inserts a new post and fills in its assigned identifier and
	// timestamps. Returns ErrSlugTaken on a slug collision.
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post by its numeric identifier
	GetByID(ctx context.Context, id int64) (*Post, error)

	// GetBySlug retrieves a post by its slug
	GetBySlug(ctx context.Context, slug string) (*Post, error)

	// List returns posts matching the query's visibility filter, newest
	// first, with an opaque cursor for the next page
	List(ctx context.Context, q ListQuery) ([]*Post, *string, error)

	// Update persists title, content, published and updated_at. The slug
	// and author columns are never touched.
	Update(ctx context.Context, post *Post) error

	// Delete removes a post by identifier. Returns ErrNotFound when no row
	// was deleted.
	Delete(ctx context.Context, id int64) error
}

// ListQuery is the filtered, paginated query the repository executes
type ListQuery struct {
	Cursor     *string
	Visibility Visibility
	Limit      int
}
