package posts

import (
	"time"
)

// Post represents a blog post row. Slug and AuthorID are fixed at creation;
// every later mutation flows through the service and re-stamps UpdatedAt.
type Post struct {
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
	Author    *AuthorView `json:"author,omitempty"`
	Slug      string      `json:"slug" db:"slug"`
	Title     string      `json:"title" db:"title"`
	Content   string      `json:"content" db:"content"`
	ID        int64       `json:"id" db:"id"`
	AuthorID  int64       `json:"-" db:"author_id"`
	Published bool        `json:"published" db:"published"`
}

// AuthorView represents author information embedded in post responses
type AuthorView struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	ID       int64  `json:"id"`
}

// CreatePostRequest represents input for creating a new post.
// Only client-writable fields appear here; slug, author and timestamps are
// server-assigned and cannot be supplied by the caller.
type CreatePostRequest struct {
	Published *bool  `json:"published,omitempty"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// UpdatePostRequest represents a partial update. Nil fields are left
// unchanged. The author and slug are immutable and have no field here.
type UpdatePostRequest struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// ListPostsRequest represents input for list-style queries
type ListPostsRequest struct {
	Cursor *string `json:"cursor,omitempty"`
	Limit  int     `json:"limit,omitempty"`
}
