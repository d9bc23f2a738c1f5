package postgres

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"Quill/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post. Slug uniqueness is enforced by the database
// constraint, atomically with the insert; a collision surfaces as
// posts.ErrSlugTaken.
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (slug, title, content, published, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx, query,
		post.Slug, post.Title, post.Content, post.Published,
		post.AuthorID, post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID)
	if err != nil {
		// Check for unique constraint violation on the slug
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "posts_slug_key") {
			return posts.ErrSlugTaken
		}

		if strings.Contains(err.Error(), "violates foreign key constraint") {
			return fmt.Errorf("author not found: %d", post.AuthorID)
		}

		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by its numeric identifier
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	return r.getOne(ctx, "p.id = $1", id)
}

// GetBySlug retrieves a post by its slug
func (r *postgresPostRepo) GetBySlug(ctx context.Context, slug string) (*posts.Post, error) {
	return r.getOne(ctx, "p.slug = $1", slug)
}

func (r *postgresPostRepo) getOne(ctx context.Context, where string, arg interface{}) (*posts.Post, error) {
	query := fmt.Sprintf(`
		SELECT
			p.id, p.slug, p.title, p.content, p.published, p.author_id,
			p.created_at, p.updated_at,
			u.id, u.username, u.email
		FROM posts p
		INNER JOIN users u ON p.author_id = u.id
		WHERE %s
	`, where)

	var post posts.Post
	var author posts.AuthorView

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&post.ID, &post.Slug, &post.Title, &post.Content, &post.Published, &post.AuthorID,
		&post.CreatedAt, &post.UpdatedAt,
		&author.ID, &author.Username, &author.Email,
	)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post.Author = &author
	return &post, nil
}

// List returns posts matching the query's visibility filter with cursor
// pagination. Ordering is always created_at descending, id descending, so
// results form a deterministic total order.
func (r *postgresPostRepo) List(ctx context.Context, q posts.ListQuery) ([]*posts.Post, *string, error) {
	whereConditions := []string{"TRUE"}
	args := []interface{}{}
	paramIndex := 1

	if q.Visibility.PublishedOnly {
		whereConditions = append(whereConditions, "p.published = TRUE")
	}
	if q.Visibility.AuthorID != 0 {
		whereConditions = append(whereConditions, fmt.Sprintf("p.author_id = $%d", paramIndex))
		args = append(args, q.Visibility.AuthorID)
		paramIndex++
	}

	cursorFilter, cursorArgs, err := parseListCursor(q.Cursor, paramIndex)
	if err != nil {
		return nil, nil, err
	}
	if cursorFilter != "" {
		whereConditions = append(whereConditions, cursorFilter)
		args = append(args, cursorArgs...)
		paramIndex += len(cursorArgs)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit+1) // +1 to check for next page

	query := fmt.Sprintf(`
		SELECT
			p.id, p.slug, p.title, p.content, p.published, p.author_id,
			p.created_at, p.updated_at,
			u.id, u.username, u.email
		FROM posts p
		INNER JOIN users u ON p.author_id = u.id
		WHERE %s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $%d
	`, strings.Join(whereConditions, " AND "), paramIndex)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var result []*posts.Post
	for rows.Next() {
		var post posts.Post
		var author posts.AuthorView
		err := rows.Scan(
			&post.ID, &post.Slug, &post.Title, &post.Content, &post.Published, &post.AuthorID,
			&post.CreatedAt, &post.UpdatedAt,
			&author.ID, &author.Username, &author.Email,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		post.Author = &author
		result = append(result, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	var cursor *string
	if len(result) > limit {
		result = result[:limit]
		last := result[len(result)-1]
		cursorStr := buildListCursor(last)
		cursor = &cursorStr
	}

	return result, cursor, nil
}

// Update persists the mutable columns of a post. The slug and author_id
// columns are deliberately absent from the SET clause.
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, published = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.Published, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrNotFound
	}

	return nil
}

// Delete removes a post by identifier
func (r *postgresPostRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrNotFound
	}

	return nil
}

// parseListCursor decodes a pagination cursor.
// Cursor format: base64(created_at|id). Malformed cursors are an error so
// callers get clear feedback instead of silently receiving the first page.
func parseListCursor(cursor *string, paramOffset int) (string, []interface{}, error) {
	if cursor == nil || *cursor == "" {
		return "", nil, nil
	}

	// Bound cursor size to prevent abuse via massive base64 strings
	const maxCursorSize = 256
	if len(*cursor) > maxCursorSize {
		return "", nil, fmt.Errorf("%w: cursor exceeds maximum length", posts.ErrInvalidCursor)
	}

	decoded, err := base64.URLEncoding.DecodeString(*cursor)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid base64 encoding", posts.ErrInvalidCursor)
	}

	parts := strings.Split(string(decoded), "|")
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("%w: malformed cursor format", posts.ErrInvalidCursor)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid timestamp in cursor", posts.ErrInvalidCursor)
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return "", nil, fmt.Errorf("%w: invalid identifier in cursor", posts.ErrInvalidCursor)
	}

	// Composite key comparison keeps pagination stable under inserts
	filter := fmt.Sprintf("(p.created_at < $%d OR (p.created_at = $%d AND p.id < $%d))",
		paramOffset, paramOffset, paramOffset+1)
	return filter, []interface{}{createdAt, id}, nil
}

// buildListCursor creates a pagination cursor from the last post of a page
func buildListCursor(post *posts.Post) string {
	cursorStr := fmt.Sprintf("%s|%d", post.CreatedAt.Format(time.RFC3339Nano), post.ID)
	return base64.URLEncoding.EncodeToString([]byte(cursorStr))
}
