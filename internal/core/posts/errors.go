package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post lookup finds no matching record
	ErrNotFound = errors.New("post not found")

	// ErrAuthenticationRequired is returned when an anonymous caller attempts
	// an operation that needs a known identity
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrNotAuthorized is returned when an authenticated caller attempts to
	// mutate a post they do not own
	ErrNotAuthorized = errors.New("not authorized to modify this post")

	// ErrSlugTaken is returned when a created post derives a slug that
	// collides with an existing post
	ErrSlugTaken = errors.New("a post with this slug already exists")

	// ErrInvalidCursor is returned for malformed pagination cursors
	ErrInvalidCursor = errors.New("invalid pagination cursor")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if error is a slug uniqueness conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrSlugTaken)
}
