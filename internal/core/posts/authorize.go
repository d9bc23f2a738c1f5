package posts

import (
	"Quill/internal/core/identity"
)

// Operations checked by Authorized
const (
	// OpRead covers retrieval of a single post
	OpRead = "read"

	// OpWrite covers update and delete
	OpWrite = "write"
)

// Authorized reports whether viewer may perform op on the target post.
// It is a pure per-object decision: reads are always allowed, writes only
// for the authenticated author of the post. The target must be the post
// freshly fetched from the store, never a cached or assumed value.
func Authorized(viewer identity.Identity, post *Post, op string) bool {
	switch op {
	case OpRead:
		return true
	case OpWrite:
		return post != nil && viewer.IsAuthenticated() && viewer.UserID == post.AuthorID
	default:
		return false
	}
}
