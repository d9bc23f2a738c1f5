package posts

import (
	"Quill/internal/core/identity"
)

// View kinds accepted by VisibilityFor
const (
	// ViewList is the public feed
	ViewList = "list"

	// ViewDetail is a single post lookup by identifier or slug
	ViewDetail = "detail"

	// ViewMine is the caller's own posts, any publication state
	ViewMine = "mine"
)

// Visibility is the filter predicate a post query applies for a viewer.
// The zero value places no restriction on the result set.
type Visibility struct {
	// AuthorID restricts results to a single author when nonzero
	AuthorID int64

	// PublishedOnly hides unpublished posts when true
	PublishedOnly bool
}

// VisibilityFor resolves the filter for a viewer and view kind. It is a pure
// decision function: it never queries storage and never returns an error.
// ok is false when the view requires an authenticated viewer (or the view
// kind is unknown); the caller translates that into its own error taxonomy.
//
// Result ordering is the same for every view: creation time descending,
// ties broken by identifier descending.
//
// Note: authenticated listing intentionally shows unpublished posts by other
// authors; the publication filter only applies to anonymous listing.
func VisibilityFor(viewer identity.Identity, view string) (Visibility, bool) {
	switch view {
	case ViewList:
		if !viewer.IsAuthenticated() {
			return Visibility{PublishedOnly: true}, true
		}
		return Visibility{}, true

	case ViewDetail:
		// Any existing post is fetchable by key, published or not
		return Visibility{}, true

	case ViewMine:
		if !viewer.IsAuthenticated() {
			return Visibility{}, false
		}
		return Visibility{AuthorID: viewer.UserID}, true

	default:
		return Visibility{}, false
	}
}
