package identity

import "strconv"

// Identity is the resolved calling principal for a request. The zero value
// is the anonymous principal. Core services receive an Identity explicitly
// on every call; nothing in core reads it from ambient request state.
type Identity struct {
	UserID   int64
	Username string
}

// Anonymous returns the anonymous principal.
func Anonymous() Identity {
	return Identity{}
}

// IsAuthenticated reports whether the identity belongs to a known user.
func (id Identity) IsAuthenticated() bool {
	return id.UserID != 0
}

// String returns a loggable form of the identity.
func (id Identity) String() string {
	if !id.IsAuthenticated() {
		return "anonymous"
	}
	return id.Username + "#" + strconv.FormatInt(id.UserID, 10)
}
