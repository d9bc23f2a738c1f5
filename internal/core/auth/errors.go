package auth

import "errors"

// Sentinel errors for authentication operations
var (
	// ErrInvalidCredentials is returned when the username or password is wrong.
	// Deliberately indistinguishable between the two cases.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken is returned for expired, malformed or wrongly-scoped tokens
	ErrInvalidToken = errors.New("invalid or expired token")
)
