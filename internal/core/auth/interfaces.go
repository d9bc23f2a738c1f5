package auth

import (
	"context"

	"Quill/internal/core/identity"
	"Quill/internal/core/users"
)

// Service defines the authentication business logic.
// Registration and password reset are out of scope; accounts exist before
// they ever log in here.
type Service interface {
	// Login verifies a username/password pair and issues a token pair
	Login(ctx context.Context, username, password string) (*TokenPair, *users.User, error)

	// Refresh exchanges a valid refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// IdentityFromAccessToken resolves the principal carried by an access
	// token. Used by the identity middleware on every authenticated request.
	IdentityFromAccessToken(token string) (identity.Identity, error)
}

// TokenPair is the access/refresh pair issued at login
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}
