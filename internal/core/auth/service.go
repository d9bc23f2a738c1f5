package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"Quill/internal/core/identity"
	"Quill/internal/core/users"
)

type authService struct {
	userRepo users.UserRepository
	tokens   *TokenIssuer
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo users.UserRepository, tokens *TokenIssuer) Service {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login verifies credentials and issues an access/refresh token pair
func (s *authService) Login(ctx context.Context, username, password string) (*TokenPair, *users.User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	creds, err := s.userRepo.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	user := creds.User

	access, err := s.tokens.IssueAccessToken(&user)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(&user)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, &user, nil
}

// Refresh exchanges a valid refresh token for a new access token.
// The user is re-fetched so tokens for deleted accounts stop working.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken, ScopeRefresh)
	if err != nil {
		return "", err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("failed to load user for refresh: %w", err)
	}

	return s.tokens.IssueAccessToken(user)
}

// IdentityFromAccessToken resolves the principal carried by an access token
func (s *authService) IdentityFromAccessToken(token string) (identity.Identity, error) {
	claims, err := s.tokens.Verify(token, ScopeAccess)
	if err != nil {
		return identity.Anonymous(), err
	}

	return IdentityFromClaims(claims)
}
