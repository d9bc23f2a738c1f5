package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"Quill/internal/core/identity"
	"Quill/internal/core/users"
)

// Token lifetimes
const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Token scopes. Access tokens authenticate API calls; refresh tokens may
// only be exchanged for a new access token.
const (
	ScopeAccess  = "access"
	ScopeRefresh = "refresh"
)

// Claims are the JWT claims carried by issued tokens
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Scope    string `json:"scope"`
}

// TokenIssuer signs and verifies the HS256 tokens this service issues.
// All tokens are app-issued with a single shared secret; there is no
// federation and no JWKS fetching.
type TokenIssuer struct {
	secret []byte
	issuer string
}

// NewTokenIssuer creates a token issuer. The secret must be non-empty;
// main refuses to start without one.
func NewTokenIssuer(secret []byte, issuer string) *TokenIssuer {
	return &TokenIssuer{secret: secret, issuer: issuer}
}

// IssueAccessToken signs a short-lived access token for the user
func (t *TokenIssuer) IssueAccessToken(user *users.User) (string, error) {
	return t.issue(user, ScopeAccess, accessTokenTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the user
func (t *TokenIssuer) IssueRefreshToken(user *users.User) (string, error) {
	return t.issue(user, ScopeRefresh, refreshTokenTTL)
}

func (t *TokenIssuer) issue(user *users.User, scope string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: user.Username,
		Scope:    scope,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", scope, err)
	}

	return signed, nil
}

// Verify parses and verifies a token, checking the signature, expiry and
// scope. Returns the claims on success and ErrInvalidToken on any failure.
func (t *TokenIssuer) Verify(tokenString, scope string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Pin the signing method to prevent algorithm confusion
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if claims.Scope != scope {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// IdentityFromClaims builds the principal carried by a verified token
func IdentityFromClaims(claims *Claims) (identity.Identity, error) {
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return identity.Anonymous(), ErrInvalidToken
	}

	return identity.Identity{UserID: userID, Username: claims.Username}, nil
}
