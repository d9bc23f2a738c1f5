package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"Quill/internal/core/auth"
	"Quill/internal/core/identity"
)

// Context key for the resolved identity
type contextKey string

const identityKey contextKey = "identity"

// Session cookie layout. The auth handlers write these values at login;
// the middleware reads them back on later requests.
const (
	SessionName        = "quill_session"
	SessionUserIDKey   = "user_id"
	SessionUsernameKey = "username"
)

// IdentityMiddleware resolves the calling principal for each request.
// Bearer tokens are checked first; browser clients fall back to the
// session cookie established at login.
type IdentityMiddleware struct {
	auth  auth.Service
	store *sessions.CookieStore
}

// NewIdentityMiddleware creates a new identity middleware
func NewIdentityMiddleware(authService auth.Service, store *sessions.CookieStore) *IdentityMiddleware {
	return &IdentityMiddleware{
		auth:  authService,
		store: store,
	}
}

// RequireIdentity ensures the caller is authenticated.
// Returns 401 when no identity resolves; otherwise injects the identity
// into the request context.
func (m *IdentityMiddleware) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, err := m.resolve(r)
		if err != nil {
			log.Printf("[AUTH_FAILURE] ip=%s method=%s path=%s error=%v",
				r.RemoteAddr, r.Method, r.URL.Path, err)
			writeAuthError(w, "Invalid or expired token")
			return
		}
		if !viewer.IsAuthenticated() {
			writeAuthError(w, "Authentication required")
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), viewer)))
	})
}

// OptionalIdentity resolves the caller when credentials are present but
// never rejects the request. Endpoints serving both anonymous and
// authenticated viewers use this.
func (m *IdentityMiddleware) OptionalIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, err := m.resolve(r)
		if err != nil {
			// Invalid credentials - continue anonymous
			log.Printf("Optional identity resolution failed: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), viewer)))
	})
}

// resolve determines the caller's identity. A presented Bearer token must
// verify; the session cookie is only consulted when no token is sent.
func (m *IdentityMiddleware) resolve(r *http.Request) (identity.Identity, error) {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		return m.auth.IdentityFromAccessToken(token)
	}

	return m.resolveSession(r), nil
}

func (m *IdentityMiddleware) resolveSession(r *http.Request) identity.Identity {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		// Tampered or stale cookie - treat as anonymous
		return identity.Anonymous()
	}

	userID, ok := session.Values[SessionUserIDKey].(int64)
	if !ok || userID <= 0 {
		return identity.Anonymous()
	}
	username, _ := session.Values[SessionUsernameKey].(string)

	return identity.Identity{UserID: userID, Username: username}
}

// GetIdentity extracts the resolved identity from the request context.
// Returns the anonymous identity when none was resolved.
func GetIdentity(r *http.Request) identity.Identity {
	viewer, _ := r.Context().Value(identityKey).(identity.Identity)
	return viewer
}

// WithIdentity injects an identity into a context.
// Exported for tests that need to mock an authenticated caller.
func WithIdentity(ctx context.Context, viewer identity.Identity) context.Context {
	return withIdentity(ctx, viewer)
}

func withIdentity(ctx context.Context, viewer identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, viewer)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "AuthenticationRequired",
		"message": message,
	}); err != nil {
		log.Printf("Failed to write auth error response: %v", err)
	}
}
