package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Quill/internal/core/auth"
	"Quill/internal/core/identity"
	"Quill/internal/core/users"
)

func newTestMiddleware(t *testing.T) (*IdentityMiddleware, *auth.TokenIssuer, *sessions.CookieStore) {
	t.Helper()
	issuer := auth.NewTokenIssuer([]byte("test-secret-that-is-long-enough"), "quill-test")
	store := sessions.NewCookieStore([]byte("cookie-secret-that-is-32-bytes!!"))
	authService := auth.NewAuthService(nil, issuer)
	return NewIdentityMiddleware(authService, store), issuer, store
}

func echoIdentityHandler(captured *identity.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = GetIdentity(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireIdentity(t *testing.T) {
	m, issuer, _ := newTestMiddleware(t)

	t.Run("valid bearer token resolves the identity", func(t *testing.T) {
		token, err := issuer.IssueAccessToken(&users.User{ID: 7, Username: "alice"})
		require.NoError(t, err)

		var viewer identity.Identity
		req := httptest.NewRequest(http.MethodGet, "/posts/mine", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		m.RequireIdentity(echoIdentityHandler(&viewer)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(7), viewer.UserID)
		assert.Equal(t, "alice", viewer.Username)
	})

	t.Run("missing credentials are rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts/mine", nil)
		rec := httptest.NewRecorder()

		m.RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run for anonymous caller")
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "AuthenticationRequired")
	})

	t.Run("malformed bearer token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts/mine", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()

		m.RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run for invalid token")
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("session cookie resolves the identity", func(t *testing.T) {
		_, _, store := newTestMiddleware(t)
		m := NewIdentityMiddleware(auth.NewAuthService(nil, auth.NewTokenIssuer([]byte("test-secret-that-is-long-enough"), "quill-test")), store)

		// Establish a session the way the login handler does
		seedReq := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		seedRec := httptest.NewRecorder()
		session, err := store.Get(seedReq, SessionName)
		require.NoError(t, err)
		session.Values[SessionUserIDKey] = int64(9)
		session.Values[SessionUsernameKey] = "bob"
		require.NoError(t, session.Save(seedReq, seedRec))

		var viewer identity.Identity
		req := httptest.NewRequest(http.MethodGet, "/posts/mine", nil)
		for _, cookie := range seedRec.Result().Cookies() {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()

		m.RequireIdentity(echoIdentityHandler(&viewer)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(9), viewer.UserID)
		assert.Equal(t, "bob", viewer.Username)
	})
}

func TestOptionalIdentity(t *testing.T) {
	m, issuer, _ := newTestMiddleware(t)

	t.Run("anonymous caller passes through", func(t *testing.T) {
		var viewer identity.Identity
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		rec := httptest.NewRecorder()

		m.OptionalIdentity(echoIdentityHandler(&viewer)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, viewer.IsAuthenticated())
	})

	t.Run("invalid token continues anonymous", func(t *testing.T) {
		var viewer identity.Identity
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		m.OptionalIdentity(echoIdentityHandler(&viewer)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, viewer.IsAuthenticated())
	})

	t.Run("valid token resolves the identity", func(t *testing.T) {
		token, err := issuer.IssueAccessToken(&users.User{ID: 3, Username: "carol"})
		require.NoError(t, err)

		var viewer identity.Identity
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		m.OptionalIdentity(echoIdentityHandler(&viewer)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(3), viewer.UserID)
	})
}
