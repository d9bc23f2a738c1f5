package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	authhandlers "Quill/internal/api/handlers/auth"
	coreauth "Quill/internal/core/auth"
)

// RegisterAuthRoutes registers login, refresh and logout endpoints
func RegisterAuthRoutes(r chi.Router, service coreauth.Service, store *sessions.CookieStore) {
	loginHandler := authhandlers.NewLoginHandler(service, store)
	refreshHandler := authhandlers.NewRefreshHandler(service)
	logoutHandler := authhandlers.NewLogoutHandler(store)

	r.Post("/auth/login", loginHandler.HandleLogin)
	r.Post("/auth/refresh", refreshHandler.HandleRefresh)
	r.Post("/auth/logout", logoutHandler.HandleLogout)
}
