package routes

import (
	"github.com/go-chi/chi/v5"

	"Quill/internal/api/handlers/user"
	"Quill/internal/core/users"
)

// RegisterUserRoutes registers author profile endpoints
func RegisterUserRoutes(r chi.Router, service users.UserService) {
	getHandler := user.NewGetHandler(service)

	r.Get("/users/{username}", getHandler.HandleGet)
}
