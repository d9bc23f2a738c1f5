package routes

import (
	"github.com/go-chi/chi/v5"

	"Quill/internal/api/handlers/post"
	"Quill/internal/api/middleware"
	"Quill/internal/core/posts"
)

// RegisterPostRoutes registers post endpoints on the router.
// Read endpoints resolve identity optionally (visibility depends on who is
// asking); mutating endpoints and /posts/mine require it.
func RegisterPostRoutes(r chi.Router, service posts.Service, identityMW *middleware.IdentityMiddleware) {
	createHandler := post.NewCreateHandler(service)
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)

	r.With(identityMW.OptionalIdentity).Get("/posts", listHandler.HandleList)
	r.With(identityMW.RequireIdentity).Get("/posts/mine", listHandler.HandleMine)
	r.With(identityMW.OptionalIdentity).Get("/posts/{key}", getHandler.HandleGet)

	r.With(identityMW.RequireIdentity).Post("/posts", createHandler.HandleCreate)
	r.With(identityMW.RequireIdentity).Put("/posts/{key}", updateHandler.HandleUpdate)
	r.With(identityMW.RequireIdentity).Patch("/posts/{key}", updateHandler.HandleUpdate)
	r.With(identityMW.RequireIdentity).Delete("/posts/{key}", deleteHandler.HandleDelete)
}
