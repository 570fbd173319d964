package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the API under /api/v1. Item routes accept anonymous
// callers; the rest need a member token.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/login", s.LoginHandler)

	r.Group(func(r chi.Router) {
		r.Use(s.OptionalAuthMiddleware)
		r.Get("/items/geolocation", s.MapGeolocationsHandler)
		r.Get("/items/{itemId}", s.GetItemHandler)
		r.Get("/items/{itemId}/children", s.ListChildrenHandler)
		r.Get("/items/{itemId}/descendants", s.ListDescendantsHandler)
		r.Get("/items/{itemId}/navigation", s.NavigationHandler)
		r.Get("/items/{itemId}/tags", s.ListTagsHandler)
		r.Get("/items/{itemId}/geolocation", s.GeolocationHandler)
		r.Get("/items/{itemId}/download", s.DownloadHandler)
		r.Get("/items/{itemId}/login-schema-type", s.LoginSchemaTypeHandler)
		r.Post("/items/{itemId}/login", s.ItemLoginHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)
		r.Get("/me", s.GetCurrentUserHandler)
		r.Post("/items/{itemId}/enroll", s.EnrollHandler)
		r.Post("/items/{itemId}/memberships/requests", s.CreateMembershipRequestHandler)
	})

	return r
}
