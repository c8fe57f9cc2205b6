// internal/app/features/courses/routes.go
package courses

import (
	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub/internal/app/system/auth"
)

// Routes wires the course endpoints. The catalog is readable without
// signing in; creating, deleting, and registering are not.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleView)

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)
		pr.Post("/", h.HandleCreate)
		pr.Get("/registered", h.HandleRegistered)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/{id}/register", h.HandleRegister)
	})

	return r
}
