// internal/app/features/posts/routes.go
package posts

import (
	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub/internal/app/system/auth"
)

func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)

		pr.Get("/", h.HandleList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}", h.HandleView)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
