// internal/app/features/comments/routes.go
package comments

import (
	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub/internal/app/system/auth"
)

// Routes mounts the comment endpoints. Listing and creation are nested
// under posts; deletion addresses the comment directly.
func Routes(h *Handler, tm *auth.TokenManager) func(chi.Router) {
	return func(r chi.Router) {
		r.Group(func(pr chi.Router) {
			pr.Use(tm.RequireSignedIn)

			pr.Get("/posts/{postID}/comments", h.HandleList)
			pr.Post("/posts/{postID}/comments", h.HandleCreate)
			pr.Delete("/comments/{id}", h.HandleDelete)
		})
	}
}
