// internal/app/features/files/routes.go
package files

import (
	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub/internal/app/system/auth"
)

// Routes wires the course-material endpoints. Listings are readable
// without signing in; uploading and deleting are not.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/course/{courseID}", h.HandleListByCourse)

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)
		pr.Post("/", h.HandleUpload)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
