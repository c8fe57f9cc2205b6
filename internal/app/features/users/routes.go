// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub/internal/app/system/auth"
)

func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	// Public: account creation and session establishment.
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)

		pr.Post("/logout", h.HandleLogout)
		pr.Get("/me", h.HandleMe)
		pr.Get("/{id}", h.HandleView)
		pr.Get("/{id}/posts", h.HandleUserPosts)
		pr.Get("/{id}/comments", h.HandleUserComments)
		pr.Get("/{id}/clubs", h.HandleUserClubs)
	})

	return r
}
