// internal/app/features/clubs/routes.go
package clubs

import (
	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub/internal/app/system/auth"
)

// Routes wires the club endpoints. Club listings and announcements are
// readable without signing in; membership and writes are not.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleView)
	r.Get("/{id}/posts", h.HandlePostList)

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)

		pr.Post("/", h.HandleCreate)

		// Membership workflow
		pr.Post("/{id}/join", h.HandleJoin)
		pr.Post("/{id}/requests/{userID}/approve", h.HandleApprove)
		pr.Post("/{id}/requests/{userID}/decline", h.HandleDecline)
		pr.Post("/{id}/admins/{userID}", h.HandlePromote)

		// Listings
		pr.Get("/{id}/requests", h.HandlePendingList)
		pr.Get("/{id}/participants", h.HandleParticipants)
		pr.Get("/{id}/admins", h.HandleAdmins)

		// Club announcements
		pr.Post("/{id}/posts", h.HandlePostCreate)
		pr.Delete("/{id}/posts/{postID}", h.HandlePostDelete)
	})

	return r
}
