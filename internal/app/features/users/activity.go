// internal/app/features/users/activity.go
package users

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/campushub/internal/app/clubflow"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
)

// HandleUserPosts returns the posts authored by a user, newest first.
func (h *Handler) HandleUserPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list user posts")
	defer cancel()

	posts, err := h.Posts.ListByUser(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, posts)
}

// HandleUserComments returns the comments authored by a user, newest
// first.
func (h *Handler) HandleUserComments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list user comments")
	defer cancel()

	comments, err := h.Comments.ListByUser(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, comments)
}

// HandleUserClubs returns the clubs a user participates in or
// administers, deduplicated.
func (h *Handler) HandleUserClubs(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list user clubs")
	defer cancel()

	clubs, err := h.Flow.ClubsForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, clubflow.ErrUserNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("user_not_found", "user does not exist"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, clubs)
}

func (h *Handler) pathUserID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_user_id", "user id is not a valid object id"))
		return primitive.NilObjectID, false
	}
	return userID, true
}
