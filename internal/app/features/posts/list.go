// internal/app/features/posts/list.go
package posts

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	poststore "github.com/campushub/campushub/internal/app/store/posts"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
)

// HandleList returns every post, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list posts")
	defer cancel()

	posts, err := h.Posts.List(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, posts)
}

// HandleView returns a single post.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.pathPostID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "view post")
	defer cancel()

	post, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, poststore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("post_not_found", "post does not exist"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, post)
}

func (h *Handler) pathPostID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_post_id", "post id is not a valid object id"))
		return primitive.NilObjectID, false
	}
	return postID, true
}
