// internal/app/features/posts/edit.go
package posts

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	poststore "github.com/campushub/campushub/internal/app/store/posts"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/htmlsanitize"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/domain/models"
)

// HandleUpdate edits a post. Only the author may edit, and the new
// content passes the NSFW gate like a fresh post.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	postID, ok := h.pathPostID(w, r)
	if !ok {
		return
	}

	var in postInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := in.validate(); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.External(), h.Log, "update post")
	defer cancel()

	if _, err := h.loadOwnPost(ctx, w, postID, user); err != nil {
		return
	}

	if err := h.Gate.Check(ctx, in.Title, htmlsanitize.StripTags(in.Content)); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := h.Posts.Update(ctx, postID, in.Title, htmlsanitize.Sanitize(in.Content)); err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}

	updated, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, updated)
}

// HandleDelete removes a post and its comments. Only the author may
// delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	postID, ok := h.pathPostID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete post")
	defer cancel()

	if _, err := h.loadOwnPost(ctx, w, postID, user); err != nil {
		return
	}

	if err := h.Posts.Delete(ctx, postID); err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	// Comments are orphaned without their post; remove them too.
	if _, err := h.Comments.DeleteByPost(ctx, postID); err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.NoContent(w)
}

// loadOwnPost fetches the post and enforces authorship. On failure it
// writes the error response and returns a non-nil error.
func (h *Handler) loadOwnPost(ctx context.Context, w http.ResponseWriter, postID primitive.ObjectID, user *auth.SessionUser) (*models.Post, error) {
	post, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, poststore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("post_not_found", "post does not exist"))
			return nil, err
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return nil, err
	}
	if post.UserID != user.ID {
		err := apierr.Forbidden("not_author", "only the author may modify this post")
		apierr.Write(w, h.Log, err)
		return nil, err
	}
	return post, nil
}
