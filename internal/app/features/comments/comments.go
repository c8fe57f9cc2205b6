// internal/app/features/comments/comments.go
package comments

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	commentstore "github.com/campushub/campushub/internal/app/store/comments"
	poststore "github.com/campushub/campushub/internal/app/store/posts"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/htmlsanitize"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/domain/models"
)

type commentInput struct {
	Content string `json:"content"`
}

// HandleList returns a post's comments in thread order.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_post_id", "post id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list comments")
	defer cancel()

	comments, err := h.Comments.ListByPost(ctx, postID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, comments)
}

// HandleCreate adds a comment to a post. The content passes the NSFW
// gate before insert; the post must exist.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_post_id", "post id is not a valid object id"))
		return
	}

	var in commentInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if strings.TrimSpace(in.Content) == "" {
		apierr.Write(w, h.Log, apierr.Invalid("missing_content", "content is required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.External(), h.Log, "create comment")
	defer cancel()

	if _, err := h.Posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, poststore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("post_not_found", "post does not exist"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}

	if err := h.Gate.Check(ctx, htmlsanitize.StripTags(in.Content)); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	comment, err := h.Comments.Create(ctx, models.Comment{
		PostID:  postID,
		UserID:  user.ID,
		Content: htmlsanitize.Sanitize(in.Content),
	})
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.Created(w, comment)
}

// HandleDelete removes a comment. The comment's author or the post's
// author may delete it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_comment_id", "comment id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete comment")
	defer cancel()

	comment, err := h.Comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, commentstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("comment_not_found", "comment does not exist"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}

	if comment.UserID != user.ID {
		post, err := h.Posts.GetByID(ctx, comment.PostID)
		if err != nil || post.UserID != user.ID {
			apierr.Write(w, h.Log, apierr.Forbidden("not_author", "only the comment or post author may delete this comment"))
			return
		}
	}

	if err := h.Comments.Delete(ctx, commentID); err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.NoContent(w)
}
