// internal/app/features/clubs/posts.go
package clubs

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	clubpoststore "github.com/campushub/campushub/internal/app/store/clubposts"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/htmlsanitize"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/domain/models"
)

type createClubPostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HandlePostList returns a club's announcements. Public, like the
// club list itself.
func (h *Handler) HandlePostList(w http.ResponseWriter, r *http.Request) {
	clubID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_club_id", "club id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list club posts")
	defer cancel()

	posts, err := h.Posts.ListByClub(ctx, clubID)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, posts)
}

// HandlePostCreate creates an announcement. Admin-only; content passes
// the NSFW gate before insert.
func (h *Handler) HandlePostCreate(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)

	clubID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_club_id", "club id is not a valid object id"))
		return
	}

	var in createClubPostInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || strings.TrimSpace(in.Content) == "" {
		apierr.Write(w, h.Log, apierr.Invalid("missing_fields", "title and content are required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.External(), h.Log, "create club post")
	defer cancel()

	if err := h.requireClubAdmin(ctx, clubID, actor.ID); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := h.Gate.Check(ctx, in.Title, htmlsanitize.StripTags(in.Content)); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	post, err := h.Posts.Create(ctx, models.ClubPost{
		ClubID:  clubID,
		UserID:  actor.ID,
		Title:   in.Title,
		Content: htmlsanitize.Sanitize(in.Content),
	})
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.Created(w, post)
}

// HandlePostDelete removes an announcement. Admin-only.
func (h *Handler) HandlePostDelete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)

	clubID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_club_id", "club id is not a valid object id"))
		return
	}
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_post_id", "post id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete club post")
	defer cancel()

	if err := h.requireClubAdmin(ctx, clubID, actor.ID); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	post, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, clubpoststore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("club_post_not_found", "club post does not exist"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	if post.ClubID != clubID {
		apierr.Write(w, h.Log, apierr.NotFound("club_post_not_found", "club post does not exist"))
		return
	}

	if err := h.Posts.Delete(ctx, postID); err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.NoContent(w)
}
