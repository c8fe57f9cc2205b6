// internal/app/features/posts/create.go
package posts

import (
	"net/http"
	"strings"

	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/htmlsanitize"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/domain/models"
)

type postInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (in *postInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || strings.TrimSpace(in.Content) == "" {
		return apierr.Invalid("missing_fields", "title and content are required")
	}
	return nil
}

// HandleCreate publishes a post. Title and content pass the NSFW gate
// before the document exists; flagged content is never stored.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var in postInput
	if err := httpjson.Decode(r, &in); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := in.validate(); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.External(), h.Log, "create post")
	defer cancel()

	if err := h.Gate.Check(ctx, in.Title, htmlsanitize.StripTags(in.Content)); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	post, err := h.Posts.Create(ctx, models.Post{
		UserID:  user.ID,
		Title:   in.Title,
		Content: htmlsanitize.Sanitize(in.Content),
	})
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.Created(w, post)
}
