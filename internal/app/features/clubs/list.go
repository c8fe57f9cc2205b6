// internal/app/features/clubs/list.go
package clubs

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	clubstore "github.com/campushub/campushub/internal/app/store/clubs"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
)

// HandleList returns all clubs.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list clubs")
	defer cancel()

	clubs, err := h.Clubs.List(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, clubs)
}

// HandleView returns a single club document.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	clubID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_club_id", "club id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "view club")
	defer cancel()

	club, err := h.Clubs.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, clubstore.ErrNotFound) {
			apierr.Write(w, h.Log, apierr.NotFound("club_not_found", "club does not exist"))
			return
		}
		apierr.Write(w, h.Log, apierr.Internal(err))
		return
	}
	httpjson.OK(w, club)
}
