// internal/app/features/clubs/listings.go
package clubs

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/campushub/internal/app/clubflow"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
)

// HandlePendingList returns the users with open join requests.
// Admin-only: pending requests identify users who are not yet members.
func (h *Handler) HandlePendingList(w http.ResponseWriter, r *http.Request) {
	h.adminListing(w, r, "list pending requests", h.Flow.Pending)
}

// HandleParticipants returns the club's non-admin members. Admin-only.
func (h *Handler) HandleParticipants(w http.ResponseWriter, r *http.Request) {
	h.adminListing(w, r, "list participants", h.Flow.Participants)
}

// HandleAdmins returns the club's admins. Visible to any signed-in
// user so members know who can approve them.
func (h *Handler) HandleAdmins(w http.ResponseWriter, r *http.Request) {
	clubID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_club_id", "club id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list admins")
	defer cancel()

	admins, err := h.Flow.Admins(ctx, clubID)
	if err != nil {
		apierr.Write(w, h.Log, flowErr(err))
		return
	}
	httpjson.OK(w, admins)
}

func (h *Handler) adminListing(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	list func(ctx context.Context, clubID primitive.ObjectID) ([]clubflow.MemberInfo, error),
) {
	actor, _ := auth.CurrentUser(r)

	clubID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_club_id", "club id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, operation)
	defer cancel()

	if err := h.requireClubAdmin(ctx, clubID, actor.ID); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	members, err := list(ctx, clubID)
	if err != nil {
		apierr.Write(w, h.Log, flowErr(err))
		return
	}
	httpjson.OK(w, members)
}
