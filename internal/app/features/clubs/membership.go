// internal/app/features/clubs/membership.go
package clubs

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/campushub/internal/app/policy/clubpolicy"
	clubstore "github.com/campushub/campushub/internal/app/store/clubs"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/httpjson"
	"github.com/campushub/campushub/internal/app/system/timeouts"
)

// HandleJoin records a join request for the signed-in user.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	clubID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_club_id", "club id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "join club")
	defer cancel()

	if err := h.Flow.Join(ctx, clubID, user.ID); err != nil {
		apierr.Write(w, h.Log, flowErr(err))
		return
	}
	httpjson.OK(w, map[string]string{"status": "pending"})
}

// HandleApprove moves a pending request into membership. Caller must
// be a club admin.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.adminTransition(w, r, "approve join request", h.Flow.Approve, "member")
}

// HandleDecline removes a pending request. Caller must be a club admin.
func (h *Handler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	h.adminTransition(w, r, "decline join request", h.Flow.Decline, "declined")
}

// HandlePromote adds a member to the admin set. Caller must be a club
// admin.
func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	h.adminTransition(w, r, "promote member", h.Flow.Promote, "admin")
}

// adminTransition is the shared shape of approve/decline/promote: an
// admin acting on a target user's state in the club.
func (h *Handler) adminTransition(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	transition func(ctx context.Context, clubID, userID primitive.ObjectID) error,
	resultStatus string,
) {
	actor, _ := auth.CurrentUser(r)

	clubID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_club_id", "club id is not a valid object id"))
		return
	}
	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		apierr.Write(w, h.Log, apierr.Invalid("bad_user_id", "user id is not a valid object id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, operation)
	defer cancel()

	if err := h.requireClubAdmin(ctx, clubID, actor.ID); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := transition(ctx, clubID, targetID); err != nil {
		apierr.Write(w, h.Log, flowErr(err))
		return
	}
	httpjson.OK(w, map[string]string{"status": resultStatus})
}

// requireClubAdmin loads the club and checks the actor against its
// admin set. Returns an apierr value on any failure.
func (h *Handler) requireClubAdmin(ctx context.Context, clubID, actorID primitive.ObjectID) error {
	club, err := h.Clubs.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, clubstore.ErrNotFound) {
			return apierr.NotFound("club_not_found", "club does not exist")
		}
		return apierr.Internal(err)
	}
	if !clubpolicy.CanManage(club, actorID) {
		return apierr.Forbidden("not_club_admin", "club admin role required")
	}
	return nil
}
