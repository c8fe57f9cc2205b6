// internal/app/features/clubs/handler.go
package clubs

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/campushub/campushub/internal/app/clubflow"
	clubstore "github.com/campushub/campushub/internal/app/store/clubs"
	clubpoststore "github.com/campushub/campushub/internal/app/store/clubposts"
	"github.com/campushub/campushub/internal/app/system/apierr"
	"github.com/campushub/campushub/internal/app/system/blobstore"
	"github.com/campushub/campushub/internal/app/system/moderation"
)

// Handler is the shared dependency container for the clubs feature.
// Every role-set mutation goes through the workflow engine; the store
// is only used for reads.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Flow  *clubflow.Engine
	Clubs *clubstore.Store
	Posts *clubpoststore.Store
	Gate  *moderation.Gate
	Blobs blobstore.Store
}

// NewHandler constructs the clubs Handler. Called from bootstrap
// BuildHandler once the engine, gate, and blob store exist.
func NewHandler(db *mongo.Database, flow *clubflow.Engine, gate *moderation.Gate, blobs blobstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Flow:  flow,
		Clubs: clubstore.New(db),
		Posts: clubpoststore.New(db),
		Gate:  gate,
		Blobs: blobs,
	}
}

// flowErr translates engine sentinel errors into the API taxonomy.
func flowErr(err error) error {
	switch {
	case errors.Is(err, clubflow.ErrClubNotFound):
		return apierr.NotFound("club_not_found", "club does not exist")
	case errors.Is(err, clubflow.ErrUserNotFound):
		return apierr.NotFound("user_not_found", "user does not exist")
	case errors.Is(err, clubflow.ErrDuplicateName):
		return apierr.Conflict("duplicate_club_name", "a club with this name already exists")
	case errors.Is(err, clubflow.ErrAlreadyMember):
		return apierr.Conflict("already_member", "user is already a member of this club")
	case errors.Is(err, clubflow.ErrAlreadyPending):
		return apierr.Conflict("already_pending", "user already has a pending request for this club")
	case errors.Is(err, clubflow.ErrAlreadyAdmin):
		return apierr.Conflict("already_admin", "user is already an admin of this club")
	case errors.Is(err, clubflow.ErrNotPending):
		return apierr.Conflict("not_pending", "user has no pending request for this club")
	case errors.Is(err, clubflow.ErrNotMember):
		return apierr.Conflict("not_member", "user is not a member of this club")
	case errors.Is(err, clubflow.ErrEmptyName):
		return apierr.Invalid("missing_name", "club name is required")
	default:
		return apierr.Internal(err)
	}
}
