// internal/app/features/users/handler.go
package users

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/campushub/campushub/internal/app/clubflow"
	commentstore "github.com/campushub/campushub/internal/app/store/comments"
	poststore "github.com/campushub/campushub/internal/app/store/posts"
	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/auth"
)

// Handler is the shared dependency container for account endpoints:
// registration, login, and per-user activity listings.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	TM       *auth.TokenManager
	Users    *userstore.Store
	Posts    *poststore.Store
	Comments *commentstore.Store
	Flow     *clubflow.Engine
}

// NewHandler constructs the users Handler.
func NewHandler(db *mongo.Database, tm *auth.TokenManager, flow *clubflow.Engine, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		TM:       tm,
		Users:    userstore.New(db),
		Posts:    poststore.New(db),
		Comments: commentstore.New(db),
		Flow:     flow,
	}
}
