// internal/app/features/comments/handler.go
package comments

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	commentstore "github.com/campushub/campushub/internal/app/store/comments"
	poststore "github.com/campushub/campushub/internal/app/store/posts"
	"github.com/campushub/campushub/internal/app/system/moderation"
)

// Handler is the shared dependency container for post comments.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Comments *commentstore.Store
	Posts    *poststore.Store
	Gate     *moderation.Gate
}

// NewHandler constructs the comments Handler.
func NewHandler(db *mongo.Database, gate *moderation.Gate, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Comments: commentstore.New(db),
		Posts:    poststore.New(db),
		Gate:     gate,
	}
}
