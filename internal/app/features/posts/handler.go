// internal/app/features/posts/handler.go
package posts

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	commentstore "github.com/campushub/campushub/internal/app/store/comments"
	poststore "github.com/campushub/campushub/internal/app/store/posts"
	"github.com/campushub/campushub/internal/app/system/moderation"
)

// Handler is the shared dependency container for campus-wide posts.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Posts    *poststore.Store
	Comments *commentstore.Store
	Gate     *moderation.Gate
}

// NewHandler constructs the posts Handler.
func NewHandler(db *mongo.Database, gate *moderation.Gate, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Posts:    poststore.New(db),
		Comments: commentstore.New(db),
		Gate:     gate,
	}
}
