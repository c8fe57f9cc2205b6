// internal/app/features/courses/handler.go
package courses

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	coursestore "github.com/campushub/campushub/internal/app/store/courses"
)

// Handler is the shared dependency container for course registration.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Courses *coursestore.Store
}

// NewHandler constructs the courses Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Courses: coursestore.New(db),
	}
}
