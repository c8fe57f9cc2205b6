// internal/app/features/files/handler.go
package files

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	coursestore "github.com/campushub/campushub/internal/app/store/courses"
	filestore "github.com/campushub/campushub/internal/app/store/files"
	"github.com/campushub/campushub/internal/app/system/blobstore"
)

type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Files   *filestore.Store
	Courses *coursestore.Store
	Blobs   blobstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger, blobs blobstore.Store) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Files:   filestore.New(db),
		Courses: coursestore.New(db),
		Blobs:   blobs,
	}
}
