// internal/domain/models/filemeta.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileMetadata records one uploaded PDF. The bytes live in blob
// storage under StorageKey; this document is the queryable index.
type FileMetadata struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID    primitive.ObjectID `bson:"course_id" json:"course_id"`
	UploaderID  primitive.ObjectID `bson:"uploader_id" json:"uploader_id"`
	FileName    string             `bson:"file_name" json:"file_name"`
	StorageKey  string             `bson:"storage_key" json:"-"`
	URL         string             `bson:"url" json:"url"`
	Size        int64              `bson:"size" json:"size"`
	Subject     string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
