// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment belongs to exactly one post. Content passes the NSFW gate
// before insert.
type Comment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID  primitive.ObjectID `bson:"post_id" json:"post_id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	Content string             `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
