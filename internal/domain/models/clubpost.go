// internal/domain/models/clubpost.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClubPost is an announcement scoped to a single club. Only club
// admins may create or delete one.
type ClubPost struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID  primitive.ObjectID `bson:"club_id" json:"club_id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
