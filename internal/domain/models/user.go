// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a student account identified by registration number.
//
// NOTE:
//   - EmailLC holds the lowercase email and backs the unique index;
//     Email preserves the caller's casing for display.
//   - ClubsParticipated and ClubsAdministered are maintained only by
//     the club workflow engine; no handler writes them directly.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	EmailLC    string             `bson:"email_lc" json:"-"`
	RegNo      string             `bson:"regno" json:"regno"`
	Password   string             `bson:"password" json:"-"` // bcrypt hash
	Department string             `bson:"department,omitempty" json:"department,omitempty"`
	Year       int                `bson:"year,omitempty" json:"year,omitempty"`

	ClubsParticipated []primitive.ObjectID `bson:"clubs_participated" json:"clubs_participated"`
	ClubsAdministered []primitive.ObjectID `bson:"clubs_administered" json:"clubs_administered"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
