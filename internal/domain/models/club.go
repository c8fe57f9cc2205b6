// internal/domain/models/club.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Club embeds its role sets directly on the document.
//
// NOTE:
//   - Admins is always a subset of Members; the workflow engine keeps
//     that invariant on every transition.
//   - PendingRequests is disjoint from Members.
//   - NameCI backs the unique index (lowercase, diacritics-stripped).
type Club struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`
	ImageURL    string             `bson:"image_url,omitempty" json:"image_url,omitempty"`

	Admins          []primitive.ObjectID `bson:"admins" json:"admins"`
	Members         []primitive.ObjectID `bson:"members" json:"members"`
	PendingRequests []primitive.ObjectID `bson:"pending_requests" json:"pending_requests"`
	FacultyAdvisor  []primitive.ObjectID `bson:"faculty_advisor" json:"faculty_advisor"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
