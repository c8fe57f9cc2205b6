// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a registrable course offering. Students holds the IDs of
// registered users; registration is an $addToSet so repeats are no-ops.
type Course struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseCode string             `bson:"course_code" json:"course_code"`
	Name       string             `bson:"name" json:"name"`
	Faculty    string             `bson:"faculty,omitempty" json:"faculty,omitempty"`
	Credits    int                `bson:"credits,omitempty" json:"credits,omitempty"`

	Students []primitive.ObjectID `bson:"students" json:"students"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
