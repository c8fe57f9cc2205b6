package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campushub/campushub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
	n  int
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with a generated registration number.
func (f *Fixtures) CreateUser(ctx context.Context, name string) models.User {
	f.t.Helper()
	f.n++

	now := time.Now().UTC()
	u := models.User{
		ID:                primitive.NewObjectID(),
		Name:              name,
		Email:             fmt.Sprintf("user%d@test.edu", f.n),
		EmailLC:           fmt.Sprintf("user%d@test.edu", f.n),
		RegNo:             fmt.Sprintf("21BCE%04d", f.n),
		Password:          "$2a$10$fixture.hash.not.verifiable",
		ClubsParticipated: []primitive.ObjectID{},
		ClubsAdministered: []primitive.ObjectID{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("inserting fixture user: %v", err)
	}
	return u
}

// CreateClub inserts a club with the given admin as sole admin/member.
func (f *Fixtures) CreateClub(ctx context.Context, name string, adminID primitive.ObjectID) models.Club {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Club{
		ID:              primitive.NewObjectID(),
		Name:            name,
		NameCI:          text.Fold(name),
		Description:     "fixture club",
		CreatedBy:       adminID,
		Admins:          []primitive.ObjectID{adminID},
		Members:         []primitive.ObjectID{adminID},
		PendingRequests: []primitive.ObjectID{},
		FacultyAdvisor:  []primitive.ObjectID{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := f.db.Collection("clubs").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("inserting fixture club: %v", err)
	}
	return c
}

// CreatePost inserts a post for the given user.
func (f *Fixtures) CreatePost(ctx context.Context, userID primitive.ObjectID, title string) models.Post {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Post{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     title,
		Content:   "fixture content",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("inserting fixture post: %v", err)
	}
	return p
}

// CreateCourse inserts a course with a generated code.
func (f *Fixtures) CreateCourse(ctx context.Context, name string) models.Course {
	f.t.Helper()
	f.n++

	now := time.Now().UTC()
	c := models.Course{
		ID:         primitive.NewObjectID(),
		CourseCode: fmt.Sprintf("CSE%04d", f.n),
		Name:       name,
		Credits:    4,
		Students:   []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("courses").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("inserting fixture course: %v", err)
	}
	return c
}
