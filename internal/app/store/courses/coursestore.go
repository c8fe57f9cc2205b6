package coursestore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campushub/campushub/internal/domain/models"
)

var (
	// ErrDuplicateCode is returned when the course_code unique index
	// rejects an insert.
	ErrDuplicateCode = errors.New("a course with this code already exists")

	// ErrNotFound is returned when no course matches the query.
	ErrNotFound = errors.New("course not found")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("courses")}
}

// Create inserts a course.
func (s *Store) Create(ctx context.Context, c models.Course) (models.Course, error) {
	c.ID = primitive.NewObjectID()
	c.CourseCode = strings.ToUpper(strings.TrimSpace(c.CourseCode))
	c.Name = strings.TrimSpace(c.Name)
	if c.Students == nil {
		c.Students = []primitive.ObjectID{}
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Course{}, ErrDuplicateCode
		}
		return models.Course{}, err
	}
	return c, nil
}

// GetByID loads a course by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var c models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns all courses sorted by code.
func (s *Store) List(ctx context.Context) ([]models.Course, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "course_code", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var courses []models.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

// Register adds a user to the course roster. $addToSet makes repeat
// registration a no-op.
func (s *Store) Register(ctx context.Context, courseID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": courseID}, bson.M{
		"$addToSet": bson.M{"students": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a course by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRegistered returns the courses a user is registered in.
func (s *Store) ListRegistered(ctx context.Context, userID primitive.ObjectID) ([]models.Course, error) {
	cur, err := s.c.Find(ctx, bson.M{"students": userID},
		options.Find().SetSort(bson.D{{Key: "course_code", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var courses []models.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}
