package filestore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campushub/campushub/internal/domain/models"
)

// ErrNotFound is returned when no file record matches the query.
var ErrNotFound = errors.New("file not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("file_metadata")}
}

// Create records an uploaded file. The blob itself is already in
// storage when this runs.
func (s *Store) Create(ctx context.Context, f models.FileMetadata) (models.FileMetadata, error) {
	f.ID = primitive.NewObjectID()
	f.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.FileMetadata{}, err
	}
	return f, nil
}

// GetByID loads a file record by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FileMetadata, error) {
	var f models.FileMetadata
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// List returns every file record, newest first.
func (s *Store) List(ctx context.Context) ([]models.FileMetadata, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var files []models.FileMetadata
	if err := cur.All(ctx, &files); err != nil {
		return nil, err
	}
	if files == nil {
		files = []models.FileMetadata{}
	}
	return files, nil
}

// ListByCourse returns a course's files, newest first.
func (s *Store) ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.FileMetadata, error) {
	cur, err := s.c.Find(ctx, bson.M{"course_id": courseID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var files []models.FileMetadata
	if err := cur.All(ctx, &files); err != nil {
		return nil, err
	}
	if files == nil {
		files = []models.FileMetadata{}
	}
	return files, nil
}

// Delete removes a file record by ID.
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
