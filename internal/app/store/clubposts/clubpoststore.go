package clubpoststore

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

// ErrNotFound is returned when no club post matches the query.
var ErrNotFound = errors.New("club post not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("club_posts")}
}

// Create inserts a club announcement. Admin checks happen in the
// handler; content must already have passed the gate.
func (s *Store) Create(ctx context.Context, p models.ClubPost) (models.ClubPost, error) {
	p.ID = primitive.NewObjectID()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.ClubPost{}, err
	}
	return p, nil
}

// GetByID loads a club post by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ClubPost, error) {
	var p models.ClubPost
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByClub returns a club's announcements, newest first.
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID) ([]models.ClubPost, error) {
	cur, err := s.c.Find(ctx, bson.M{"club_id": clubID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.ClubPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.ClubPost{}
	}
	return posts, nil
}

// Delete removes a club post by ID.
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
