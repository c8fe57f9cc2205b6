package commentstore

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

// ErrNotFound is returned when no comment matches the query.
var ErrNotFound = errors.New("comment not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

// Create inserts a comment. Content must already have passed the gate.
func (s *Store) Create(ctx context.Context, c models.Comment) (models.Comment, error) {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// GetByID loads a comment by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var c models.Comment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByPost returns a post's comments in thread order (oldest first).
func (s *Store) ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	return s.find(ctx, bson.M{"post_id": postID}, 1)
}

// ListByUser returns a user's comments, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Comment, error) {
	return s.find(ctx, bson.M{"user_id": userID}, -1)
}

func (s *Store) find(ctx context.Context, filter bson.M, order int) ([]models.Comment, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: order}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// Delete removes a comment by ID.
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

// DeleteByPost removes every comment on a post. Used when the post
// itself is deleted.
func (s *Store) DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"post_id": postID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
