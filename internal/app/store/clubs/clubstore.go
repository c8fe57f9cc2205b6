// Package clubstore provides read access to club documents.
//
// All writes to clubs go through the workflow engine, which owns the
// role-set invariants. Keeping this store read-only means there is
// exactly one code path that can mutate membership.
package clubstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campushub/campushub/internal/domain/models"
)

// ErrNotFound is returned when no club matches the query.
var ErrNotFound = errors.New("club not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("clubs")}
}

// GetByID loads a club by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Club, error) {
	var c models.Club
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns all clubs sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Club, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var clubs []models.Club
	if err := cur.All(ctx, &clubs); err != nil {
		return nil, err
	}
	if clubs == nil {
		clubs = []models.Club{}
	}
	return clubs, nil
}

// ByIDs loads the named clubs. Missing IDs are silently skipped.
func (s *Store) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Club, error) {
	if len(ids) == 0 {
		return []models.Club{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var clubs []models.Club
	if err := cur.All(ctx, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}
