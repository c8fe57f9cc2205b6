package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campushub/campushub/internal/domain/models"
)

var (
	// ErrDuplicate is returned when the regno or email unique index
	// rejects an insert. The index is the only uniqueness check.
	ErrDuplicate = errors.New("a user with this registration number or email already exists")

	// ErrNotFound is returned when no user matches the query.
	ErrNotFound = errors.New("user not found")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new user after normalizing identity fields. The
// password must already be hashed.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.EmailLC = strings.ToLower(u.Email)
	u.RegNo = strings.ToUpper(strings.TrimSpace(u.RegNo))
	if u.ClubsParticipated == nil {
		u.ClubsParticipated = []primitive.ObjectID{}
	}
	if u.ClubsAdministered == nil {
		u.ClubsAdministered = []primitive.ObjectID{}
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByRegNo looks up a user by registration number.
func (s *Store) GetByRegNo(ctx context.Context, regno string) (*models.User, error) {
	var u models.User
	q := bson.M{"regno": strings.ToUpper(strings.TrimSpace(regno))}
	if err := s.c.FindOne(ctx, q).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	q := bson.M{"email_lc": strings.ToLower(strings.TrimSpace(email))}
	if err := s.c.FindOne(ctx, q).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ByIDs loads the named users, projected to the fields needed for
// member listings. Missing IDs are silently skipped.
func (s *Store) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
