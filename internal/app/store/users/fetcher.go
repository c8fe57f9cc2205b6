package userstore

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/domain/models"
)

// Fetcher implements auth.UserFetcher so the session middleware sees
// the current account on every request, not the token snapshot.
type Fetcher struct {
	users *mongo.Collection
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{users: db.Collection("users")}
}

// ByRegNo resolves a registration number to a session user. Returns
// nil (no error) when the account does not exist; the middleware
// treats that as signed out.
func (f *Fetcher) ByRegNo(ctx context.Context, regno string) (*auth.SessionUser, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	proj := options.FindOne().SetProjection(bson.M{
		"_id":   1,
		"name":  1,
		"email": 1,
		"regno": 1,
	})

	var u models.User
	q := bson.M{"regno": strings.ToUpper(strings.TrimSpace(regno))}
	if err := f.users.FindOne(ctx, q, proj).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &auth.SessionUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		RegNo: u.RegNo,
	}, nil
}
