// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail
fast. The unique indexes here are the only source of truth for
uniqueness; stores translate the resulting duplicate-key errors, they
never pre-check.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureClubs(ctx, db); err != nil {
		problems = append(problems, "clubs: "+err.Error())
	}
	if err := ensurePosts(ctx, db); err != nil {
		problems = append(problems, "posts: "+err.Error())
	}
	if err := ensureComments(ctx, db); err != nil {
		problems = append(problems, "comments: "+err.Error())
	}
	if err := ensureClubPosts(ctx, db); err != nil {
		problems = append(problems, "club_posts: "+err.Error())
	}
	if err := ensureCourses(ctx, db); err != nil {
		problems = append(problems, "courses: "+err.Error())
	}
	if err := ensureFileMetadata(ctx, db); err != nil {
		problems = append(problems, "file_metadata: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureIndexSet creates the desired indexes for one collection.
// CreateMany is a no-op for an index that already exists with the same
// keys and options; an IndexOptionsConflict (same keys, different
// options or name) is resolved by dropping the old index and retrying.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}

		_, err := coll.Indexes().CreateOne(ctx, m)
		if err == nil {
			continue
		}

		if isOptionsConflictErr(err) && name != "" {
			zap.L().Info("recreating index with changed options",
				zap.String("collection", coll.Name()),
				zap.String("name", name))
			if _, dropErr := coll.Indexes().DropOne(ctx, name); dropErr != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, dropErr))
				continue
			}
			if _, err = coll.Indexes().CreateOne(ctx, m); err == nil {
				continue
			}
		}

		if isDuplicateKeyErr(err) {
			errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index, duplicates present", coll.Name(), name))
			continue
		}
		errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict") ||
		strings.Contains(err.Error(), "IndexKeySpecsConflict")
}

func str(s string) *string { return &s }
func boolp(b bool) *bool   { return &b }

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "regno", Value: 1}},
			Options: &options.IndexOptions{Name: str("uniq_regno"), Unique: boolp(true)},
		},
		{
			Keys:    bson.D{{Key: "email_lc", Value: 1}},
			Options: &options.IndexOptions{Name: str("uniq_email_lc"), Unique: boolp(true)},
		},
	})
}

func ensureClubs(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("clubs"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: &options.IndexOptions{Name: str("uniq_name_ci"), Unique: boolp(true)},
		},
	})
}

func ensurePosts(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("posts"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: &options.IndexOptions{Name: str("by_user_recent")},
		},
	})
}

func ensureComments(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("comments"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: &options.IndexOptions{Name: str("by_post")},
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: &options.IndexOptions{Name: str("by_user_recent")},
		},
	})
}

func ensureClubPosts(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("club_posts"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: &options.IndexOptions{Name: str("by_club_recent")},
		},
	})
}

func ensureCourses(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("courses"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "course_code", Value: 1}},
			Options: &options.IndexOptions{Name: str("uniq_course_code"), Unique: boolp(true)},
		},
		{
			Keys:    bson.D{{Key: "students", Value: 1}},
			Options: &options.IndexOptions{Name: str("by_student")},
		},
	})
}

func ensureFileMetadata(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("file_metadata"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "course_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: &options.IndexOptions{Name: str("by_course_recent")},
		},
	})
}
