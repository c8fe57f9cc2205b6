// internal/app/features/posts/posts_test.go
package posts_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	postsfeature "github.com/campushub/campushub/internal/app/features/posts"
	"github.com/campushub/campushub/internal/app/system/moderation"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/campushub/campushub/internal/testutil"
)

// stubClassifier returns a fixed verdict or error for every text.
type stubClassifier struct {
	verdict string
	err     error
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (string, error) {
	return s.verdict, s.err
}

func newHandler(t *testing.T, cls moderation.Classifier, failClosed bool) (*postsfeature.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	gate := moderation.NewGate(cls, failClosed, logger)
	return postsfeature.NewHandler(db, gate, logger), db
}

func createPost(t *testing.T, h *postsfeature.Handler, u models.User, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, u)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	return rec
}

func TestCreate_CleanContent(t *testing.T) {
	h, db := newHandler(t, &stubClassifier{verdict: "No"}, false)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	author := f.CreateUser(ctx, "Author")

	rec := createPost(t, h, author, `{"title":"Exam schedule","content":"Finals start Monday"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, body %s", rec.Code, rec.Body.String())
	}

	var post models.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if post.UserID != author.ID {
		t.Errorf("user_id: got %v, want author", post.UserID)
	}
}

func TestCreate_FlaggedContent(t *testing.T) {
	h, db := newHandler(t, &stubClassifier{verdict: "Yes"}, false)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	author := f.CreateUser(ctx, "Author")

	rec := createPost(t, h, author, `{"title":"Bad","content":"bad content"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "nsfw_content") {
		t.Errorf("body %s, want nsfw_content", rec.Body.String())
	}

	// Flagged content never reaches the collection.
	n, err := db.Collection("posts").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("counting posts: %v", err)
	}
	if n != 0 {
		t.Errorf("posts stored: got %d, want 0", n)
	}
}

func TestCreate_ClassifierDown_FailOpen(t *testing.T) {
	h, db := newHandler(t, &stubClassifier{err: errors.New("connection refused")}, false)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	author := f.CreateUser(ctx, "Author")

	rec := createPost(t, h, author, `{"title":"Fine","content":"harmless"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("fail-open: got %d, want 201", rec.Code)
	}
}

func TestCreate_ClassifierDown_FailClosed(t *testing.T) {
	h, db := newHandler(t, &stubClassifier{err: errors.New("connection refused")}, true)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	author := f.CreateUser(ctx, "Author")

	rec := createPost(t, h, author, `{"title":"Fine","content":"harmless"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("fail-closed: got %d, want 500", rec.Code)
	}
}

func TestDelete_AuthorOnly(t *testing.T) {
	h, db := newHandler(t, nil, false)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	author := f.CreateUser(ctx, "Author")
	other := f.CreateUser(ctx, "Other")
	post := f.CreatePost(ctx, author.ID, "mine")

	req := httptest.NewRequest("DELETE", "/posts/"+post.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", post.ID.Hex())
	req = testutil.WithUser(req, other)
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-author: got %d, want 403", rec.Code)
	}

	req = httptest.NewRequest("DELETE", "/posts/"+post.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", post.ID.Hex())
	req = testutil.WithUser(req, author)
	rec = httptest.NewRecorder()
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("author: got %d, want 204", rec.Code)
	}
}
