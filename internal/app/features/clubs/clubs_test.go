// internal/app/features/clubs/clubs_test.go
package clubs_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/campushub/campushub/internal/app/clubflow"
	clubsfeature "github.com/campushub/campushub/internal/app/features/clubs"
	"github.com/campushub/campushub/internal/app/system/blobstore"
	"github.com/campushub/campushub/internal/app/system/moderation"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/campushub/campushub/internal/testutil"
)

func newHandler(t *testing.T) (*clubsfeature.Handler, *mongo.Database) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	flow := clubflow.New(db.Client(), db, logger)
	gate := moderation.NewGate(nil, false, logger)
	blobs, err := blobstore.NewLocal(t.TempDir(), "/files/materials")
	if err != nil {
		t.Fatalf("local blob store: %v", err)
	}
	return clubsfeature.NewHandler(db, flow, gate, blobs, logger), db
}

func asUser(r *http.Request, u models.User) *http.Request {
	return testutil.WithUser(r, u)
}

func TestApprove_RequiresClubAdmin(t *testing.T) {
	h, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	admin := f.CreateUser(ctx, "Admin")
	outsider := f.CreateUser(ctx, "Outsider")
	applicant := f.CreateUser(ctx, "Applicant")
	club := f.CreateClub(ctx, "Robotics Club", admin.ID)

	if err := h.Flow.Join(ctx, club.ID, applicant.ID); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/clubs/approve", nil)
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	req = testutil.WithChiURLParam(req, "userID", applicant.ID.Hex())
	req = asUser(req, outsider)
	rec := httptest.NewRecorder()

	h.HandleApprove(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("got %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not_club_admin") {
		t.Errorf("body %s, want not_club_admin", rec.Body.String())
	}
}

func TestApprove_AsAdmin(t *testing.T) {
	h, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	admin := f.CreateUser(ctx, "Admin")
	applicant := f.CreateUser(ctx, "Applicant")
	club := f.CreateClub(ctx, "Robotics Club", admin.ID)

	if err := h.Flow.Join(ctx, club.ID, applicant.ID); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/clubs/approve", nil)
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	req = testutil.WithChiURLParam(req, "userID", applicant.ID.Hex())
	req = asUser(req, admin)
	rec := httptest.NewRecorder()

	h.HandleApprove(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, body %s", rec.Code, rec.Body.String())
	}

	participants, err := h.Flow.Participants(ctx, club.ID)
	if err != nil {
		t.Fatalf("Participants failed: %v", err)
	}
	if len(participants) != 1 || participants[0].ID != applicant.ID {
		t.Errorf("participants: got %v, want the approved applicant", participants)
	}
}

func TestApprove_NotPending(t *testing.T) {
	h, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	admin := f.CreateUser(ctx, "Admin")
	stranger := f.CreateUser(ctx, "Stranger")
	club := f.CreateClub(ctx, "Robotics Club", admin.ID)

	req := httptest.NewRequest("POST", "/clubs/approve", nil)
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	req = testutil.WithChiURLParam(req, "userID", stranger.ID.Hex())
	req = asUser(req, admin)
	rec := httptest.NewRecorder()

	h.HandleApprove(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("got %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not_pending") {
		t.Errorf("body %s, want not_pending", rec.Body.String())
	}
}

func TestPendingList_AdminOnly(t *testing.T) {
	h, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	admin := f.CreateUser(ctx, "Admin")
	member := f.CreateUser(ctx, "Member")
	applicant := f.CreateUser(ctx, "Applicant")
	club := f.CreateClub(ctx, "Drama Club", admin.ID)

	if err := h.Flow.Join(ctx, club.ID, applicant.ID); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	// Non-admin is refused.
	req := httptest.NewRequest("GET", "/clubs/requests", nil)
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	req = asUser(req, member)
	rec := httptest.NewRecorder()
	h.HandlePendingList(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin: got %d, want 403", rec.Code)
	}

	// Admin sees the applicant with name and regno.
	req = httptest.NewRequest("GET", "/clubs/requests", nil)
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	req = asUser(req, admin)
	rec = httptest.NewRecorder()
	h.HandlePendingList(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: got %d, body %s", rec.Code, rec.Body.String())
	}

	var pending []struct {
		Name  string `json:"name"`
		RegNo string `json:"regno"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &pending); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if len(pending) != 1 || pending[0].Name != "Applicant" {
		t.Errorf("pending: got %v, want the applicant", pending)
	}
}

func TestCreate_SeedsCreator(t *testing.T) {
	h, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	creator := f.CreateUser(ctx, "Creator")

	req := httptest.NewRequest("POST", "/clubs",
		strings.NewReader(`{"name":"Chess Club","description":"weekly games"}`))
	req.Header.Set("Content-Type", "application/json")
	req = asUser(req, creator)
	rec := httptest.NewRecorder()

	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, body %s", rec.Code, rec.Body.String())
	}

	var club models.Club
	if err := json.Unmarshal(rec.Body.Bytes(), &club); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if len(club.Admins) != 1 || club.Admins[0] != creator.ID {
		t.Errorf("admins: got %v, want just the creator", club.Admins)
	}
	if len(club.Members) != 1 || club.Members[0] != creator.ID {
		t.Errorf("members: got %v, want just the creator", club.Members)
	}
	if club.CreatedBy != creator.ID {
		t.Errorf("created_by: got %s, want creator %s", club.CreatedBy.Hex(), creator.ID.Hex())
	}
}

func TestClubPostCreate_AdminOnly(t *testing.T) {
	h, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	admin := f.CreateUser(ctx, "Admin")
	member := f.CreateUser(ctx, "Member")
	club := f.CreateClub(ctx, "Film Club", admin.ID)

	body := `{"title":"Screening","content":"Friday 6pm"}`

	req := httptest.NewRequest("POST", "/clubs/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	req = asUser(req, member)
	rec := httptest.NewRecorder()
	h.HandlePostCreate(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin: got %d, want 403", rec.Code)
	}

	req = httptest.NewRequest("POST", "/clubs/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithChiURLParam(req, "id", club.ID.Hex())
	req = asUser(req, admin)
	rec = httptest.NewRecorder()
	h.HandlePostCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin: got %d, body %s", rec.Code, rec.Body.String())
	}
}
