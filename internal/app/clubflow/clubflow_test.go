package clubflow_test

import (
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/campushub/campushub/internal/app/clubflow"
	"github.com/campushub/campushub/internal/app/system/indexes"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/campushub/campushub/internal/testutil"
)

func newEngine(t *testing.T) (*clubflow.Engine, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return clubflow.New(testutil.TestClient(db), db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func loadClub(t *testing.T, f *testutil.Fixtures, id primitive.ObjectID) models.Club {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var c models.Club
	if err := f.DB().Collection("clubs").FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		t.Fatalf("loading club: %v", err)
	}
	return c
}

func loadUser(t *testing.T, f *testutil.Fixtures, id primitive.ObjectID) models.User {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var u models.User
	if err := f.DB().Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		t.Fatalf("loading user: %v", err)
	}
	return u
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// assertInvariants checks the structural rules that must hold after
// every transition: admins are members, pending is disjoint from
// members, and no set holds duplicates.
func assertInvariants(t *testing.T, c models.Club) {
	t.Helper()

	for _, a := range c.Admins {
		if !contains(c.Members, a) {
			t.Errorf("admin %s is not a member", a.Hex())
		}
	}
	for _, p := range c.PendingRequests {
		if contains(c.Members, p) {
			t.Errorf("pending user %s is also a member", p.Hex())
		}
	}
	for _, set := range [][]primitive.ObjectID{c.Admins, c.Members, c.PendingRequests} {
		seen := map[primitive.ObjectID]int{}
		for _, id := range set {
			seen[id]++
			if seen[id] > 1 {
				t.Errorf("duplicate id %s in role set", id.Hex())
			}
		}
	}
}

func TestCreateClub(t *testing.T) {
	engine, f := newEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := f.CreateUser(ctx, "Creator")
	advisor := f.CreateUser(ctx, "Advisor")

	club, err := engine.CreateClub(ctx, clubflow.ClubProfile{
		Name:           "Robotics Club",
		Description:    "builds robots",
		FacultyAdvisor: []primitive.ObjectID{advisor.ID},
	}, creator.ID)
	if err != nil {
		t.Fatalf("CreateClub: %v", err)
	}

	got := loadClub(t, f, club.ID)
	assertInvariants(t, got)
	if !contains(got.Admins, creator.ID) || !contains(got.Members, creator.ID) {
		t.Error("creator must be admin and member")
	}
	if got.CreatedBy != creator.ID {
		t.Errorf("CreatedBy = %s, want creator %s", got.CreatedBy.Hex(), creator.ID.Hex())
	}
	if !contains(got.FacultyAdvisor, advisor.ID) {
		t.Error("faculty advisor id must be persisted on the club")
	}

	u := loadUser(t, f, creator.ID)
	if !contains(u.ClubsAdministered, club.ID) || !contains(u.ClubsParticipated, club.ID) {
		t.Error("creator's user document must mirror both roles")
	}
}

func TestCreateClub_DuplicateName(t *testing.T) {
	engine, f := newEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ensureClubIndexes(t, f)
	creator := f.CreateUser(ctx, "Creator")

	if _, err := engine.CreateClub(ctx, clubflow.ClubProfile{Name: "Chess Club"}, creator.ID); err != nil {
		t.Fatalf("first CreateClub: %v", err)
	}
	_, err := engine.CreateClub(ctx, clubflow.ClubProfile{Name: "chess club"}, creator.ID)
	if !errors.Is(err, clubflow.ErrDuplicateName) {
		t.Errorf("err = %v, want ErrDuplicateName", err)
	}
}

func TestJoinApprove_FullFlow(t *testing.T) {
	engine, f := newEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateUser(ctx, "Admin")
	student := f.CreateUser(ctx, "Student")
	club := f.CreateClub(ctx, "Drama Club", admin.ID)

	if err := engine.Join(ctx, club.ID, student.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	c := loadClub(t, f, club.ID)
	assertInvariants(t, c)
	if !contains(c.PendingRequests, student.ID) {
		t.Fatal("expected student in pending_requests")
	}

	if err := engine.Approve(ctx, club.ID, student.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	c = loadClub(t, f, club.ID)
	assertInvariants(t, c)
	if !contains(c.Members, student.ID) {
		t.Error("expected student in members after approve")
	}
	if contains(c.PendingRequests, student.ID) {
		t.Error("expected student removed from pending after approve")
	}

	u := loadUser(t, f, student.ID)
	if !contains(u.ClubsParticipated, club.ID) {
		t.Error("expected club mirrored into clubs_participated")
	}
	if contains(u.ClubsAdministered, club.ID) {
		t.Error("approve must not grant admin")
	}
}

func TestJoin_StateErrors(t *testing.T) {
	engine, f := newEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateUser(ctx, "Admin")
	student := f.CreateUser(ctx, "Student")
	club := f.CreateClub(ctx, "Music Club", admin.ID)

	if err := engine.Join(ctx, club.ID, admin.ID); !errors.Is(err, clubflow.ErrAlreadyMember) {
		t.Errorf("join as member: err = %v, want ErrAlreadyMember", err)
	}

	if err := engine.Join(ctx, club.ID, student.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := engine.Join(ctx, club.ID, student.ID); !errors.Is(err, clubflow.ErrAlreadyPending) {
		t.Errorf("repeat join: err = %v, want ErrAlreadyPending", err)
	}

	if err := engine.Join(ctx, primitive.NewObjectID(), student.ID); !errors.Is(err, clubflow.ErrClubNotFound) {
		t.Errorf("join missing club: err = %v, want ErrClubNotFound", err)
	}
}

func TestDecline(t *testing.T) {
	engine, f := newEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateUser(ctx, "Admin")
	student := f.CreateUser(ctx, "Student")
	club := f.CreateClub(ctx, "Art Club", admin.ID)

	if err := engine.Join(ctx, club.ID, student.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := engine.Decline(ctx, club.ID, student.ID); err != nil {
		t.Fatalf("Decline: %v", err)
	}

	c := loadClub(t, f, club.ID)
	assertInvariants(t, c)
	if contains(c.PendingRequests, student.ID) || contains(c.Members, student.ID) {
		t.Error("declined user must be in no role set")
	}

	// Declined users can request again.
	if err := engine.Join(ctx, club.ID, student.ID); err != nil {
		t.Errorf("re-join after decline: %v", err)
	}
}

func TestApproveDecline_NotPending(t *testing.T) {
	engine, f := newEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateUser(ctx, "Admin")
	student := f.CreateUser(ctx, "Student")
	club := f.CreateClub(ctx, "Film Club", admin.ID)

	if err := engine.Approve(ctx, club.ID, student.ID); !errors.Is(err, clubflow.ErrNotPending) {
		t.Errorf("approve without request: err = %v, want ErrNotPending", err)
	}
	if err := engine.Decline(ctx, club.ID, student.ID); !errors.Is(err, clubflow.ErrNotPending) {
		t.Errorf("decline without request: err = %v, want ErrNotPending", err)
	}
	if err := engine.Approve(ctx, club.ID, admin.ID); !errors.Is(err, clubflow.ErrAlreadyMember) {
		t.Errorf("approve existing member: err = %v, want ErrAlreadyMember", err)
	}
}

func TestApprove_Twice(t *testing.T) {
	engine, f := newEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateUser(ctx, "Admin")
	student := f.CreateUser(ctx, "Student")
	club := f.CreateClub(ctx, "Coding Club", admin.ID)

	if err := engine.Join(ctx, club.ID, student.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := engine.Approve(ctx, club.ID, student.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := engine.Approve(ctx, club.ID, student.ID); !errors.Is(err, clubflow.ErrAlreadyMember) {
		t.Errorf("second approve: err = %v, want ErrAlreadyMember", err)
	}

	c := loadClub(t, f, club.ID)
	assertInvariants(t, c)
}

func TestPromote(t *testing.T) {
	engine, f := newEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateUser(ctx, "Admin")
	student := f.CreateUser(ctx, "Student")
	club := f.CreateClub(ctx, "Quiz Club", admin.ID)

	if err := engine.Join(ctx, club.ID, student.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := engine.Approve(ctx, club.ID, student.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := engine.Promote(ctx, club.ID, student.ID); err != nil {
		t.Fatalf("Promote: %v", err)
	}

	c := loadClub(t, f, club.ID)
	assertInvariants(t, c)
	if !contains(c.Admins, student.ID) || !contains(c.Members, student.ID) {
		t.Error("promoted user must be both admin and member")
	}

	u := loadUser(t, f, student.ID)
	if !contains(u.ClubsAdministered, club.ID) || !contains(u.ClubsParticipated, club.ID) {
		t.Error("promotion must mirror into clubs_administered and keep clubs_participated")
	}
}

func TestPromote_StateErrors(t *testing.T) {
	engine, f := newEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateUser(ctx, "Admin")
	outsider := f.CreateUser(ctx, "Outsider")
	club := f.CreateClub(ctx, "Debate Club", admin.ID)

	if err := engine.Promote(ctx, club.ID, outsider.ID); !errors.Is(err, clubflow.ErrNotMember) {
		t.Errorf("promote non-member: err = %v, want ErrNotMember", err)
	}
	if err := engine.Promote(ctx, club.ID, admin.ID); !errors.Is(err, clubflow.ErrAlreadyAdmin) {
		t.Errorf("promote admin: err = %v, want ErrAlreadyAdmin", err)
	}
}

func TestConcurrentJoins_SinglePendingEntry(t *testing.T) {
	engine, f := newEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateUser(ctx, "Admin")
	student := f.CreateUser(ctx, "Student")
	club := f.CreateClub(ctx, "Photography Club", admin.ID)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = engine.Join(ctx, club.ID, student.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, clubflow.ErrAlreadyPending) {
			t.Errorf("unexpected join error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("%d joins succeeded, want exactly 1", succeeded)
	}

	c := loadClub(t, f, club.ID)
	assertInvariants(t, c)
	count := 0
	for _, id := range c.PendingRequests {
		if id == student.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("pending entries for student = %d, want 1", count)
	}
}

func TestListings(t *testing.T) {
	engine, f := newEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateUser(ctx, "Admin")
	member := f.CreateUser(ctx, "Member")
	pending := f.CreateUser(ctx, "Pending")
	club := f.CreateClub(ctx, "Astronomy Club", admin.ID)

	if err := engine.Join(ctx, club.ID, member.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := engine.Approve(ctx, club.ID, member.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := engine.Join(ctx, club.ID, pending.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}

	parts, err := engine.Participants(ctx, club.ID)
	if err != nil {
		t.Fatalf("Participants: %v", err)
	}
	if len(parts) != 1 || parts[0].ID != member.ID {
		t.Errorf("Participants = %+v, want only the non-admin member", parts)
	}
	if parts[0].Name != "Member" || parts[0].RegNo == "" {
		t.Errorf("participant projection incomplete: %+v", parts[0])
	}

	pend, err := engine.Pending(ctx, club.ID)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pend) != 1 || pend[0].ID != pending.ID {
		t.Errorf("Pending = %+v", pend)
	}

	admins, err := engine.Admins(ctx, club.ID)
	if err != nil {
		t.Fatalf("Admins: %v", err)
	}
	if len(admins) != 1 || admins[0].ID != admin.ID {
		t.Errorf("Admins = %+v", admins)
	}
}

func TestClubsForUser_UnionWithoutDuplicates(t *testing.T) {
	engine, f := newEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := f.CreateUser(ctx, "Creator")

	// Creator of a club is in both mirror lists; the union must not
	// report the club twice.
	club, err := engine.CreateClub(ctx, clubflow.ClubProfile{Name: "Robotics Club"}, user.ID)
	if err != nil {
		t.Fatalf("CreateClub: %v", err)
	}

	other := f.CreateUser(ctx, "Other")
	memberClub := f.CreateClub(ctx, "Member Club", other.ID)
	if err := engine.Join(ctx, memberClub.ID, user.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := engine.Approve(ctx, memberClub.ID, user.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	clubs, err := engine.ClubsForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ClubsForUser: %v", err)
	}
	if len(clubs) != 2 {
		t.Fatalf("ClubsForUser returned %d clubs, want 2", len(clubs))
	}
	got := map[primitive.ObjectID]bool{}
	for _, c := range clubs {
		got[c.ID] = true
	}
	if !got[club.ID] || !got[memberClub.ID] {
		t.Errorf("ClubsForUser missing expected clubs: %v", clubs)
	}
}

// ensureClubIndexes creates the unique name index for tests that rely
// on duplicate detection.
func ensureClubIndexes(t *testing.T, f *testutil.Fixtures) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, f.DB()); err != nil {
		t.Fatalf("ensuring indexes: %v", err)
	}
}
