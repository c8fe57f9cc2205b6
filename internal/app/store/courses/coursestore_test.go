// internal/app/store/courses/coursestore_test.go
package coursestore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	coursestore "github.com/campushub/campushub/internal/app/store/courses"
	"github.com/campushub/campushub/internal/app/system/indexes"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/campushub/campushub/internal/testutil"
)

func TestCreate_UppercasesCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := coursestore.New(db)
	created, err := store.Create(ctx, models.Course{CourseCode: "cse2001", Name: "Data Structures", Credits: 4})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.CourseCode != "CSE2001" {
		t.Errorf("course code: got %q, want %q", created.CourseCode, "CSE2001")
	}
	if created.Students == nil {
		t.Error("students slice should be initialized, not nil")
	}
}

func TestCreate_DuplicateCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := coursestore.New(db)
	if _, err := store.Create(ctx, models.Course{CourseCode: "CSE2001", Name: "Data Structures"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Codes normalize to uppercase before insert, so this collides.
	_, err := store.Create(ctx, models.Course{CourseCode: "cse2001", Name: "Other"})
	if !errors.Is(err, coursestore.ErrDuplicateCode) {
		t.Errorf("got %v, want ErrDuplicateCode", err)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	course := f.CreateCourse(ctx, "Operating Systems")
	user := f.CreateUser(ctx, "Arun")

	store := coursestore.New(db)
	for i := 0; i < 3; i++ {
		if err := store.Register(ctx, course.ID, user.ID); err != nil {
			t.Fatalf("Register attempt %d failed: %v", i+1, err)
		}
	}

	got, err := store.GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Students) != 1 {
		t.Errorf("students: got %d entries, want 1", len(got.Students))
	}

	registered, err := store.ListRegistered(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListRegistered failed: %v", err)
	}
	if len(registered) != 1 || registered[0].ID != course.ID {
		t.Errorf("ListRegistered: got %v, want the one registered course", registered)
	}
}

func TestRegister_MissingCourse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := coursestore.New(db)
	err := store.Register(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, coursestore.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	course := f.CreateCourse(ctx, "Networks")

	store := coursestore.New(db)
	if err := store.Delete(ctx, course.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, course.ID); !errors.Is(err, coursestore.ErrNotFound) {
		t.Errorf("after delete: got %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, course.ID); !errors.Is(err, coursestore.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
