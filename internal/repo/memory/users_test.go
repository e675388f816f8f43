package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/udeepa-des/StudyCountDown-backend/internal/domain/user"
)

func seedUser(t *testing.T, r *UsersRepo, id, email string) user.User {
	t.Helper()

	u := user.User{
		ID:           id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefak",
		StudyPlans:   []user.StudyPlan{},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := r.Insert(context.Background(), u); err != nil {
		t.Fatalf("insert: %v", err)
	}

	return u
}

func TestInsertRejectsDuplicateEmail(t *testing.T) {
	r := NewUsersRepo()
	seedUser(t, r, "u1", "dup@example.com")

	err := r.Insert(context.Background(), user.User{ID: "u2", Email: "dup@example.com"})

	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestFindByIDMissing(t *testing.T) {
	r := NewUsersRepo()

	_, err := r.FindByID(context.Background(), "nope")

	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSaveReplacesDocument(t *testing.T) {
	r := NewUsersRepo()
	u := seedUser(t, r, "u1", "plan@example.com")

	u.StudyPlans = append(u.StudyPlans, user.StudyPlan{Subject: "algebra", Hours: 2})

	if err := r.Save(context.Background(), &u); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := r.FindByID(context.Background(), "u1")

	if err != nil {
		t.Fatalf("find: %v", err)
	}

	if len(got.StudyPlans) != 1 || got.StudyPlans[0].Subject != "algebra" {
		t.Fatalf("saved plans not visible: %+v", got.StudyPlans)
	}
}

func TestSaveMissingUser(t *testing.T) {
	r := NewUsersRepo()
	u := user.User{ID: "ghost", Email: "ghost@example.com"}

	if err := r.Save(context.Background(), &u); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestStoredCopyIsIsolated(t *testing.T) {
	r := NewUsersRepo()
	seedUser(t, r, "u1", "iso@example.com")

	got, err := r.FindByID(context.Background(), "u1")

	if err != nil {
		t.Fatalf("find: %v", err)
	}

	got.StudyPlans = append(got.StudyPlans, user.StudyPlan{Subject: "mutation"})

	again, err := r.FindByID(context.Background(), "u1")

	if err != nil {
		t.Fatalf("find: %v", err)
	}

	if len(again.StudyPlans) != 0 {
		t.Fatalf("mutating a returned copy leaked into the store")
	}
}
