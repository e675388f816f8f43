package memory

import (
	"context"
	"sync"
	"time"

	"github.com/udeepa-des/StudyCountDown-backend/internal/domain/user"
)

// UsersRepo mirrors the postgres store contract for hermetic tests.
type UsersRepo struct {
	mu      sync.RWMutex
	byID    map[string]user.User
	byEmail map[string]string // email -> id
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		byID:    make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return cloneUser(r.byID[id]), nil
}

func (r *UsersRepo) FindByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return cloneUser(u), nil
}

func (r *UsersRepo) Insert(ctx context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return user.ErrEmailTaken
	}

	r.byID[u.ID] = cloneUser(u)
	r.byEmail[u.Email] = u.ID

	return nil
}

// Save replaces the stored document wholesale, matching the last-writer-wins
// behaviour of the SQL store.
func (r *UsersRepo) Save(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[u.ID]

	if !ok {
		return user.ErrNotFound
	}

	if prev.Email != u.Email {
		if _, taken := r.byEmail[u.Email]; taken {
			return user.ErrEmailTaken
		}
		delete(r.byEmail, prev.Email)
		r.byEmail[u.Email] = u.ID
	}

	u.UpdatedAt = time.Now()
	r.byID[u.ID] = cloneUser(*u)

	return nil
}

func cloneUser(u user.User) user.User {
	c := u
	// keep empty lists non-nil so they serialize as [] rather than null
	c.StudyPlans = make([]user.StudyPlan, len(u.StudyPlans))
	copy(c.StudyPlans, u.StudyPlans)

	if u.TargetDate != nil {
		d := *u.TargetDate
		c.TargetDate = &d
	}

	return c
}
