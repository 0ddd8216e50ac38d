package memory

import (
	"context"

	"github.com/fixflow/maintenance-system/internal/core/domain"
)

// UserRepository holds the seeded user set. Users are immutable after boot, so
// reads need no locking.
type UserRepository struct {
	byUsername map[string]*domain.User
	byID       map[int]*domain.User
	order      []int
}

func NewUserRepository(users []*domain.User) *UserRepository {
	r := &UserRepository{
		byUsername: make(map[string]*domain.User, len(users)),
		byID:       make(map[int]*domain.User, len(users)),
	}
	for _, u := range users {
		clone := *u
		r.byUsername[clone.Username] = &clone
		r.byID[clone.ID] = &clone
		r.order = append(r.order, clone.ID)
	}
	return r
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) FindByID(_ context.Context, id int) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) ListWorkers(_ context.Context) ([]*domain.User, error) {
	var workers []*domain.User
	for _, id := range r.order {
		if u := r.byID[id]; u.Role == domain.RoleWorker {
			clone := *u
			workers = append(workers, &clone)
		}
	}
	return workers, nil
}
