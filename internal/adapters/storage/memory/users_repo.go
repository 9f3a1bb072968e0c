package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"clinic-appointments/internal/domain/users"
)

type usersRepo struct {
	mu    sync.RWMutex
	byUID map[string]users.User
}

func NewUsersRepo() users.Repository {
	return &usersRepo{
		byUID: make(map[string]users.User),
	}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.UID) == "" {
		return errors.New("user uid required")
	}
	if _, exists := r.byUID[u.UID]; exists {
		return errors.New("user already exists")
	}
	r.byUID[u.UID] = u
	return nil
}

func (r *usersRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.UID) == "" {
		return errors.New("user uid required")
	}
	if _, exists := r.byUID[u.UID]; !exists {
		return users.ErrNotFound
	}
	r.byUID[u.UID] = u
	return nil
}

func (r *usersRepo) GetByUID(ctx context.Context, uid string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byUID[uid]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) List(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, len(r.byUID))
	for _, u := range r.byUID {
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
