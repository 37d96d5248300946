package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/webedt/webedt/internal/common"
	"github.com/webedt/webedt/internal/server/models"
)

// MemoryRepository keeps users in a map keyed by id. Email uniqueness is a
// caller-side pre-check, as with the relational store.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[string]models.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func clone(u models.User) *models.User {
	if u.Name != nil {
		name := *u.Name
		u.Name = &name
	}
	return &u
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, *clone(u))
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryRepository) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email && u.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) CountByRole(ctx context.Context, role models.Role) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := *clone(*user)
	u.Email = models.NormalizeEmail(u.Email)
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = u
	return clone(u), nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if patch.Empty() {
		return nil, common.ErrNoFieldsToUpdate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	patch.Apply(&u, r.now())
	r.users[id] = u
	return clone(u), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	delete(r.users, id)
	return clone(u), nil
}

func (r *MemoryRepository) DeleteByRole(ctx context.Context, role models.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, u := range r.users {
		if u.Role == role {
			delete(r.users, id)
			n++
		}
	}
	return n, nil
}
