package sessions

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/webedt/webedt/internal/common"
	"github.com/webedt/webedt/internal/server/models"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[string]models.Session),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		list = append(list, s)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) Create(ctx context.Context, s *models.Session) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID]; ok {
		return nil, common.ErrAlreadyExists
	}

	created := *s
	now := r.now()
	created.CreatedAt, created.UpdatedAt = now, now
	r.sessions[created.ID] = created
	return &created, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch models.SessionPatch) (*models.Session, error) {
	if patch.Empty() {
		return nil, common.ErrNoFieldsToUpdate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	patch.Apply(&s, r.now())
	r.sessions[id] = s
	return &s, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	delete(r.sessions, id)
	return &s, nil
}
