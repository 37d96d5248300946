package services

import (
	"context"

	"github.com/webedt/webedt/internal/common"
	"github.com/webedt/webedt/internal/server/models"
)

// SessionService manages work sessions. Session ids are chosen by the
// client.
type SessionService struct {
	store SessionStore
}

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store}
}

func (s *SessionService) List(ctx context.Context) ([]models.Session, error) {
	return s.store.ListSessions(ctx)
}

func (s *SessionService) Get(ctx context.Context, id string) (*models.Session, error) {
	return s.store.GetSession(ctx, id)
}

// Create requires id, name, request, repo and environment; output may be
// empty.
func (s *SessionService) Create(ctx context.Context, session *models.Session) (*models.Session, error) {
	if session.ID == "" || session.Name == "" || session.Request == "" || session.Repo == "" || session.Environment == "" {
		return nil, common.NewValidationError("Missing required fields")
	}
	return s.store.CreateSession(ctx, session)
}

func (s *SessionService) Update(ctx context.Context, id string, patch models.SessionPatch) (*models.Session, error) {
	if patch.Empty() {
		return nil, common.ErrNoFieldsToUpdate
	}
	return s.store.UpdateSession(ctx, id, patch)
}

func (s *SessionService) Delete(ctx context.Context, id string) (*models.Session, error) {
	return s.store.DeleteSession(ctx, id)
}
