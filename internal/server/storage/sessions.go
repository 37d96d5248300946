package storage

import (
	"context"

	"github.com/webedt/webedt/internal/server/models"
)

func (a *Adapter) ListSessions(ctx context.Context) ([]models.Session, error) {
	return read(ctx, a, "list sessions",
		func() ([]models.Session, error) { return a.sessions.List(ctx) },
		func() ([]models.Session, error) { return a.memSessions.List(ctx) },
	)
}

func (a *Adapter) GetSession(ctx context.Context, id string) (*models.Session, error) {
	return read(ctx, a, "get session",
		func() (*models.Session, error) { return a.sessions.Get(ctx, id) },
		func() (*models.Session, error) { return a.memSessions.Get(ctx, id) },
	)
}

func (a *Adapter) CreateSession(ctx context.Context, s *models.Session) (*models.Session, error) {
	return write(ctx, a, "create session",
		func() (*models.Session, error) { return a.sessions.Create(ctx, s) },
		func() (*models.Session, error) { return a.memSessions.Create(ctx, s) },
	)
}

func (a *Adapter) UpdateSession(ctx context.Context, id string, patch models.SessionPatch) (*models.Session, error) {
	return write(ctx, a, "update session",
		func() (*models.Session, error) { return a.sessions.Update(ctx, id, patch) },
		func() (*models.Session, error) { return a.memSessions.Update(ctx, id, patch) },
	)
}

func (a *Adapter) DeleteSession(ctx context.Context, id string) (*models.Session, error) {
	return write(ctx, a, "delete session",
		func() (*models.Session, error) { return a.sessions.Delete(ctx, id) },
		func() (*models.Session, error) { return a.memSessions.Delete(ctx, id) },
	)
}
