// Package sessions stores work sessions, with the same relational and
// in-memory implementations as the users package.
package sessions

import (
	"context"

	"github.com/webedt/webedt/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Session, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	Create(ctx context.Context, s *models.Session) (*models.Session, error)
	Update(ctx context.Context, id string, patch models.SessionPatch) (*models.Session, error)
	Delete(ctx context.Context, id string) (*models.Session, error)
}
