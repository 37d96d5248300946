// Package users stores User records. PostgresRepository is the relational
// implementation; MemoryRepository is the process-local fallback used when
// the database is unavailable.
package users

import (
	"context"

	"github.com/webedt/webedt/internal/server/models"
)

// Repository is the storage contract for users. Emails passed in are
// expected to be normalized already. Lookups of missing rows return
// common.ErrNotFound.
type Repository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// EmailTaken reports whether a user other than exceptID owns email.
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	CountByRole(ctx context.Context, role models.Role) (int, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) (*models.User, error)
	DeleteByRole(ctx context.Context, role models.Role) (int64, error)
}
