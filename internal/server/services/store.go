// Package services contains the backend's business logic. Services depend
// only on the store interfaces below and never look at which backend the
// storage adapter is currently using.
package services

import (
	"context"

	"github.com/webedt/webedt/internal/server/models"
)

// UserStore is the part of storage.Adapter used by AuthService and
// UserService.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	CountAdmins(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (*models.User, error)
	ReplaceAdmins(ctx context.Context, user *models.User) (*models.User, error)
}

// SessionStore is the part of storage.Adapter used by SessionService.
type SessionStore interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
	GetSession(ctx context.Context, id string) (*models.Session, error)
	CreateSession(ctx context.Context, s *models.Session) (*models.Session, error)
	UpdateSession(ctx context.Context, id string, patch models.SessionPatch) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) (*models.Session, error)
}
