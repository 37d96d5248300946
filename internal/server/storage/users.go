package storage

import (
	"context"
	"database/sql"

	"github.com/webedt/webedt/internal/dbx"
	"github.com/webedt/webedt/internal/server/models"
)

func (a *Adapter) ListUsers(ctx context.Context) ([]models.User, error) {
	return read(ctx, a, "list users",
		func() ([]models.User, error) { return a.users.List(ctx) },
		func() ([]models.User, error) { return a.memUsers.List(ctx) },
	)
}

func (a *Adapter) GetUser(ctx context.Context, id string) (*models.User, error) {
	return read(ctx, a, "get user",
		func() (*models.User, error) { return a.users.GetByID(ctx, id) },
		func() (*models.User, error) { return a.memUsers.GetByID(ctx, id) },
	)
}

func (a *Adapter) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	return read(ctx, a, "get user by email",
		func() (*models.User, error) { return a.users.GetByEmail(ctx, email) },
		func() (*models.User, error) { return a.memUsers.GetByEmail(ctx, email) },
	)
}

// EmailTaken reports whether a user other than exceptID owns email. Pass
// an empty exceptID when creating.
func (a *Adapter) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	email = models.NormalizeEmail(email)
	return read(ctx, a, "check email",
		func() (bool, error) { return a.users.EmailTaken(ctx, email, exceptID) },
		func() (bool, error) { return a.memUsers.EmailTaken(ctx, email, exceptID) },
	)
}

func (a *Adapter) CountAdmins(ctx context.Context) (int, error) {
	return read(ctx, a, "count admins",
		func() (int, error) { return a.users.CountByRole(ctx, models.RoleAdmin) },
		func() (int, error) { return a.memUsers.CountByRole(ctx, models.RoleAdmin) },
	)
}

func (a *Adapter) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	u := *user
	u.Email = models.NormalizeEmail(u.Email)
	return write(ctx, a, "create user",
		func() (*models.User, error) { return a.users.Create(ctx, &u) },
		func() (*models.User, error) { return a.memUsers.Create(ctx, &u) },
	)
}

func (a *Adapter) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	return write(ctx, a, "update user",
		func() (*models.User, error) { return a.users.Update(ctx, id, patch) },
		func() (*models.User, error) { return a.memUsers.Update(ctx, id, patch) },
	)
}

func (a *Adapter) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	return write(ctx, a, "delete user",
		func() (*models.User, error) { return a.users.Delete(ctx, id) },
		func() (*models.User, error) { return a.memUsers.Delete(ctx, id) },
	)
}

func (a *Adapter) DeleteAdmins(ctx context.Context) (int64, error) {
	return write(ctx, a, "delete admins",
		func() (int64, error) { return a.users.DeleteByRole(ctx, models.RoleAdmin) },
		func() (int64, error) { return a.memUsers.DeleteByRole(ctx, models.RoleAdmin) },
	)
}

// ReplaceAdmins deletes every admin and inserts user in their place. On
// PostgreSQL both statements share one transaction.
func (a *Adapter) ReplaceAdmins(ctx context.Context, user *models.User) (*models.User, error) {
	u := *user
	u.Email = models.NormalizeEmail(u.Email)

	rel := func() (*models.User, error) {
		var created *models.User
		err := dbx.WithTx(ctx, a.db, &sql.TxOptions{}, func(ctx context.Context, tx dbx.DBTX) error {
			repo := a.manager.Users(tx)
			if _, err := repo.DeleteByRole(ctx, models.RoleAdmin); err != nil {
				return err
			}
			var err error
			created, err = repo.Create(ctx, &u)
			return err
		})
		return created, err
	}
	mem := func() (*models.User, error) {
		if _, err := a.memUsers.DeleteByRole(ctx, models.RoleAdmin); err != nil {
			return nil, err
		}
		return a.memUsers.Create(ctx, &u)
	}
	return write(ctx, a, "replace admins", rel, mem)
}
