package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/webedt/webedt/internal/common"
	"github.com/webedt/webedt/internal/server/auth"
	"github.com/webedt/webedt/internal/server/models"
)

// CreateUserInput is the admin request to create an account. An empty
// Password asks the server to generate one.
type CreateUserInput struct {
	Email    string
	Password string
	Role     string
	Name     *string
}

// CreatedUser carries the new account and, when it was generated, the
// plaintext password. The password is not stored anywhere else.
type CreatedUser struct {
	User              *models.User
	GeneratedPassword string
}

// UpdateUserInput holds the fields an admin may change; nil leaves a field
// unchanged.
type UpdateUserInput struct {
	Email    *string
	Role     *string
	Name     *string
	Password *string
}

// UserService implements admin user management.
type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*CreatedUser, error) {
	if in.Email == "" || in.Role == "" {
		return nil, common.NewValidationError("Email and role are required")
	}
	if !auth.ValidEmail(in.Email) {
		return nil, common.NewValidationError("Invalid email format")
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, common.ErrInvalidRole
	}
	email, err := checkEmail(ctx, s.store, in.Email, "")
	if err != nil {
		return nil, err
	}

	password, generated := in.Password, ""
	if password == "" {
		password = auth.GenerateRandomPassword()
		generated = password
	} else if ok, msg := auth.ValidatePassword(password); !ok {
		return nil, common.NewValidationError(msg)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var name *string
	if in.Name != nil && *in.Name != "" {
		name = in.Name
	}

	user, err := s.store.CreateUser(ctx, &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         name,
	})
	if err != nil {
		return nil, err
	}
	return &CreatedUser{User: user, GeneratedPassword: generated}, nil
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	if _, err := s.store.GetUser(ctx, id); err != nil {
		return nil, err
	}

	var patch models.UserPatch
	if in.Email != nil {
		email, err := checkEmail(ctx, s.store, *in.Email, id)
		if err != nil {
			return nil, err
		}
		patch.Email = &email
	}
	if in.Role != nil {
		role, ok := models.ParseRole(*in.Role)
		if !ok {
			return nil, common.ErrInvalidRole
		}
		patch.Role = &role
	}
	patch.Name = in.Name
	if in.Password != nil {
		if ok, msg := auth.ValidatePassword(*in.Password); !ok {
			return nil, common.NewValidationError(msg)
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	return s.store.UpdateUser(ctx, id, patch)
}

// Delete removes the account id on behalf of actorID. Admins cannot delete
// themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id string) (*models.User, error) {
	if actorID == id {
		return nil, common.ErrSelfDeletion
	}
	return s.store.DeleteUser(ctx, id)
}
