package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/webedt/webedt/internal/common"
	"github.com/webedt/webedt/internal/logging"
	"github.com/webedt/webedt/internal/server/auth"
	"github.com/webedt/webedt/internal/server/config"
	"github.com/webedt/webedt/internal/server/models"
)

const defaultAdminName = "Administrator"

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// AuthService handles login, the caller's own account, and provisioning of
// the administrator account.
type AuthService struct {
	store      UserStore
	logger     logging.Logger
	secretKey  []byte
	resetToken string
	tokenTTL   time.Duration
}

func NewAuthService(store UserStore, cfg *config.Config, logger logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	ttl := cfg.TokenValidityDuration
	if ttl <= 0 {
		ttl = auth.TokenTTL
	}
	return &AuthService{
		store:      store,
		logger:     logger,
		secretKey:  []byte(cfg.SecretKey),
		resetToken: cfg.ResetToken,
		tokenTTL:   ttl,
	}
}

// Login checks credentials and issues a token. Unknown email and wrong
// password both yield common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, common.NewValidationError("Email and password are required")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.IssueToken(user.ID, user.Email, user.Role, s.secretKey, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, User: user.Public()}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if current == "" || next == "" {
		return common.NewValidationError("Current password and new password are required")
	}
	if ok, msg := auth.ValidatePassword(next); !ok {
		return common.NewValidationError(msg)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(current, user.PasswordHash) {
		return common.ErrIncorrectPassword
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.store.UpdateUser(ctx, userID, models.UserPatch{PasswordHash: &hash})
	return err
}

// UpdateProfile changes the caller's name and/or email. A nil or empty
// argument leaves the field as is.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, name, email *string) (*models.User, error) {
	if name != nil && *name == "" {
		name = nil
	}
	if email != nil && *email == "" {
		email = nil
	}
	patch := models.UserPatch{Name: name}
	if email != nil {
		normalized, err := checkEmail(ctx, s.store, *email, userID)
		if err != nil {
			return nil, err
		}
		patch.Email = &normalized
	}
	if patch.Empty() {
		return nil, common.ErrNoFieldsToUpdate
	}
	return s.store.UpdateUser(ctx, userID, patch)
}

// BootstrapDefaultAdmin creates the default administrator when no admin
// exists. It returns the created user, or nil when an admin was already
// present.
func (s *AuthService) BootstrapDefaultAdmin(ctx context.Context) (*models.User, error) {
	n, err := s.store.CountAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return nil, nil
	}

	user, password, err := s.newAdmin()
	if err != nil {
		return nil, err
	}
	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create default admin: %w", err)
	}

	s.announceAdmin(ctx, "default admin account created", created, password)
	return created, nil
}

// ResetAdmin replaces every admin account with a fresh default admin. The
// operation is disabled when no reset token is configured.
func (s *AuthService) ResetAdmin(ctx context.Context, token string) (*models.User, string, error) {
	if s.resetToken == "" {
		return nil, "", common.ErrNotFound
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.resetToken)) != 1 {
		return nil, "", common.ErrUnauthorized
	}

	user, password, err := s.newAdmin()
	if err != nil {
		return nil, "", err
	}
	created, err := s.store.ReplaceAdmins(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("replace admins: %w", err)
	}

	s.announceAdmin(ctx, "admin account reset", created, password)
	return created, password, nil
}

func (s *AuthService) newAdmin() (*models.User, string, error) {
	password := auth.GenerateRandomPassword()
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	name := defaultAdminName
	return &models.User{
		ID:           uuid.NewString(),
		Email:        common.DefaultAdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Name:         &name,
	}, password, nil
}

// announceAdmin prints the generated credentials. This is the only place
// the plaintext password is ever shown.
func (s *AuthService) announceAdmin(ctx context.Context, msg string, user *models.User, password string) {
	banner := strings.Repeat("=", 60)
	s.logger.Warn(ctx, banner)
	s.logger.Warn(ctx, msg, "email", user.Email, "password", password)
	s.logger.Warn(ctx, "change this password after the first login")
	s.logger.Warn(ctx, banner)
}

// checkEmail validates format and uniqueness and returns the normalized
// address.
func checkEmail(ctx context.Context, store UserStore, email, exceptID string) (string, error) {
	if !auth.ValidEmail(email) {
		return "", common.NewValidationError("Invalid email format")
	}
	normalized := models.NormalizeEmail(email)
	taken, err := store.EmailTaken(ctx, normalized, exceptID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", common.ErrEmailTaken
	}
	return normalized, nil
}
