package services

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webedt/webedt/internal/common"
	"github.com/webedt/webedt/internal/logging"
	"github.com/webedt/webedt/internal/server/auth"
	"github.com/webedt/webedt/internal/server/config"
	"github.com/webedt/webedt/internal/server/models"
	"github.com/webedt/webedt/internal/server/storage"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = testSecret
	cfg.ResetToken = "reset-token"
	return cfg
}

func newAuthService(t *testing.T) (*AuthService, *storage.Adapter) {
	t.Helper()
	store := storage.NewMemory(nil)
	return NewAuthService(store, testConfig(), nil), store
}

func seedUser(t *testing.T, store UserStore, id, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u, err := store.CreateUser(context.Background(), &models.User{ID: id, Email: email, PasswordHash: hash, Role: role})
	require.NoError(t, err)
	return u
}

func TestBootstrapDefaultAdmin_Idempotent(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	store := storage.NewMemory(nil)
	svc := NewAuthService(store, testConfig(), logging.NewJSONLogger(&buf, slog.LevelInfo))

	created, err := svc.BootstrapDefaultAdmin(ctx)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, common.DefaultAdminEmail, created.Email)
	assert.Equal(t, models.RoleAdmin, created.Role)
	require.NotNil(t, created.Name)
	assert.Equal(t, "Administrator", *created.Name)
	assert.Contains(t, buf.String(), `"password"`)

	again, err := svc.BootstrapDefaultAdmin(ctx)
	require.NoError(t, err)
	assert.Nil(t, again)

	n, err := store.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBootstrapDefaultAdmin_SkipsWhenAdminExists(t *testing.T) {
	svc, store := newAuthService(t)
	seedUser(t, store, "a", "boss@example.com", "password1", models.RoleAdmin)

	created, err := svc.BootstrapDefaultAdmin(context.Background())
	require.NoError(t, err)
	assert.Nil(t, created)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, store := newAuthService(t)
	seedUser(t, store, "u-1", "ann@example.com", "password1", models.RoleFree)

	res, err := svc.Login(ctx, "  ANN@Example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", res.User.ID)

	claims, ok := auth.VerifyToken(res.Token, []byte(testSecret))
	require.True(t, ok)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, models.RoleFree, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(auth.TokenTTL), claims.ExpiresAt.Time, time.Minute)

	_, err = svc.Login(ctx, "ann@example.com", "wrong-password1")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "", "password1")
	assert.ErrorIs(t, err, common.ErrValidation)
}

type unavailableStore struct {
	UserStore
}

func (unavailableStore) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, common.ErrStorageUnavailable
}

func TestLogin_StorageUnavailable(t *testing.T) {
	svc := NewAuthService(unavailableStore{}, testConfig(), nil)

	_, err := svc.Login(context.Background(), "ann@example.com", "password1")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestMe(t *testing.T) {
	svc, store := newAuthService(t)
	seedUser(t, store, "u-1", "ann@example.com", "password1", models.RoleFree)

	u, err := svc.Me(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)

	_, err = svc.Me(context.Background(), "gone")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, store := newAuthService(t)
	seedUser(t, store, "u-1", "ann@example.com", "password1", models.RoleFree)

	err := svc.ChangePassword(ctx, "u-1", "password1", "short")
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Password must be at least 8 characters long", verr.Message)

	err = svc.ChangePassword(ctx, "u-1", "not-it-1", "newpassword2")
	assert.ErrorIs(t, err, common.ErrIncorrectPassword)

	require.NoError(t, svc.ChangePassword(ctx, "u-1", "password1", "newpassword2"))

	_, err = svc.Login(ctx, "ann@example.com", "newpassword2")
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "ann@example.com", "password1")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, store := newAuthService(t)
	seedUser(t, store, "u-1", "ann@example.com", "password1", models.RoleFree)
	seedUser(t, store, "u-2", "bob@example.com", "password1", models.RoleFree)

	_, err := svc.UpdateProfile(ctx, "u-1", nil, nil)
	assert.ErrorIs(t, err, common.ErrNoFieldsToUpdate)

	empty := ""
	_, err = svc.UpdateProfile(ctx, "u-1", &empty, nil)
	assert.ErrorIs(t, err, common.ErrNoFieldsToUpdate)
	_, err = svc.UpdateProfile(ctx, "u-1", &empty, &empty)
	assert.ErrorIs(t, err, common.ErrNoFieldsToUpdate)

	taken := "BOB@example.com"
	_, err = svc.UpdateProfile(ctx, "u-1", nil, &taken)
	assert.ErrorIs(t, err, common.ErrEmailTaken)

	bad := "not-an-email"
	_, err = svc.UpdateProfile(ctx, "u-1", nil, &bad)
	assert.ErrorIs(t, err, common.ErrValidation)

	name, email := "Ann", "Ann.New@Example.com"
	u, err := svc.UpdateProfile(ctx, "u-1", &name, &email)
	require.NoError(t, err)
	assert.Equal(t, "ann.new@example.com", u.Email)
	require.NotNil(t, u.Name)
	assert.Equal(t, "Ann", *u.Name)

	same := "ann.new@example.com"
	_, err = svc.UpdateProfile(ctx, "u-1", nil, &same)
	assert.NoError(t, err)
}

func TestResetAdmin(t *testing.T) {
	ctx := context.Background()
	svc, store := newAuthService(t)
	old := seedUser(t, store, "old", "boss@example.com", "password1", models.RoleAdmin)

	_, _, err := svc.ResetAdmin(ctx, "wrong")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	admin, password, err := svc.ResetAdmin(ctx, "reset-token")
	require.NoError(t, err)
	assert.NotEqual(t, old.ID, admin.ID)
	assert.Equal(t, common.DefaultAdminEmail, admin.Email)

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	_, err = svc.Login(ctx, common.DefaultAdminEmail, password)
	assert.NoError(t, err)
}

func TestResetAdmin_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.ResetToken = ""
	svc := NewAuthService(storage.NewMemory(nil), cfg, nil)

	_, _, err := svc.ResetAdmin(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
