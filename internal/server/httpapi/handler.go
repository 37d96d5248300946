// Package httpapi exposes the REST API: authentication, admin user
// management, work sessions and the health probe.
package httpapi

import (
	"net/http"
	"time"

	"github.com/webedt/webedt/internal/logging"
	"github.com/webedt/webedt/internal/server/models"
	"github.com/webedt/webedt/internal/server/services"
	"github.com/webedt/webedt/internal/server/storage"
)

// StorageStatus reports which backend is serving data.
type StorageStatus interface {
	Mode() storage.Mode
}

type Handler struct {
	auth        *services.AuthService
	users       *services.UserService
	sessions    *services.SessionService
	storage     StorageStatus
	secretKey   []byte
	serviceName string
	logger      logging.Logger
}

func NewHandler(
	authService *services.AuthService,
	userService *services.UserService,
	sessionService *services.SessionService,
	status StorageStatus,
	secretKey []byte,
	serviceName string,
	logger logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{
		auth:        authService,
		users:       userService,
		sessions:    sessionService,
		storage:     status,
		secretKey:   secretKey,
		serviceName: serviceName,
		logger:      logger,
	}
}

func (h *Handler) Routes() http.Handler {
	authn := Authenticate(h.secretKey)
	admin := RequireRoles(models.RoleAdmin)

	authed := func(fn http.HandlerFunc) http.Handler { return authn(fn) }
	adminOnly := func(fn http.HandlerFunc) http.Handler { return authn(admin(fn)) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleHealth)

	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", h.handleLogout)
	mux.Handle("GET /api/auth/me", authed(h.handleMe))
	mux.Handle("POST /api/auth/change-password", authed(h.handleChangePassword))
	mux.Handle("PUT /api/auth/profile", authed(h.handleUpdateProfile))

	mux.HandleFunc("POST /api/reset-admin", h.handleResetAdmin)

	mux.Handle("GET /api/users", adminOnly(h.handleListUsers))
	mux.Handle("POST /api/users", adminOnly(h.handleCreateUser))
	mux.Handle("GET /api/users/{id}", adminOnly(h.handleGetUser))
	mux.Handle("PUT /api/users/{id}", adminOnly(h.handleUpdateUser))
	mux.Handle("DELETE /api/users/{id}", adminOnly(h.handleDeleteUser))

	mux.HandleFunc("GET /api/sessions", h.handleListSessions)
	mux.HandleFunc("POST /api/sessions", h.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", h.handleGetSession)
	mux.HandleFunc("PUT /api/sessions/{id}", h.handleUpdateSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.handleDeleteSession)

	return mux
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Storage   string `json:"storage"`
	Timestamp string `json:"timestamp"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   h.serviceName,
		Storage:   h.storage.Mode().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
