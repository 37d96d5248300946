package httpapi

import (
	"errors"
	"net/http"

	"github.com/webedt/webedt/internal/common"
	"github.com/webedt/webedt/internal/server/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type profileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleLogout only acknowledges; tokens are stateless and dropped by the
// client.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	user, err := h.auth.Me(r.Context(), id.UserID)
	if err != nil {
		h.writeServiceError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.auth.ChangePassword(r.Context(), id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		h.writeServiceError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Password changed successfully"})
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), id.UserID, req.Name, req.Email)
	if err != nil {
		h.writeServiceError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}

type resetAdminResponse struct {
	Message           string            `json:"message"`
	User              models.PublicUser `json:"user"`
	GeneratedPassword string            `json:"generatedPassword"`
}

func (h *Handler) handleResetAdmin(w http.ResponseWriter, r *http.Request) {
	user, password, err := h.auth.ResetAdmin(r.Context(), r.Header.Get(common.ResetTokenHeader))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			writeError(w, http.StatusNotFound, "Not found")
		case errors.Is(err, common.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "Invalid reset token")
		default:
			h.writeServiceError(w, r, err, "Not found")
		}
		return
	}
	writeJSON(w, http.StatusOK, resetAdminResponse{
		Message:           "Admin account reset. Save the generated password securely.",
		User:              user.Public(),
		GeneratedPassword: password,
	})
}
