package httpapi

import (
	"net/http"

	"github.com/webedt/webedt/internal/server/models"
	"github.com/webedt/webedt/internal/server/services"
)

const userNotFound = "User not found"

type createUserRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Name     *string `json:"name"`
}

type createUserResponse struct {
	User              models.PublicUser `json:"user"`
	GeneratedPassword string            `json:"generatedPassword,omitempty"`
	Message           string            `json:"message,omitempty"`
}

type updateUserRequest struct {
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type deleteUserResponse struct {
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
}

func publicUsers(list []models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(list))
	for i := range list {
		out = append(out, list[i].Public())
	}
	return out
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, http.StatusOK, publicUsers(list))
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.users.Create(r.Context(), services.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
	})
	if err != nil {
		h.writeServiceError(w, r, err, userNotFound)
		return
	}

	resp := createUserResponse{User: created.User.Public()}
	if created.GeneratedPassword != "" {
		resp.GeneratedPassword = created.GeneratedPassword
		resp.Message = "User created successfully. Save the generated password securely."
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.Update(r.Context(), r.PathValue("id"), services.UpdateUserInput{
		Email:    req.Email,
		Role:     req.Role,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.writeServiceError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	user, err := h.users.Delete(r.Context(), id.UserID, r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err, userNotFound)
		return
	}
	writeJSON(w, http.StatusOK, deleteUserResponse{Message: "User deleted successfully", User: user.Public()})
}
