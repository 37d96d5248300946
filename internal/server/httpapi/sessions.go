package httpapi

import (
	"net/http"

	"github.com/webedt/webedt/internal/server/models"
)

const sessionNotFound = "Session not found"

type sessionPatchRequest struct {
	Name        *string `json:"name"`
	Request     *string `json:"request"`
	Repo        *string `json:"repo"`
	Environment *string `json:"environment"`
	Output      *string `json:"output"`
}

type deleteSessionResponse struct {
	Message string          `json:"message"`
	Session *models.Session `json:"session"`
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	list, err := h.sessions.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.Session
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.sessions.Create(r.Context(), &models.Session{
		ID:          req.ID,
		Name:        req.Name,
		Request:     req.Request,
		Repo:        req.Repo,
		Environment: req.Environment,
		Output:      req.Output,
	})
	if err != nil {
		h.writeServiceError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.sessions.Update(r.Context(), r.PathValue("id"), models.SessionPatch{
		Name:        req.Name,
		Request:     req.Request,
		Repo:        req.Repo,
		Environment: req.Environment,
		Output:      req.Output,
	})
	if err != nil {
		h.writeServiceError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err, sessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, deleteSessionResponse{Message: "Session deleted successfully", Session: s})
}
