package handler

import (
	"net/http"

	"github.com/chatcore/internal/middleware"
	"github.com/chatcore/internal/model"
)

type UserHandler struct {
	convs    Conversations
	presence Presence
}

func NewUserHandler(convs Conversations, presence Presence) *UserHandler {
	return &UserHandler{convs: convs, presence: presence}
}

type ChangeStatusRequest struct {
	Status model.PresenceStatus `json:"status"`
}

// SearchUsers ищет по username и display name; текущий пользователь исключается.
func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusOK, []model.UserPublic{})
		return
	}
	users, err := h.convs.SearchUsers(r.Context(), middleware.GetUserID(r.Context()), query)
	if err != nil {
		writeServiceError(w, "search users", err)
		return
	}
	if users == nil {
		users = []model.UserPublic{}
	}
	writeJSON(w, http.StatusOK, users)
}

// ChangeStatus: явная смена статуса присутствия (online, dnd, inactive, offline).
func (h *UserHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req ChangeStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.presence.ChangeStatus(r.Context(), middleware.GetUserID(r.Context()), req.Status)
	if err != nil {
		writeServiceError(w, "change status", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
