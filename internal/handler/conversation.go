package handler

import (
	"net/http"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/middleware"
	"github.com/chatcore/internal/service"
	"github.com/go-chi/chi/v5"
)

type ConversationHandler struct {
	convs Conversations
}

func NewConversationHandler(convs Conversations) *ConversationHandler {
	return &ConversationHandler{convs: convs}
}

type CreateGroupRequest struct {
	Name           string   `json:"name"`
	ParticipantIDs []string `json:"participant_ids"`
}

type AddParticipantsRequest struct {
	UserIDs []string `json:"user_ids"`
}

// List возвращает беседы пользователя, самые свежие первыми.
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	defer logger.DeferLogDuration("handler.ListConversations", time.Now())()
	userID := middleware.GetUserID(r.Context())
	list, err := h.convs.List(r.Context(), userID, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		writeServiceError(w, "list conversations", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateDirect находит или создаёт личную беседу с пользователем по id или username.
// 201: беседа создана, 200: уже существовала.
func (h *ConversationHandler) CreateDirect(w http.ResponseWriter, r *http.Request) {
	var req service.DirectTarget
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := middleware.GetUserID(r.Context())
	other, err := h.convs.ResolveTarget(r.Context(), req)
	if err != nil {
		writeServiceError(w, "resolve direct target", err)
		return
	}
	conv, created, err := h.convs.CreateOrGetDirect(r.Context(), userID, other.ID)
	if err != nil {
		writeServiceError(w, "create direct conversation", err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, conv)
}

func (h *ConversationHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := middleware.GetUserID(r.Context())
	conv, err := h.convs.CreateGroup(r.Context(), userID, req.Name, req.ParticipantIDs)
	if err != nil {
		writeServiceError(w, "create group", err)
		return
	}
	writeJSON(w, http.StatusCreated, conv)
}

func (h *ConversationHandler) AddParticipants(w http.ResponseWriter, r *http.Request) {
	var req AddParticipantsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := middleware.GetUserID(r.Context())
	conv, err := h.convs.AddParticipants(r.Context(), chi.URLParam(r, "id"), userID, req.UserIDs)
	if err != nil {
		writeServiceError(w, "add participants", err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}
