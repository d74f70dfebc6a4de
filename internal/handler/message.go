package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/middleware"
	"github.com/chatcore/internal/model"
	"github.com/chatcore/internal/service"
	"github.com/go-chi/chi/v5"
)

type MessageHandler struct {
	msgs        Messages
	attachments Attachments
	receipts    Receipts
	reactions   Reactions
	// maxBody: потолок тела multipart-запроса целиком.
	maxBody int64
}

func NewMessageHandler(msgs Messages, attachments Attachments, receipts Receipts, reactions Reactions, maxBody int64) *MessageHandler {
	return &MessageHandler{msgs: msgs, attachments: attachments, receipts: receipts, reactions: reactions, maxBody: maxBody}
}

type SendMessageRequest struct {
	MessageType model.MessageType `json:"message_type"`
	Content     string            `json:"content"`
}

type EditMessageRequest struct {
	Content string `json:"content"`
}

type ReactRequest struct {
	ReactionType model.ReactionType `json:"reaction_type"`
}

// Page отдаёт страницу истории: {count, results}, новые первыми.
func (h *MessageHandler) Page(w http.ResponseWriter, r *http.Request) {
	defer logger.DeferLogDuration("handler.Page", time.Now())()
	userID := middleware.GetUserID(r.Context())
	page, err := h.msgs.Page(r.Context(), chi.URLParam(r, "id"), userID, queryInt(r, "offset", 0), queryInt(r, "limit", 0))
	if err != nil {
		writeServiceError(w, "history page", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Send принимает JSON для текстовых сообщений или multipart-форму с файлами.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	defer logger.DeferLogDuration("handler.Send", time.Now())()
	conversationID := chi.URLParam(r, "id")
	userID := middleware.GetUserID(r.Context())

	if !isMultipart(r) {
		var req SendMessageRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.MessageType == "" {
			req.MessageType = model.MessageTypeText
		}
		m, err := h.msgs.Append(r.Context(), service.AppendRequest{
			ConversationID: conversationID,
			SenderID:       userID,
			Type:           req.MessageType,
			Content:        req.Content,
		})
		if err != nil {
			writeServiceError(w, "append message", err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
		return
	}

	form, err := parseUploadForm(w, r, h.maxBody)
	if err != nil {
		writeFormError(w, err)
		return
	}
	defer form.Close()

	typ := model.MessageType(form.value("message_type"))
	if typ == "" {
		typ = model.MessageTypeText
	}
	m, err := h.attachments.Send(r.Context(), service.SendRequest{
		ConversationID:  conversationID,
		SenderID:        userID,
		Type:            typ,
		Content:         form.value("content"),
		Primary:         form.Primary,
		VoiceDuration:   form.voiceDuration(),
		Attachments:     form.Attachments,
		AttachmentTypes: form.AttachmentTypes,
	})
	if err != nil {
		writeServiceError(w, "send message with files", err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// Attach добавляет вложения к уже отправленному сообщению автора.
func (h *MessageHandler) Attach(w http.ResponseWriter, r *http.Request) {
	defer logger.DeferLogDuration("handler.Attach", time.Now())()
	if !isMultipart(r) {
		writeError(w, http.StatusBadRequest, "multipart form expected")
		return
	}
	form, err := parseUploadForm(w, r, h.maxBody)
	if err != nil {
		writeFormError(w, err)
		return
	}
	defer form.Close()

	userID := middleware.GetUserID(r.Context())
	m, err := h.attachments.Attach(r.Context(), chi.URLParam(r, "id"), userID, form.Attachments, form.AttachmentTypes)
	if err != nil {
		writeServiceError(w, "attach files", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MessageHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req EditMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := middleware.GetUserID(r.Context())
	m, err := h.msgs.Edit(r.Context(), chi.URLParam(r, "id"), userID, req.Content)
	if err != nil {
		writeServiceError(w, "edit message", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := h.msgs.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeServiceError(w, "delete message", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkRead отмечает одно сообщение прочитанным; marked=false, если оно уже было прочитано.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	marked, err := h.receipts.MarkRead(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeServiceError(w, "mark read", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"marked": marked})
}

// MarkConversationRead возвращает id сообщений, прочитанных этим вызовом.
func (h *MessageHandler) MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ids, err := h.receipts.MarkConversationRead(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeServiceError(w, "mark conversation read", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"message_ids": ids})
}

func (h *MessageHandler) Unread(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	n, err := h.receipts.UnreadCount(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeServiceError(w, "unread count", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (h *MessageHandler) React(w http.ResponseWriter, r *http.Request) {
	var req ReactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := middleware.GetUserID(r.Context())
	reaction, err := h.reactions.React(r.Context(), chi.URLParam(r, "id"), userID, req.ReactionType)
	if err != nil {
		writeServiceError(w, "react", err)
		return
	}
	writeJSON(w, http.StatusOK, reaction)
}

func (h *MessageHandler) Unreact(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := h.reactions.Unreact(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeServiceError(w, "unreact", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeFormError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "invalid multipart form")
}
