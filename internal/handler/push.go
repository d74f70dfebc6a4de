package handler

import (
	"net/http"

	"github.com/chatcore/internal/middleware"
	"github.com/chatcore/internal/storage"
)

// PushHandler обрабатывает подписку на пуш-уведомления.
type PushHandler struct {
	subs PushSubscriptions
}

func NewPushHandler(subs PushSubscriptions) *PushHandler {
	return &PushHandler{subs: subs}
}

// SubscribeRequest: тело от фронта (subscription из PushManager.getSubscription()).
type SubscribeRequest struct {
	Subscription storage.PushSubscription `json:"subscription"`
}

type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.subs.Subscribe(r.Context(), middleware.GetUserID(r.Context()), req.Subscription); err != nil {
		writeServiceError(w, "push subscribe", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req UnsubscribeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.subs.Unsubscribe(r.Context(), middleware.GetUserID(r.Context()), req.Endpoint); err != nil {
		writeServiceError(w, "push unsubscribe", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// VAPIDPublic отдаёт публичный ключ для PushManager.subscribe; 503, если пуши выключены.
func (h *PushHandler) VAPIDPublic(w http.ResponseWriter, r *http.Request) {
	key := h.subs.PublicKey()
	if key == "" {
		writeError(w, http.StatusServiceUnavailable, "push not configured")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"public_key": key})
}
