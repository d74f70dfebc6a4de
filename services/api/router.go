package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/chatcore/internal/attachment"
	"github.com/chatcore/internal/config"
	"github.com/chatcore/internal/handler"
	"github.com/chatcore/internal/metrics"
	"github.com/chatcore/internal/middleware"
	"github.com/chatcore/internal/push"
	"github.com/chatcore/internal/service"
	"github.com/chatcore/internal/ws"
)

type routes struct {
	registry  *service.ConversationRegistry
	msgLog    *service.MessageLog
	pipeline  *service.AttachmentPipeline
	receipts  *service.ReadReceiptTracker
	reactions *service.ReactionAggregator
	presence  *service.PresenceBroadcaster
	blobs     *attachment.Store
	notifier  *push.Notifier
	hub       *ws.Hub
}

func newRouter(cfg *config.Config, rt routes) http.Handler {
	convH := handler.NewConversationHandler(rt.registry)
	msgH := handler.NewMessageHandler(rt.msgLog, rt.pipeline, rt.receipts, rt.reactions, maxUploadBody(cfg))
	userH := handler.NewUserHandler(rt.registry, rt.presence)
	fileH := handler.NewFileHandler(rt.blobs)
	pushH := handler.NewPushHandler(rt.notifier)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RecoverJSON)
	// Не сжимать WebSocket, иначе ResponseWriter не реализует http.Hijacker и upgrade даёт 500.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if strings.EqualFold(req.Header.Get("Upgrade"), "websocket") {
				next.ServeHTTP(w, req)
				return
			}
			chimw.Compress(5)(next).ServeHTTP(w, req)
		})
	})
	r.Use(middleware.RequestLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(cfg.CORSAllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimitAPI(cfg.RateLimitRPS, cfg.RateLimitBurst))

		r.Get("/api/conversations", convH.List)
		r.Post("/api/conversations/direct", convH.CreateDirect)
		r.Post("/api/conversations/group", convH.CreateGroup)
		r.Post("/api/conversations/{id}/participants", convH.AddParticipants)
		r.Get("/api/conversations/{id}/messages", msgH.Page)
		r.Post("/api/conversations/{id}/messages", msgH.Send)
		r.Post("/api/conversations/{id}/read", msgH.MarkConversationRead)
		r.Get("/api/conversations/{id}/unread", msgH.Unread)

		r.Patch("/api/messages/{id}", msgH.Edit)
		r.Delete("/api/messages/{id}", msgH.Delete)
		r.Post("/api/messages/{id}/read", msgH.MarkRead)
		r.Post("/api/messages/{id}/reactions", msgH.React)
		r.Delete("/api/messages/{id}/reactions", msgH.Unreact)
		r.Post("/api/messages/{id}/attachments", msgH.Attach)

		r.Get("/api/users/search", userH.SearchUsers)
		r.Post("/api/presence/status", userH.ChangeStatus)
		r.Get("/api/files/{filename}", fileH.Serve)

		r.Post("/api/push/subscribe", pushH.Subscribe)
		r.Delete("/api/push/subscribe", pushH.Unsubscribe)
		r.Get("/api/push/vapid-public", pushH.VAPIDPublic)

		r.Get("/ws/conversations/{id}", rt.hub.ServeConversation)
		r.Get("/ws/presence", rt.hub.ServePresence)
	})
	return r
}

// maxUploadBody считает потолок тела multipart-запроса как самый крупный лимит вложения на каждый файл формы.
func maxUploadBody(cfg *config.Config) int64 {
	l := cfg.AttachmentLimits
	largest := max(l.Image, l.Video, l.Voice, l.File)
	return largest * int64(cfg.MaxAttachmentsPerMessage+1)
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
