package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/metrics"
	"github.com/chatcore/internal/middleware"
	"github.com/chatcore/internal/model"
	"github.com/chatcore/internal/pubsub"
	"github.com/chatcore/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const opTimeout = 5 * time.Second

// Config holds connection limits and timeouts of the gateway.
type Config struct {
	MaxConns       int
	SendBufferSize int
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	MaxMessageSize int64
	AllowedOrigins []string
}

func (c *Config) withDefaults() {
	if c.MaxConns <= 0 {
		c.MaxConns = 10000
	}
	if c.SendBufferSize <= 0 {
		c.SendBufferSize = 256
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.PongTimeout <= 0 {
		c.PongTimeout = 60 * time.Second
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = 64 << 10
	}
}

// Hub owns live sessions: it upgrades connections, dispatches inbound envelopes to the
// services and publishes committed events to topics.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	closed  bool

	cfg      Config
	upgrader websocket.Upgrader
	bus      Bus
	msgs     Messenger
	receipts Receipts
	presence Presence
	convs    Conversations
	users    Users
	done     chan struct{}
}

func NewHub(cfg Config, bus Bus, msgs Messenger, receipts Receipts, presence Presence, convs Conversations, users Users) *Hub {
	cfg.withDefaults()
	h := &Hub{
		clients:  make(map[*Client]struct{}),
		cfg:      cfg,
		bus:      bus,
		msgs:     msgs,
		receipts: receipts,
		presence: presence,
		convs:    convs,
		users:    users,
		done:     make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range h.cfg.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// Run blocks until ctx is done, then closes every session.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	<-ctx.Done()
	h.shutdown()
}

// Done is closed once Run has shut every session down.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) shutdown() {
	// Collect all clients under the lock, do NOT perform I/O under mutex.
	h.mu.Lock()
	h.closed = true
	all := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		all = append(all, c)
	}
	h.mu.Unlock()

	for _, c := range all {
		c.Close()
	}
	for _, c := range all {
		c.Wait()
	}
}

func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || len(h.clients) >= h.cfg.MaxConns {
		return false
	}
	h.clients[c] = struct{}{}
	metrics.WSSessions.Inc()
	return true
}

// unregister moves the client to Closed: it leaves every topic and, for counted sessions,
// runs the presence disconnect.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	metrics.WSSessions.Dec()
	h.mu.Unlock()

	c.leaveAll()
	c.Close()
	if !c.presenceOnly {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		h.presence.Disconnect(ctx, c.userID)
	}
}

// Sessions returns the number of open sessions.
func (h *Hub) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeConversation handles GET /ws/conversations/{id}: a session joined to one
// conversation that may join more with join envelopes.
func (h *Hub) ServeConversation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	conversationID := chi.URLParam(r, "id")
	if _, err := h.convs.RequireParticipant(r.Context(), conversationID, userID); err != nil {
		writeHTTPError(w, err)
		return
	}
	c := h.accept(w, r, userID, false)
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), opTimeout)
	defer cancel()
	h.presence.Connect(ctx, userID)
	h.join(ctx, c, conversationID)
	h.start(c)
}

// ServePresence handles GET /ws/presence: a session that only watches presence.
func (h *Hub) ServePresence(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	c := h.accept(w, r, userID, true)
	if c == nil {
		return
	}
	c.subscribe(pubsub.PresenceTopic)
	h.start(c)
}

func (h *Hub) accept(w http.ResponseWriter, r *http.Request, userID string, presenceOnly bool) *Client {
	var username string
	if u, err := h.users.GetByID(r.Context(), userID); err == nil {
		username = u.Name()
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("ws upgrade user=%s: %v", userID, err)
		return nil
	}
	c := newClient(h, conn, userID, username, presenceOnly)
	if !h.register(c) {
		logger.Errorf("ws connection limit reached (%d), rejecting user=%s", h.cfg.MaxConns, userID)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too many connections"), time.Now().Add(time.Second))
		conn.Close()
		return nil
	}
	return c
}

// start runs the pumps once the session is set up, so inbound envelopes only ever see a joined session.
// A client closed during setup (hub shutdown, slow delivery) goes straight to Closed.
func (h *Hub) start(c *Client) {
	ctx, cancel := context.WithCancel(context.Background())
	if !c.Start(ctx, cancel) {
		h.unregister(c)
	}
}

func writeHTTPError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, `{"error":"conversation not found"}`, http.StatusNotFound)
	case errors.Is(err, service.ErrPermissionDenied):
		http.Error(w, `{"error":"you are not a participant of this conversation"}`, http.StatusForbidden)
	default:
		logger.Errorf("ws: %v", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
	}
}

// handleMessage dispatches incoming WebSocket messages.
func (h *Hub) handleMessage(ctx context.Context, c *Client, msg IncomingMessage) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if c.presenceOnly && msg.Type != EventStatusChange {
		c.reply(ErrorEnvelope{Type: EventError, Message: "presence sessions only accept status_change"})
		return
	}
	switch msg.Type {
	case EventJoin:
		h.handleJoin(ctx, c, msg)
	case EventLeave:
		h.handleLeave(c, msg)
	case EventChatMessage:
		h.handleChatMessage(ctx, c, msg)
	case EventTyping:
		h.handleTyping(ctx, c, msg)
	case EventMessageRead:
		h.handleMessageRead(ctx, c, msg)
	case EventMessageEdited:
		h.handleEdit(ctx, c, msg)
	case EventMessageDeleted:
		h.handleDelete(ctx, c, msg)
	case EventStatusChange:
		h.handleStatusChange(ctx, c, msg)
	default:
		c.reply(ErrorEnvelope{Type: EventError, Message: "unknown event type"})
	}
}

// join subscribes c to the conversation and marks it read on the first join of the session.
func (h *Hub) join(ctx context.Context, c *Client, conversationID string) {
	c.subscribe(pubsub.ConversationTopic(conversationID))
	if !c.firstVisit(conversationID) {
		return
	}
	if _, err := h.receipts.MarkConversationRead(ctx, conversationID, c.userID); err != nil {
		logger.Errorf("ws mark read on join conv=%s user=%s: %v", conversationID, c.userID, err)
	}
}

func (h *Hub) handleJoin(ctx context.Context, c *Client, msg IncomingMessage) {
	defer logger.DeferLogDuration("ws.handleJoin", time.Now())()
	if msg.ConversationID == "" {
		c.reply(ErrorEnvelope{Type: EventError, Message: "conversation_id required"})
		return
	}
	if _, err := h.convs.RequireParticipant(ctx, msg.ConversationID, c.userID); err != nil {
		h.replyError(c, err)
		return
	}
	h.join(ctx, c, msg.ConversationID)
}

func (h *Hub) handleLeave(c *Client, msg IncomingMessage) {
	if msg.ConversationID == "" {
		c.reply(ErrorEnvelope{Type: EventError, Message: "conversation_id required"})
		return
	}
	c.unsubscribe(pubsub.ConversationTopic(msg.ConversationID))
}

func (h *Hub) handleChatMessage(ctx context.Context, c *Client, msg IncomingMessage) {
	defer logger.DeferLogDuration("ws.handleChatMessage", time.Now())()
	conversationID := msg.ConversationID
	if conversationID == "" {
		conversationID = c.primaryConversation()
	}
	if msg.MessageType != "" && msg.MessageType != model.MessageTypeText {
		c.reply(ErrorEnvelope{Type: EventError, Message: "only text messages can be sent over the socket"})
		return
	}
	// the echo arrives through the conversation topic once the message is stored
	_, err := h.msgs.Append(ctx, service.AppendRequest{
		ConversationID: conversationID,
		SenderID:       c.userID,
		Type:           model.MessageTypeText,
		Content:        msg.Content,
	})
	if err != nil {
		h.replyError(c, err)
	}
}

// handleTyping republishes the indicator to the conversation; nothing is stored.
func (h *Hub) handleTyping(ctx context.Context, c *Client, msg IncomingMessage) {
	conversationID := msg.ConversationID
	if conversationID == "" {
		conversationID = c.primaryConversation()
	}
	topic := pubsub.ConversationTopic(conversationID)
	if conversationID == "" || !c.subscribed(topic) {
		c.reply(ErrorEnvelope{Type: EventError, Message: "join the conversation first"})
		return
	}
	h.publish(ctx, topic, EventTyping, TypingEnvelope{
		Type:           EventTyping,
		ConversationID: conversationID,
		UserID:         c.userID,
		Username:       c.username,
		IsTyping:       msg.IsTyping,
	})
}

func (h *Hub) handleMessageRead(ctx context.Context, c *Client, msg IncomingMessage) {
	defer logger.DeferLogDuration("ws.handleMessageRead", time.Now())()
	var err error
	switch {
	case msg.MessageID != "":
		_, err = h.receipts.MarkRead(ctx, msg.MessageID, c.userID)
	case msg.ConversationID != "":
		_, err = h.receipts.MarkConversationRead(ctx, msg.ConversationID, c.userID)
	default:
		c.reply(ErrorEnvelope{Type: EventError, Message: "message_id or conversation_id required"})
		return
	}
	if err != nil {
		h.replyError(c, err)
	}
}

func (h *Hub) handleEdit(ctx context.Context, c *Client, msg IncomingMessage) {
	defer logger.DeferLogDuration("ws.handleEdit", time.Now())()
	if msg.MessageID == "" {
		c.reply(ErrorEnvelope{Type: EventError, Message: "message_id required"})
		return
	}
	if _, err := h.msgs.Edit(ctx, msg.MessageID, c.userID, msg.Content); err != nil {
		h.replyError(c, err)
	}
}

func (h *Hub) handleDelete(ctx context.Context, c *Client, msg IncomingMessage) {
	defer logger.DeferLogDuration("ws.handleDelete", time.Now())()
	if msg.MessageID == "" {
		c.reply(ErrorEnvelope{Type: EventError, Message: "message_id required"})
		return
	}
	if err := h.msgs.Delete(ctx, msg.MessageID, c.userID); err != nil {
		h.replyError(c, err)
	}
}

func (h *Hub) handleStatusChange(ctx context.Context, c *Client, msg IncomingMessage) {
	if _, err := h.presence.ChangeStatus(ctx, c.userID, msg.Status); err != nil {
		h.replyError(c, err)
	}
}

// replyError turns a service error into an error envelope; the session stays open.
func (h *Hub) replyError(c *Client, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		c.reply(ErrorEnvelope{Type: EventError, Message: se.Msg})
		return
	}
	logger.Errorf("ws user=%s: %v", c.userID, err)
	c.reply(ErrorEnvelope{Type: EventError, Message: "internal error"})
}

func (h *Hub) publish(ctx context.Context, topic string, typ EventType, v any) {
	if err := h.bus.Publish(context.WithoutCancel(ctx), topic, encode(v)); err != nil {
		logger.Errorf("ws publish %s to %s: %v", typ, topic, err)
		return
	}
	metrics.EventsPublished.WithLabelValues(string(typ)).Inc()
}
