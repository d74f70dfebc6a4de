package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/metrics"
	"github.com/gorilla/websocket"
)

// Client represents a single WebSocket connection.
// Lifecycle: newClient -> Start(ctx, cancel) -> [readPump, writePump] -> Close -> Wait.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	userID   string
	username string
	// presenceOnly sessions watch the presence topic and never change the user's presence.
	presenceOnly bool

	mu sync.Mutex
	// topics this client is subscribed to
	topics map[string]struct{}
	// conversations joined at least once during the session
	seen map[string]struct{}
	// first conversation of the session, the default target of chat_message
	primary string

	// done is used as a non-blocking guard in Deliver.
	done     chan struct{}
	cancel   context.CancelFunc // guarded by mu
	once     sync.Once
	slowOnce sync.Once
	wg       sync.WaitGroup
}

func newClient(hub *Hub, conn *websocket.Conn, userID, username string, presenceOnly bool) *Client {
	return &Client{
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, hub.cfg.SendBufferSize),
		userID:       userID,
		username:     username,
		presenceOnly: presenceOnly,
		topics:       make(map[string]struct{}),
		seen:         make(map[string]struct{}),
		done:         make(chan struct{}),
	}
}

// Start launches readPump and writePump goroutines with controlled lifecycle.
// It reports false, and cancels ctx, if the client was closed before it started.
func (c *Client) Start(ctx context.Context, cancel context.CancelFunc) bool {
	c.mu.Lock()
	select {
	case <-c.done:
		c.mu.Unlock()
		cancel()
		return false
	default:
	}
	c.cancel = cancel
	c.wg.Add(2)
	c.mu.Unlock()

	go c.writePump(ctx)
	go c.readPump(ctx)
	return true
}

// Wait blocks until both pump goroutines have exited.
func (c *Client) Wait() {
	c.wg.Wait()
}

// Close signals the client to stop. Safe to call multiple times from any goroutine.
func (c *Client) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		close(c.done)
		cancel := c.cancel
		c.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		// Force both pumps to unblock (ReadMessage / WriteMessage will error).
		c.conn.Close()
	})
}

// Deliver queues payload for writing. A client whose buffer is full is too slow to keep
// up with its topics and is disconnected; it reconciles through history on reconnect.
func (c *Client) Deliver(_ string, payload []byte) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- payload:
	default:
		c.slowOnce.Do(func() {
			metrics.SlowSubscribers.Inc()
			logger.Warnf("ws slow client user=%s, closing", c.userID)
			go c.Close()
		})
	}
}

func (c *Client) reply(v any) {
	c.Deliver("", encode(v))
}

func (c *Client) subscribe(topic string) {
	c.mu.Lock()
	_, dup := c.topics[topic]
	c.topics[topic] = struct{}{}
	c.mu.Unlock()
	if !dup {
		c.hub.bus.Join(topic, c)
	}
}

func (c *Client) unsubscribe(topic string) {
	c.mu.Lock()
	_, ok := c.topics[topic]
	delete(c.topics, topic)
	c.mu.Unlock()
	if ok {
		c.hub.bus.Leave(topic, c)
	}
}

func (c *Client) subscribed(topic string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.topics[topic]
	return ok
}

// leaveAll drops every subscription; called once on close.
func (c *Client) leaveAll() {
	c.mu.Lock()
	topics := make([]string, 0, len(c.topics))
	for t := range c.topics {
		topics = append(topics, t)
	}
	c.topics = make(map[string]struct{})
	c.mu.Unlock()
	for _, t := range topics {
		c.hub.bus.Leave(t, c)
	}
}

// firstVisit records conversationID as joined and reports whether it is the first time.
func (c *Client) firstVisit(conversationID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.primary == "" {
		c.primary = conversationID
	}
	if _, ok := c.seen[conversationID]; ok {
		return false
	}
	c.seen[conversationID] = struct{}{}
	return true
}

func (c *Client) primaryConversation() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.primary
}

// readPump reads messages from the WebSocket connection.
// Exits on read error (triggered by conn.Close from Close() or writePump exit).
func (c *Client) readPump(ctx context.Context) {
	defer c.wg.Done()
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.cfg.MaxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.PongTimeout)); err != nil {
		logger.Errorf("ws set read deadline user=%s: %v", c.userID, err)
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.PongTimeout))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Errorf("ws read error user=%s: %v", c.userID, err)
			}
			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Debugf("ws unmarshal error user=%s: %v", c.userID, err)
			c.reply(ErrorEnvelope{Type: EventError, Message: "malformed message"})
			continue
		}
		c.hub.handleMessage(ctx, c, msg)
	}
}

// writePump writes messages to the WebSocket connection.
// Exits on ctx cancellation, write error, or connection close.
func (c *Client) writePump(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.hub.cfg.PongTimeout * 9 / 10)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return
		case data := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout)); err != nil {
				logger.Errorf("ws set write deadline user=%s: %v", c.userID, err)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout)); err != nil {
				logger.Errorf("ws set write deadline user=%s: %v", c.userID, err)
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
