package service

import (
	"context"
	"sync"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
)

type EventKind string

const (
	EventMessageCreated   EventKind = "message_created"
	EventMessageEdited    EventKind = "message_edited"
	EventMessageDeleted   EventKind = "message_deleted"
	EventMessageRead      EventKind = "message_read"
	EventConversationRead EventKind = "conversation_read"
	EventReactionAdded    EventKind = "reaction_added"
	EventReactionRemoved  EventKind = "reaction_removed"
	EventPresenceChanged  EventKind = "presence_changed"
	EventAttachmentsAdded EventKind = "attachments_added"
)

// Event describes a committed change. Only the fields relevant to Kind are set.
type Event struct {
	Kind           EventKind
	ConversationID string
	Message        *model.Message
	MessageID      string
	// MessageIDs lists messages newly read by UserID (EventConversationRead).
	MessageIDs []string
	UserID     string
	Username   string
	Reaction   *model.Reaction
	Presence   *model.Presence
	// ConversationIDs are the conversations of UserID (EventPresenceChanged).
	ConversationIDs []string
	// ParticipantIDs are the participants of ConversationID (EventMessageCreated).
	ParticipantIDs []string
}

// Hook runs after a write has been committed. It must not block for long.
type Hook func(ctx context.Context, ev Event)

type namedHook struct {
	name string
	fn   Hook
}

// Hooks is the ordered list of post-commit hooks.
type Hooks struct {
	mu    sync.RWMutex
	hooks []namedHook
	// OnPanic is called with the hook name after a recovered panic.
	OnPanic func(name string)
}

func NewHooks() *Hooks {
	return &Hooks{}
}

func (h *Hooks) Register(name string, fn Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, namedHook{name: name, fn: fn})
}

// Run calls every hook in registration order. A panicking hook is logged and skipped.
func (h *Hooks) Run(ctx context.Context, ev Event) {
	if h == nil {
		return
	}
	h.mu.RLock()
	hooks := h.hooks
	h.mu.RUnlock()
	for _, nh := range hooks {
		h.call(ctx, nh, ev)
	}
}

func (h *Hooks) call(ctx context.Context, nh namedHook, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("hook %s panic on %s: %v", nh.name, ev.Kind, r)
			if h.OnPanic != nil {
				h.OnPanic(nh.name)
			}
		}
	}()
	nh.fn(ctx, ev)
}
