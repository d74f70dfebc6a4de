package ws

import (
	"encoding/json"

	"github.com/chatcore/internal/model"
)

type EventType string

const (
	// client -> server
	EventJoin         EventType = "join"
	EventLeave        EventType = "leave"
	EventStatusChange EventType = "status_change"

	// both directions
	EventChatMessage    EventType = "chat_message"
	EventTyping         EventType = "typing"
	EventMessageRead    EventType = "message_read"
	EventMessageEdited  EventType = "message_edited"
	EventMessageDeleted EventType = "message_deleted"

	// server -> client
	EventReactionAdded     EventType = "reaction_added"
	EventReactionRemoved   EventType = "reaction_removed"
	EventUserStatusChanged EventType = "user_status_changed"
	EventError             EventType = "error"
)

// IncomingMessage is what the client sends to the server.
type IncomingMessage struct {
	Type           EventType `json:"type"`
	ConversationID string    `json:"conversation_id,omitempty"`

	// chat_message
	MessageType model.MessageType `json:"message_type,omitempty"`
	Content     string            `json:"content,omitempty"`

	// message_read, message_edited, message_deleted
	MessageID string `json:"message_id,omitempty"`

	IsTyping bool                 `json:"is_typing,omitempty"`
	Status   model.PresenceStatus `json:"status,omitempty"`
}

// Outgoing envelopes are flat objects with a type discriminator.

type ChatMessageEnvelope struct {
	Type    EventType      `json:"type"`
	Message *model.Message `json:"message"`
}

type TypingEnvelope struct {
	Type           EventType `json:"type"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	IsTyping       bool      `json:"is_typing"`
}

// MessageReadEnvelope carries either one message_id or, for a whole conversation read,
// every newly read id in message_ids.
type MessageReadEnvelope struct {
	Type           EventType `json:"type"`
	ConversationID string    `json:"conversation_id"`
	MessageID      string    `json:"message_id,omitempty"`
	MessageIDs     []string  `json:"message_ids,omitempty"`
	UserID         string    `json:"user_id"`
}

type MessageEditedEnvelope struct {
	Type           EventType      `json:"type"`
	ConversationID string         `json:"conversation_id"`
	MessageID      string         `json:"message_id"`
	Message        *model.Message `json:"message"`
}

type MessageDeletedEnvelope struct {
	Type           EventType `json:"type"`
	ConversationID string    `json:"conversation_id"`
	MessageID      string    `json:"message_id"`
}

type ReactionEnvelope struct {
	Type           EventType          `json:"type"`
	ConversationID string             `json:"conversation_id"`
	MessageID      string             `json:"message_id"`
	UserID         string             `json:"user_id"`
	Username       string             `json:"username,omitempty"`
	ReactionType   model.ReactionType `json:"reaction_type,omitempty"`
}

type UserStatusEnvelope struct {
	Type     EventType            `json:"type"`
	UserID   string               `json:"user_id"`
	Username string               `json:"username"`
	Status   model.PresenceStatus `json:"status"`
}

type ErrorEnvelope struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
}

func encode(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		// all envelopes are plain structs
		panic(err)
	}
	return b
}
