package model

import (
	"sort"
	"strings"
	"time"
)

type Conversation struct {
	ID             string    `json:"id"`
	IsGroup        bool      `json:"is_group"`
	GroupName      string    `json:"group_name,omitempty"`
	ParticipantIDs []string  `json:"participant_ids"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasParticipant reports whether userID is in the participant list.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the peer of userID in a direct conversation, or "" for groups.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.IsGroup {
		return ""
	}
	for _, id := range c.ParticipantIDs {
		if id != userID {
			return id
		}
	}
	return ""
}

// DirectKey is the unordered-pair key stored in conversations.direct_key.
// DirectKey(a, b) == DirectKey(b, a).
func DirectKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, ":")
}

// ConversationSummary: элемент списка бесед пользователя.
type ConversationSummary struct {
	Conversation
	Name               string         `json:"name"`
	LastMessage        *Message       `json:"last_message,omitempty"`
	LastMessagePreview string         `json:"last_message_preview"`
	LastMessageTime    *time.Time     `json:"last_message_time,omitempty"`
	UnreadCount        int            `json:"unread_count"`
	Participants       []UserPublic   `json:"participants"`
	OtherUserID        string         `json:"other_user_id,omitempty"`
	OtherUserStatus    PresenceStatus `json:"other_user_status,omitempty"`
}

const (
	previewMaxRunes   = 50
	defaultGroupName  = "Group Chat"
	noMessagesPreview = "No messages yet"
)

// SummaryName is the display name of a conversation as seen by viewer.
func SummaryName(c *Conversation, other *User) string {
	if c.IsGroup {
		if c.GroupName != "" {
			return c.GroupName
		}
		return defaultGroupName
	}
	if other != nil {
		return other.Name()
	}
	return ""
}

// Preview renders the last-message preview line of the conversation list.
func Preview(m *Message) string {
	if m == nil {
		return noMessagesPreview
	}
	if m.Content != "" {
		r := []rune(m.Content)
		if len(r) > previewMaxRunes {
			return string(r[:previewMaxRunes]) + "..."
		}
		return m.Content
	}
	switch m.Type {
	case MessageTypeImage:
		return "Photo"
	case MessageTypeVideo:
		return "Video"
	case MessageTypeVoice:
		return "Voice message"
	case MessageTypeFile:
		return "File"
	case MessageTypeText:
		return ""
	}
	return ""
}
