package model

import "time"

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeVideo MessageType = "video"
	MessageTypeVoice MessageType = "voice"
	MessageTypeFile  MessageType = "file"
)

// Valid reports whether t is one of the known message types.
func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeVideo, MessageTypeVoice, MessageTypeFile:
		return true
	}
	return false
}

// Editable reports whether messages of this type may be edited after sending.
func (t MessageType) Editable() bool {
	switch t {
	case MessageTypeText:
		return true
	case MessageTypeImage, MessageTypeVideo, MessageTypeVoice, MessageTypeFile:
		return false
	}
	return false
}

// RequiresMedia reports whether a message of this type must carry a primary media payload.
func (t MessageType) RequiresMedia() bool {
	switch t {
	case MessageTypeText:
		return false
	case MessageTypeImage, MessageTypeVideo, MessageTypeVoice, MessageTypeFile:
		return true
	}
	return false
}

// MediaKind maps the message type to the validation kind of its primary payload.
func (t MessageType) MediaKind() (MediaKind, bool) {
	switch t {
	case MessageTypeImage:
		return MediaKindImage, true
	case MessageTypeVideo:
		return MediaKindVideo, true
	case MessageTypeVoice:
		return MediaKindVoice, true
	case MessageTypeFile:
		return MediaKindFile, true
	case MessageTypeText:
		return "", false
	}
	return "", false
}

// MediaKind is the content class a payload is validated against.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
	MediaKindVoice MediaKind = "voice"
	MediaKindFile  MediaKind = "file"
)

// Media is the primary payload of a non-text message.
type Media struct {
	URL           string  `json:"url"`
	Name          string  `json:"name"`
	Size          int64   `json:"size"`
	MimeType      string  `json:"mime_type"`
	ThumbnailURL  string  `json:"thumbnail_url,omitempty"`
	VoiceDuration float64 `json:"voice_duration,omitempty"`
}

type Message struct {
	ID             string       `json:"id"`
	ConversationID string       `json:"conversation_id"`
	SenderID       string       `json:"sender_id"`
	Sender         *UserPublic  `json:"sender,omitempty"`
	Type           MessageType  `json:"message_type"`
	Content        string       `json:"content"`
	Media          *Media       `json:"media,omitempty"`
	Attachments    []Attachment `json:"attachments"`
	CreatedAt      time.Time    `json:"created_at"`
	IsEdited       bool         `json:"is_edited"`
	EditedAt       *time.Time   `json:"edited_at,omitempty"`
	ReadAt         *time.Time   `json:"read_at,omitempty"`
	ReadBy         []string     `json:"read_by"`
	IsRead         bool         `json:"is_read"`
	ReadCount      int          `json:"read_count"`
	Reactions      []Reaction   `json:"reactions"`
}

// HistoryPage is one page of conversation history, newest first.
// Count is the total number of messages in the conversation.
type HistoryPage struct {
	Count   int       `json:"count"`
	Results []Message `json:"results"`
}

type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

func (r ReactionType) Valid() bool {
	switch r {
	case ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry:
		return true
	}
	return false
}

type Reaction struct {
	MessageID    string       `json:"message_id"`
	UserID       string       `json:"user_id"`
	ReactionType ReactionType `json:"reaction_type"`
	Username     string       `json:"username,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
