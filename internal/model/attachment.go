package model

import "time"

// AttachmentOwner is the closed set of things an attachment can hang off.
// The unexported method keeps implementations inside this package.
type AttachmentOwner interface {
	OwnerKind() string
	OwnerID() string
	attachmentOwner()
}

// MessageOwner attaches to a message.
type MessageOwner struct {
	MessageID string
}

func (MessageOwner) OwnerKind() string { return "message" }
func (o MessageOwner) OwnerID() string { return o.MessageID }
func (MessageOwner) attachmentOwner() {}

type AttachmentType string

const (
	AttachmentTypeImage AttachmentType = "image"
	AttachmentTypeVideo AttachmentType = "video"
)

func (t AttachmentType) Valid() bool {
	return t == AttachmentTypeImage || t == AttachmentTypeVideo
}

// Kind returns the validation kind for this attachment type.
func (t AttachmentType) Kind() MediaKind {
	if t == AttachmentTypeVideo {
		return MediaKindVideo
	}
	return MediaKindImage
}

type Attachment struct {
	ID           string          `json:"id"`
	Owner        AttachmentOwner `json:"-"`
	MessageID    string          `json:"message_id"`
	Type         AttachmentType  `json:"attachment_type"`
	FileURL      string          `json:"file_url"`
	FileName     string          `json:"file_name"`
	FileSize     int64           `json:"file_size"`
	MimeType     string          `json:"mime_type"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
