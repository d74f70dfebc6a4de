//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package service

import (
	"context"
	"io"
	"time"

	"github.com/chatcore/internal/model"
)

type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ConversationStore interface {
	GetByID(ctx context.Context, id string) (*model.Conversation, error)
	FindDirect(ctx context.Context, key string) (*model.Conversation, error)
	CreateDirect(ctx context.Context, key, a, b string) (*model.Conversation, error)
	CreateGroup(ctx context.Context, name string, participantIDs []string) (*model.Conversation, error)
	AddParticipants(ctx context.Context, conversationID string, userIDs []string) error
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
	ParticipantIDs(ctx context.Context, conversationID string) ([]string, error)
	ConversationIDsForUser(ctx context.Context, userID string) ([]string, error)
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]model.Conversation, error)
	Touch(ctx context.Context, conversationID string) error
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetMany(ctx context.Context, ids []string) (map[string]model.User, error)
	Search(ctx context.Context, query, excludeID string, limit int) ([]model.User, error)
}

type MessageStore interface {
	Insert(ctx context.Context, m *model.Message) error
	GetByID(ctx context.Context, id string) (*model.Message, error)
	Page(ctx context.Context, conversationID string, limit, offset int) ([]model.Message, error)
	Count(ctx context.Context, conversationID string) (int, error)
	LastMessages(ctx context.Context, conversationIDs []string) (map[string]model.Message, error)
	UpdateContent(ctx context.Context, id, content string, editedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type ReceiptStore interface {
	AddReader(ctx context.Context, messageID, readerID string) (bool, error)
	AdvanceWatermark(ctx context.Context, messageID, readerID string) error
	MarkAllRead(ctx context.Context, conversationID, readerID string) ([]string, error)
	UnreadCount(ctx context.Context, conversationID, userID string) (int, error)
	UnreadCounts(ctx context.Context, conversationIDs []string, userID string) (map[string]int, error)
	Readers(ctx context.Context, messageIDs []string) (map[string][]string, error)
}

type ReactionStore interface {
	Upsert(ctx context.Context, messageID, userID string, rt model.ReactionType) (*model.Reaction, error)
	Delete(ctx context.Context, messageID, userID string) (bool, error)
	ListForMessages(ctx context.Context, messageIDs []string) (map[string][]model.Reaction, error)
}

type AttachmentStore interface {
	InsertBatch(ctx context.Context, owner model.AttachmentOwner, items []model.Attachment) ([]model.Attachment, error)
	ListForMessages(ctx context.Context, messageIDs []string) (map[string][]model.Attachment, error)
}

type PresenceStore interface {
	Lock(ctx context.Context, userID string) (model.Presence, error)
	Get(ctx context.Context, userID string) (model.Presence, error)
	Save(ctx context.Context, p model.Presence) (bool, error)
	GetMany(ctx context.Context, userIDs []string) (map[string]model.Presence, error)
}

// MediaProcessor validates an upload against kind and derives its thumbnail.
type MediaProcessor interface {
	Process(up Upload, kind model.MediaKind) (*ProcessedMedia, error)
}

// BlobStore keeps uploaded payloads. Save returns the public URL of the stored blob.
type BlobStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}
