//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package handler

import (
	"context"
	"net/http"

	"github.com/chatcore/internal/model"
	"github.com/chatcore/internal/service"
	"github.com/chatcore/internal/storage"
)

type Conversations interface {
	ResolveTarget(ctx context.Context, t service.DirectTarget) (*model.User, error)
	CreateOrGetDirect(ctx context.Context, a, b string) (*model.Conversation, bool, error)
	CreateGroup(ctx context.Context, creatorID, name string, participantIDs []string) (*model.Conversation, error)
	AddParticipants(ctx context.Context, conversationID, callerID string, userIDs []string) (*model.Conversation, error)
	List(ctx context.Context, userID string, limit, offset int) ([]model.ConversationSummary, error)
	SearchUsers(ctx context.Context, callerID, query string) ([]model.UserPublic, error)
}

type Messages interface {
	Append(ctx context.Context, req service.AppendRequest) (*model.Message, error)
	Edit(ctx context.Context, messageID, editorID, content string) (*model.Message, error)
	Delete(ctx context.Context, messageID, requesterID string) error
	Page(ctx context.Context, conversationID, viewerID string, offset, limit int) (*model.HistoryPage, error)
}

type Attachments interface {
	Send(ctx context.Context, req service.SendRequest) (*model.Message, error)
	Attach(ctx context.Context, messageID, requesterID string, uploads []service.Upload, types []model.AttachmentType) (*model.Message, error)
}

type Receipts interface {
	MarkRead(ctx context.Context, messageID, readerID string) (bool, error)
	MarkConversationRead(ctx context.Context, conversationID, readerID string) ([]string, error)
	UnreadCount(ctx context.Context, conversationID, userID string) (int, error)
}

type Reactions interface {
	React(ctx context.Context, messageID, userID string, rt model.ReactionType) (*model.Reaction, error)
	Unreact(ctx context.Context, messageID, userID string) error
}

type Presence interface {
	ChangeStatus(ctx context.Context, userID string, status model.PresenceStatus) (*model.Presence, error)
}

// Files serves stored blobs by their file name.
type Files interface {
	Serve(w http.ResponseWriter, r *http.Request, filename string)
}

type PushSubscriptions interface {
	Subscribe(ctx context.Context, userID string, sub storage.PushSubscription) error
	Unsubscribe(ctx context.Context, userID, endpoint string) error
	PublicKey() string
}
