//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package ws

import (
	"context"

	"github.com/chatcore/internal/model"
	"github.com/chatcore/internal/pubsub"
	"github.com/chatcore/internal/service"
)

type Bus interface {
	Join(topic string, s pubsub.Subscriber)
	Leave(topic string, s pubsub.Subscriber)
	Publish(ctx context.Context, topic string, payload []byte) error
}

type Messenger interface {
	Append(ctx context.Context, req service.AppendRequest) (*model.Message, error)
	Edit(ctx context.Context, messageID, editorID, content string) (*model.Message, error)
	Delete(ctx context.Context, messageID, requesterID string) error
}

type Receipts interface {
	MarkRead(ctx context.Context, messageID, readerID string) (bool, error)
	MarkConversationRead(ctx context.Context, conversationID, readerID string) ([]string, error)
}

type Presence interface {
	Connect(ctx context.Context, userID string)
	Disconnect(ctx context.Context, userID string)
	ChangeStatus(ctx context.Context, userID string, status model.PresenceStatus) (*model.Presence, error)
}

type Conversations interface {
	RequireParticipant(ctx context.Context, conversationID, userID string) (*model.Conversation, error)
}

type Users interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}
