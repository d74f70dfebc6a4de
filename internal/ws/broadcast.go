package ws

import (
	"context"

	"github.com/chatcore/internal/pubsub"
	"github.com/chatcore/internal/service"
)

// Hook publishes committed events to the topics of the conversations they touch.
// Registered in the service hook list.
func (h *Hub) Hook(ctx context.Context, ev service.Event) {
	topic := pubsub.ConversationTopic(ev.ConversationID)
	switch ev.Kind {
	case service.EventMessageCreated:
		h.publish(ctx, topic, EventChatMessage, ChatMessageEnvelope{Type: EventChatMessage, Message: ev.Message})

	case service.EventMessageEdited, service.EventAttachmentsAdded:
		h.publish(ctx, topic, EventMessageEdited, MessageEditedEnvelope{
			Type:           EventMessageEdited,
			ConversationID: ev.ConversationID,
			MessageID:      ev.MessageID,
			Message:        ev.Message,
		})

	case service.EventMessageDeleted:
		h.publish(ctx, topic, EventMessageDeleted, MessageDeletedEnvelope{
			Type:           EventMessageDeleted,
			ConversationID: ev.ConversationID,
			MessageID:      ev.MessageID,
		})

	case service.EventMessageRead:
		h.publish(ctx, topic, EventMessageRead, MessageReadEnvelope{
			Type:           EventMessageRead,
			ConversationID: ev.ConversationID,
			MessageID:      ev.MessageID,
			UserID:         ev.UserID,
		})

	case service.EventConversationRead:
		if len(ev.MessageIDs) == 0 {
			return
		}
		h.publish(ctx, topic, EventMessageRead, MessageReadEnvelope{
			Type:           EventMessageRead,
			ConversationID: ev.ConversationID,
			MessageIDs:     ev.MessageIDs,
			UserID:         ev.UserID,
		})

	case service.EventReactionAdded:
		env := ReactionEnvelope{
			Type:           EventReactionAdded,
			ConversationID: ev.ConversationID,
			MessageID:      ev.MessageID,
			UserID:         ev.UserID,
			Username:       ev.Username,
		}
		if ev.Reaction != nil {
			env.ReactionType = ev.Reaction.ReactionType
		}
		h.publish(ctx, topic, EventReactionAdded, env)

	case service.EventReactionRemoved:
		h.publish(ctx, topic, EventReactionRemoved, ReactionEnvelope{
			Type:           EventReactionRemoved,
			ConversationID: ev.ConversationID,
			MessageID:      ev.MessageID,
			UserID:         ev.UserID,
		})

	case service.EventPresenceChanged:
		if ev.Presence == nil {
			return
		}
		env := UserStatusEnvelope{
			Type:     EventUserStatusChanged,
			UserID:   ev.UserID,
			Username: ev.Username,
			Status:   ev.Presence.Status,
		}
		for _, id := range ev.ConversationIDs {
			h.publish(ctx, pubsub.ConversationTopic(id), EventUserStatusChanged, env)
		}
		h.publish(ctx, pubsub.PresenceTopic, EventUserStatusChanged, env)
	}
}
