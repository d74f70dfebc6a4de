package service

import (
	"context"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
)

// ReactionAggregator keeps one reaction per (message, user).
type ReactionAggregator struct {
	convs     ConversationStore
	msgs      MessageStore
	reactions ReactionStore
	hooks     *Hooks
}

func NewReactionAggregator(convs ConversationStore, msgs MessageStore, reactions ReactionStore, hooks *Hooks) *ReactionAggregator {
	return &ReactionAggregator{convs: convs, msgs: msgs, reactions: reactions, hooks: hooks}
}

func (a *ReactionAggregator) message(ctx context.Context, messageID, userID string) (*model.Message, error) {
	if err := checkID("message", messageID); err != nil {
		return nil, err
	}
	m, err := a.msgs.GetByID(ctx, messageID)
	if err != nil {
		return nil, storeErr("message", err)
	}
	ok, err := a.convs.IsParticipant(ctx, m.ConversationID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, denied("you are not a participant of this conversation")
	}
	return m, nil
}

// React sets the caller's reaction, replacing any previous one.
func (a *ReactionAggregator) React(ctx context.Context, messageID, userID string, rt model.ReactionType) (*model.Reaction, error) {
	defer logger.DeferLogDuration("reactions.React", time.Now())()
	if !rt.Valid() {
		return nil, validationf("unknown reaction type %q", rt)
	}
	m, err := a.message(ctx, messageID, userID)
	if err != nil {
		return nil, err
	}
	rc, err := a.reactions.Upsert(ctx, messageID, userID, rt)
	if err != nil {
		return nil, storeErr("message", err)
	}
	a.hooks.Run(ctx, Event{
		Kind:           EventReactionAdded,
		ConversationID: m.ConversationID,
		MessageID:      messageID,
		UserID:         userID,
		Username:       rc.Username,
		Reaction:       rc,
	})
	return rc, nil
}

// Unreact removes the caller's reaction. Removing a missing reaction is not an error.
func (a *ReactionAggregator) Unreact(ctx context.Context, messageID, userID string) error {
	defer logger.DeferLogDuration("reactions.Unreact", time.Now())()
	m, err := a.message(ctx, messageID, userID)
	if err != nil {
		return err
	}
	removed, err := a.reactions.Delete(ctx, messageID, userID)
	if err != nil {
		return err
	}
	if removed {
		a.hooks.Run(ctx, Event{
			Kind:           EventReactionRemoved,
			ConversationID: m.ConversationID,
			MessageID:      messageID,
			UserID:         userID,
		})
	}
	return nil
}
