package service

import (
	"context"
	"time"

	"github.com/chatcore/internal/logger"
)

// ReadReceiptTracker records who has read which message.
type ReadReceiptTracker struct {
	tx       TxRunner
	convs    ConversationStore
	msgs     MessageStore
	receipts ReceiptStore
	hooks    *Hooks
}

func NewReadReceiptTracker(tx TxRunner, convs ConversationStore, msgs MessageStore, receipts ReceiptStore, hooks *Hooks) *ReadReceiptTracker {
	return &ReadReceiptTracker{tx: tx, convs: convs, msgs: msgs, receipts: receipts, hooks: hooks}
}

func (t *ReadReceiptTracker) requireParticipant(ctx context.Context, conversationID, userID string) error {
	if err := checkID("conversation", conversationID); err != nil {
		return err
	}
	ok, err := t.convs.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return storeErr("conversation", err)
	}
	if !ok {
		return denied("you are not a participant of this conversation")
	}
	return nil
}

// MarkRead adds readerID to the message's read set. Reading your own message, or reading
// twice, changes nothing and reports false.
func (t *ReadReceiptTracker) MarkRead(ctx context.Context, messageID, readerID string) (bool, error) {
	defer logger.DeferLogDuration("receipts.MarkRead", time.Now())()
	if err := checkID("message", messageID); err != nil {
		return false, err
	}
	m, err := t.msgs.GetByID(ctx, messageID)
	if err != nil {
		return false, storeErr("message", err)
	}
	if err := t.requireParticipant(ctx, m.ConversationID, readerID); err != nil {
		return false, err
	}
	if m.SenderID == readerID {
		return false, nil
	}

	var added bool
	err = t.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		added, err = t.receipts.AddReader(ctx, messageID, readerID)
		if err != nil || !added {
			return err
		}
		return t.receipts.AdvanceWatermark(ctx, messageID, readerID)
	})
	if err != nil {
		return false, storeErr("message", err)
	}
	if added {
		t.hooks.Run(ctx, Event{
			Kind:           EventMessageRead,
			ConversationID: m.ConversationID,
			MessageID:      messageID,
			UserID:         readerID,
		})
	}
	return added, nil
}

// MarkConversationRead marks every message from others in the conversation as read by
// readerID and returns the ids that were newly marked.
func (t *ReadReceiptTracker) MarkConversationRead(ctx context.Context, conversationID, readerID string) ([]string, error) {
	defer logger.DeferLogDuration("receipts.MarkConversationRead", time.Now())()
	if err := t.requireParticipant(ctx, conversationID, readerID); err != nil {
		return nil, err
	}
	var ids []string
	err := t.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		ids, err = t.receipts.MarkAllRead(ctx, conversationID, readerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		t.hooks.Run(ctx, Event{
			Kind:           EventConversationRead,
			ConversationID: conversationID,
			MessageIDs:     ids,
			UserID:         readerID,
		})
	}
	return ids, nil
}

// UnreadCount counts messages from others that userID has not read.
func (t *ReadReceiptTracker) UnreadCount(ctx context.Context, conversationID, userID string) (int, error) {
	if err := t.requireParticipant(ctx, conversationID, userID); err != nil {
		return 0, err
	}
	return t.receipts.UnreadCount(ctx, conversationID, userID)
}
