package service

import (
	"context"
	"strings"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// HistoryLimits bounds page sizes of conversation history.
type HistoryLimits struct {
	Default int
	Max     int
}

// Clamp returns the effective page size for a requested limit.
func (l HistoryLimits) Clamp(limit int) int {
	switch {
	case limit <= 0:
		return l.Default
	case limit > l.Max:
		return l.Max
	}
	return limit
}

// AppendRequest is a message to be appended to a conversation.
type AppendRequest struct {
	ConversationID string
	SenderID       string
	Type           model.MessageType
	Content        string
	Media          *model.Media
}

// MessageLog is the per-conversation ordered message store.
type MessageLog struct {
	tx          TxRunner
	convs       ConversationStore
	msgs        MessageStore
	receipts    ReceiptStore
	reactions   ReactionStore
	attachments AttachmentStore
	blobs       BlobStore
	hooks       *Hooks
	limits      HistoryLimits
	now         func() time.Time
}

func NewMessageLog(tx TxRunner, convs ConversationStore, msgs MessageStore, receipts ReceiptStore,
	reactions ReactionStore, attachments AttachmentStore, blobs BlobStore, hooks *Hooks, limits HistoryLimits) *MessageLog {
	return &MessageLog{
		tx: tx, convs: convs, msgs: msgs, receipts: receipts, reactions: reactions,
		attachments: attachments, blobs: blobs, hooks: hooks, limits: limits, now: time.Now,
	}
}

func (l *MessageLog) validate(req *AppendRequest) error {
	if !req.Type.Valid() {
		return validationf("unknown message type %q", req.Type)
	}
	if req.Type.RequiresMedia() && req.Media == nil {
		return validationf("%s message requires a file", req.Type)
	}
	if req.Type == model.MessageTypeText && strings.TrimSpace(req.Content) == "" {
		return validationf("message content is empty")
	}
	return nil
}

// participants returns the conversation's participant ids if senderID is one of them.
func (l *MessageLog) participants(ctx context.Context, conversationID, senderID string) ([]string, error) {
	if err := checkID("conversation", conversationID); err != nil {
		return nil, err
	}
	c, err := l.convs.GetByID(ctx, conversationID)
	if err != nil {
		return nil, storeErr("conversation", err)
	}
	if !c.HasParticipant(senderID) {
		return nil, denied("you are not a participant of this conversation")
	}
	return c.ParticipantIDs, nil
}

// Append persists a message and then announces it through the hooks.
func (l *MessageLog) Append(ctx context.Context, req AppendRequest) (*model.Message, error) {
	defer logger.DeferLogDuration("messageLog.Append", time.Now())()
	if err := l.validate(&req); err != nil {
		return nil, err
	}
	participants, err := l.participants(ctx, req.ConversationID, req.SenderID)
	if err != nil {
		return nil, err
	}
	var m *model.Message
	err = l.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		m, err = l.insert(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	l.hooks.Run(ctx, Event{
		Kind:           EventMessageCreated,
		ConversationID: m.ConversationID,
		Message:        m,
		MessageID:      m.ID,
		UserID:         m.SenderID,
		ParticipantIDs: participants,
	})
	return m, nil
}

// insert writes the message row and bumps the conversation. Runs inside the caller's tx.
func (l *MessageLog) insert(ctx context.Context, req AppendRequest) (*model.Message, error) {
	m := &model.Message{
		ConversationID: req.ConversationID,
		SenderID:       req.SenderID,
		Type:           req.Type,
		Content:        req.Content,
		Media:          req.Media,
	}
	if err := l.msgs.Insert(ctx, m); err != nil {
		return nil, err
	}
	if err := l.convs.Touch(ctx, req.ConversationID); err != nil {
		return nil, err
	}
	stored, err := l.msgs.GetByID(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	stored.IsRead = true
	return stored, nil
}

// Edit replaces the content of a text message. Only the sender may edit.
func (l *MessageLog) Edit(ctx context.Context, messageID, editorID, content string) (*model.Message, error) {
	defer logger.DeferLogDuration("messageLog.Edit", time.Now())()
	m, err := l.get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if m.SenderID != editorID {
		return nil, denied("you can only edit your own messages")
	}
	if !m.Type.Editable() {
		return nil, invalidOp("only text messages can be edited")
	}
	if strings.TrimSpace(content) == "" {
		return nil, validationf("message content is empty")
	}
	editedAt := l.now().UTC()
	if err := l.msgs.UpdateContent(ctx, messageID, content, editedAt); err != nil {
		return nil, storeErr("message", err)
	}
	m.Content = content
	m.IsEdited = true
	m.EditedAt = &editedAt
	if err := l.enrich(ctx, []*model.Message{m}, editorID); err != nil {
		return nil, err
	}
	l.hooks.Run(ctx, Event{
		Kind:           EventMessageEdited,
		ConversationID: m.ConversationID,
		Message:        m,
		MessageID:      m.ID,
		UserID:         editorID,
	})
	return m, nil
}

// Delete removes a message together with its reads, reactions and attachments.
// Stored files of the message are removed after the row is gone.
func (l *MessageLog) Delete(ctx context.Context, messageID, requesterID string) error {
	defer logger.DeferLogDuration("messageLog.Delete", time.Now())()
	m, err := l.get(ctx, messageID)
	if err != nil {
		return err
	}
	if m.SenderID != requesterID {
		return denied("you can only delete your own messages")
	}
	atts, err := l.attachments.ListForMessages(ctx, []string{messageID})
	if err != nil {
		return storeErr("message", err)
	}
	if err := l.msgs.Delete(ctx, messageID); err != nil {
		return storeErr("message", err)
	}
	l.removeBlobs(ctx, blobURLs(m, atts[messageID]))
	l.hooks.Run(ctx, Event{
		Kind:           EventMessageDeleted,
		ConversationID: m.ConversationID,
		MessageID:      m.ID,
		UserID:         requesterID,
	})
	return nil
}

// Page returns one page of history, newest first, with the total message count.
func (l *MessageLog) Page(ctx context.Context, conversationID, viewerID string, offset, limit int) (*model.HistoryPage, error) {
	defer logger.DeferLogDuration("messageLog.Page", time.Now())()
	if _, err := l.participants(ctx, conversationID, viewerID); err != nil {
		return nil, err
	}
	limit = l.limits.Clamp(limit)
	if offset < 0 {
		offset = 0
	}

	var (
		count int
		msgs  []model.Message
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		count, err = l.msgs.Count(gctx, conversationID)
		return err
	})
	g.Go(func() error {
		var err error
		msgs, err = l.msgs.Page(gctx, conversationID, limit, offset)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ptrs := make([]*model.Message, len(msgs))
	for i := range msgs {
		ptrs[i] = &msgs[i]
	}
	if err := l.enrich(ctx, ptrs, viewerID); err != nil {
		return nil, err
	}
	return &model.HistoryPage{Count: count, Results: msgs}, nil
}

// Get returns a single message visible to viewerID.
func (l *MessageLog) Get(ctx context.Context, messageID, viewerID string) (*model.Message, error) {
	m, err := l.get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if _, err := l.participants(ctx, m.ConversationID, viewerID); err != nil {
		return nil, err
	}
	if err := l.enrich(ctx, []*model.Message{m}, viewerID); err != nil {
		return nil, err
	}
	return m, nil
}

func (l *MessageLog) get(ctx context.Context, messageID string) (*model.Message, error) {
	if err := checkID("message", messageID); err != nil {
		return nil, err
	}
	m, err := l.msgs.GetByID(ctx, messageID)
	if err != nil {
		return nil, storeErr("message", err)
	}
	return m, nil
}

// enrich fills read state, reactions and attachments of msgs as seen by viewerID.
func (l *MessageLog) enrich(ctx context.Context, msgs []*model.Message, viewerID string) error {
	if len(msgs) == 0 {
		return nil
	}
	ids := lo.Map(msgs, func(m *model.Message, _ int) string { return m.ID })
	var (
		readers   map[string][]string
		reactions map[string][]model.Reaction
		atts      map[string][]model.Attachment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		readers, err = l.receipts.Readers(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		reactions, err = l.reactions.ListForMessages(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		atts, err = l.attachments.ListForMessages(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	for _, m := range msgs {
		m.ReadBy = lo.Ternary(readers[m.ID] != nil, readers[m.ID], []string{})
		m.ReadCount = len(m.ReadBy)
		m.IsRead = m.SenderID == viewerID || lo.Contains(m.ReadBy, viewerID)
		m.Reactions = lo.Ternary(reactions[m.ID] != nil, reactions[m.ID], []model.Reaction{})
		m.Attachments = lo.Ternary(atts[m.ID] != nil, atts[m.ID], []model.Attachment{})
	}
	return nil
}

// blobURLs lists every stored file referenced by m and its attachments.
func blobURLs(m *model.Message, atts []model.Attachment) []string {
	var urls []string
	if m.Media != nil {
		urls = append(urls, m.Media.URL, m.Media.ThumbnailURL)
	}
	for _, a := range atts {
		urls = append(urls, a.FileURL, a.ThumbnailURL)
	}
	return lo.Compact(urls)
}

func (l *MessageLog) removeBlobs(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := l.blobs.Remove(context.WithoutCancel(ctx), url); err != nil {
			logger.Errorf("messageLog: remove %s: %v", url, err)
		}
	}
}
