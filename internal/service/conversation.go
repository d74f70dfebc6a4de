package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
	"github.com/chatcore/internal/repository"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	directCreateAttempts = 3
	searchMinQueryLen    = 2
	searchMaxResults     = 10
)

// ConversationRegistry creates and looks up conversations and manages membership.
type ConversationRegistry struct {
	tx       TxRunner
	convs    ConversationStore
	users    UserStore
	msgs     MessageStore
	receipts ReceiptStore
	presence PresenceStore
}

func NewConversationRegistry(tx TxRunner, convs ConversationStore, users UserStore, msgs MessageStore,
	receipts ReceiptStore, presence PresenceStore) *ConversationRegistry {
	return &ConversationRegistry{tx: tx, convs: convs, users: users, msgs: msgs, receipts: receipts, presence: presence}
}

// DirectTarget identifies the other side of a direct conversation by id or username.
type DirectTarget struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// ResolveTarget looks up the user named by t.
func (r *ConversationRegistry) ResolveTarget(ctx context.Context, t DirectTarget) (*model.User, error) {
	switch {
	case t.UserID != "":
		if err := checkID("user", t.UserID); err != nil {
			return nil, err
		}
		u, err := r.users.GetByID(ctx, t.UserID)
		if err != nil {
			return nil, storeErr("user", err)
		}
		return u, nil
	case strings.TrimSpace(t.Username) != "":
		u, err := r.users.GetByUsername(ctx, strings.TrimSpace(t.Username))
		if err != nil {
			return nil, storeErr("user", err)
		}
		return u, nil
	}
	return nil, validationf("user_id or username is required")
}

// CreateOrGetDirect returns the direct conversation between a and b, creating it if needed.
// Concurrent callers for the same pair converge on one conversation: the loser of the
// direct_key race re-reads the winner's row.
func (r *ConversationRegistry) CreateOrGetDirect(ctx context.Context, a, b string) (*model.Conversation, bool, error) {
	defer logger.DeferLogDuration("registry.CreateOrGetDirect", time.Now())()
	if a == b {
		return nil, false, invalidOp("cannot start a conversation with yourself")
	}
	key := model.DirectKey(a, b)
	for attempt := 0; attempt < directCreateAttempts; attempt++ {
		c, err := r.convs.FindDirect(ctx, key)
		if err == nil {
			return c, false, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, false, err
		}

		err = r.tx.WithTx(ctx, func(ctx context.Context) error {
			var err error
			c, err = r.convs.CreateDirect(ctx, key, a, b)
			return err
		})
		if err == nil {
			return c, true, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return nil, false, storeErr("user", err)
		}
		logger.Debugf("registry: direct %s conflict, retry %d", key, attempt+1)
	}
	c, err := r.convs.FindDirect(ctx, key)
	if err != nil {
		return nil, false, storeErr("conversation", err)
	}
	return c, false, nil
}

// CreateGroup creates a group conversation; the creator is always a participant.
func (r *ConversationRegistry) CreateGroup(ctx context.Context, creatorID, name string, participantIDs []string) (*model.Conversation, error) {
	defer logger.DeferLogDuration("registry.CreateGroup", time.Now())()
	for _, id := range participantIDs {
		if err := checkID("user", id); err != nil {
			return nil, err
		}
	}
	ids := lo.Uniq(append([]string{creatorID}, participantIDs...))
	if len(ids) < 2 {
		return nil, validationf("a group needs at least one other participant")
	}
	var c *model.Conversation
	err := r.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		c, err = r.convs.CreateGroup(ctx, strings.TrimSpace(name), ids)
		return err
	})
	if err != nil {
		return nil, storeErr("user", err)
	}
	return c, nil
}

// AddParticipants adds users to a group the caller belongs to. Re-adding is a no-op.
func (r *ConversationRegistry) AddParticipants(ctx context.Context, conversationID, callerID string, userIDs []string) (*model.Conversation, error) {
	defer logger.DeferLogDuration("registry.AddParticipants", time.Now())()
	c, err := r.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(callerID) {
		return nil, denied("you are not a participant of this conversation")
	}
	if !c.IsGroup {
		return nil, invalidOp("participants of a direct conversation are fixed")
	}
	if len(userIDs) == 0 {
		return nil, validationf("user_ids is required")
	}
	for _, id := range userIDs {
		if err := checkID("user", id); err != nil {
			return nil, err
		}
	}
	if err := r.convs.AddParticipants(ctx, conversationID, lo.Uniq(userIDs)); err != nil {
		return nil, storeErr("user", err)
	}
	return r.Get(ctx, conversationID)
}

func (r *ConversationRegistry) Get(ctx context.Context, conversationID string) (*model.Conversation, error) {
	if err := checkID("conversation", conversationID); err != nil {
		return nil, err
	}
	c, err := r.convs.GetByID(ctx, conversationID)
	if err != nil {
		return nil, storeErr("conversation", err)
	}
	return c, nil
}

// RequireParticipant returns the conversation if userID belongs to it.
func (r *ConversationRegistry) RequireParticipant(ctx context.Context, conversationID, userID string) (*model.Conversation, error) {
	c, err := r.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(userID) {
		return nil, denied("you are not a participant of this conversation")
	}
	return c, nil
}

// List returns the caller's conversations, most recently active first, each annotated with
// its last message, unread count and, for direct conversations, the peer's presence.
func (r *ConversationRegistry) List(ctx context.Context, userID string, limit, offset int) ([]model.ConversationSummary, error) {
	defer logger.DeferLogDuration("registry.List", time.Now())()
	convs, err := r.convs.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		return []model.ConversationSummary{}, nil
	}
	convIDs := lo.Map(convs, func(c model.Conversation, _ int) string { return c.ID })
	userIDs := lo.Uniq(lo.FlatMap(convs, func(c model.Conversation, _ int) []string { return c.ParticipantIDs }))
	peerIDs := lo.Uniq(lo.FilterMap(convs, func(c model.Conversation, _ int) (string, bool) {
		id := c.OtherParticipant(userID)
		return id, id != ""
	}))

	var (
		last     map[string]model.Message
		unread   map[string]int
		users    map[string]model.User
		presence map[string]model.Presence
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		last, err = r.msgs.LastMessages(gctx, convIDs)
		return err
	})
	g.Go(func() error {
		var err error
		unread, err = r.receipts.UnreadCounts(gctx, convIDs, userID)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = r.users.GetMany(gctx, userIDs)
		return err
	})
	g.Go(func() error {
		var err error
		presence, err = r.presence.GetMany(gctx, peerIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]model.ConversationSummary, 0, len(convs))
	for _, c := range convs {
		s := model.ConversationSummary{
			Conversation: c,
			UnreadCount:  unread[c.ID],
			Participants: make([]model.UserPublic, 0, len(c.ParticipantIDs)),
		}
		for _, id := range c.ParticipantIDs {
			if u, ok := users[id]; ok {
				s.Participants = append(s.Participants, u.ToPublic())
			}
		}
		var peer *model.User
		if id := c.OtherParticipant(userID); id != "" {
			s.OtherUserID = id
			if u, ok := users[id]; ok {
				peer = &u
			}
			if p, ok := presence[id]; ok {
				s.OtherUserStatus = p.Status
			} else {
				s.OtherUserStatus = model.StatusOffline
			}
		}
		s.Name = model.SummaryName(&c, peer)
		if m, ok := last[c.ID]; ok {
			m := m
			s.LastMessage = &m
			s.LastMessageTime = &m.CreatedAt
			s.LastMessagePreview = model.Preview(&m)
		} else {
			s.LastMessagePreview = model.Preview(nil)
		}
		out = append(out, s)
	}
	return out, nil
}

// SearchUsers matches username or display name; queries shorter than two characters match nothing.
func (r *ConversationRegistry) SearchUsers(ctx context.Context, callerID, query string) ([]model.UserPublic, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < searchMinQueryLen {
		return []model.UserPublic{}, nil
	}
	users, err := r.users.Search(ctx, query, callerID, searchMaxResults)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u model.User, _ int) model.UserPublic { return u.ToPublic() }), nil
}
