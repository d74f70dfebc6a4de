package service

import (
	"context"
	"sync"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
)

// PresenceBroadcaster drives the per-user presence state machine. It counts live sessions
// per user: the first session connects the user, closing the last one disconnects them.
type PresenceBroadcaster struct {
	tx       TxRunner
	presence PresenceStore
	convs    ConversationStore
	users    UserStore
	hooks    *Hooks
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]int
}

func NewPresenceBroadcaster(tx TxRunner, presence PresenceStore, convs ConversationStore, users UserStore, hooks *Hooks) *PresenceBroadcaster {
	return &PresenceBroadcaster{
		tx: tx, presence: presence, convs: convs, users: users, hooks: hooks,
		now:      time.Now,
		sessions: make(map[string]int),
	}
}

// Connect registers a new session of userID. Store failures are logged, never returned.
func (b *PresenceBroadcaster) Connect(ctx context.Context, userID string) {
	b.mu.Lock()
	b.sessions[userID]++
	first := b.sessions[userID] == 1
	now := b.now().UTC()
	b.mu.Unlock()
	if !first {
		return
	}
	b.transition(ctx, userID, func(p model.Presence) (model.Presence, bool) { return p.Connect(now) })
}

// Disconnect unregisters a session of userID; the user goes offline with the last one.
func (b *PresenceBroadcaster) Disconnect(ctx context.Context, userID string) {
	b.mu.Lock()
	n, ok := b.sessions[userID]
	if !ok {
		b.mu.Unlock()
		return
	}
	last := n <= 1
	if last {
		delete(b.sessions, userID)
	} else {
		b.sessions[userID] = n - 1
	}
	now := b.now().UTC()
	b.mu.Unlock()
	if !last {
		return
	}
	b.transition(ctx, userID, func(p model.Presence) (model.Presence, bool) { return p.Disconnect(now) })
}

// Sessions returns the number of counted live sessions of userID.
func (b *PresenceBroadcaster) Sessions(userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions[userID]
}

// ChangeStatus sets the user's status directly, whatever their session count.
func (b *PresenceBroadcaster) ChangeStatus(ctx context.Context, userID string, status model.PresenceStatus) (*model.Presence, error) {
	defer logger.DeferLogDuration("presence.ChangeStatus", time.Now())()
	if !status.Valid() {
		return nil, validationf("invalid status %q", status)
	}
	now := b.now().UTC()
	p, err := b.apply(ctx, userID, func(p model.Presence) (model.Presence, bool) { return p.Change(status, now), true })
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (b *PresenceBroadcaster) Get(ctx context.Context, userID string) (model.Presence, error) {
	return b.presence.Get(ctx, userID)
}

func (b *PresenceBroadcaster) transition(ctx context.Context, userID string, next func(model.Presence) (model.Presence, bool)) {
	if _, err := b.apply(ctx, userID, next); err != nil {
		logger.Errorf("presence: user=%s: %v", userID, err)
	}
}

// apply runs next against the locked row and broadcasts the result if it was stored.
// A nil presence means nothing changed.
func (b *PresenceBroadcaster) apply(ctx context.Context, userID string, next func(model.Presence) (model.Presence, bool)) (*model.Presence, error) {
	var (
		stored  model.Presence
		applied bool
	)
	err := b.tx.WithTx(ctx, func(ctx context.Context) error {
		cur, err := b.presence.Lock(ctx, userID)
		if err != nil {
			return err
		}
		p, changed := next(cur)
		if !changed {
			stored = cur
			return nil
		}
		// last write wins: an older transition loses to one already stored
		applied, err = b.presence.Save(ctx, p)
		if err != nil {
			return err
		}
		stored = p
		if !applied {
			stored = cur
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("user", err)
	}
	if applied {
		b.broadcast(ctx, stored)
	}
	return &stored, nil
}

func (b *PresenceBroadcaster) broadcast(ctx context.Context, p model.Presence) {
	convIDs, err := b.convs.ConversationIDsForUser(ctx, p.UserID)
	if err != nil {
		logger.Errorf("presence: conversations of %s: %v", p.UserID, err)
		convIDs = nil
	}
	var username string
	if u, err := b.users.GetByID(ctx, p.UserID); err == nil {
		username = u.Name()
	}
	b.hooks.Run(ctx, Event{
		Kind:            EventPresenceChanged,
		UserID:          p.UserID,
		Username:        username,
		Presence:        &p,
		ConversationIDs: convIDs,
	})
}
