package memory

import (
	"context"
	"sync"
	"time"

	"github.com/chatcore/internal/storage"
)

type item struct {
	subs []storage.PushSubscription
	exp  time.Time
}

// Client хранит подписки в памяти процесса (запуск без Redis).
type Client struct {
	mu   sync.RWMutex
	subs map[string]item
	now  func() time.Time
}

func New() *Client {
	return &Client{subs: make(map[string]item), now: time.Now}
}

func (c *Client) Close() error { return nil }

func (c *Client) AddSubscription(ctx context.Context, userID string, sub storage.PushSubscription) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.without(userID, sub.Endpoint)
	kept = append(kept, sub)
	if len(kept) > storage.MaxSubscriptionsPerUser {
		kept = kept[len(kept)-storage.MaxSubscriptionsPerUser:]
	}
	c.subs[userID] = item{subs: kept, exp: c.now().Add(storage.SubscriptionTTL)}
	return nil
}

func (c *Client) RemoveSubscription(ctx context.Context, userID, endpoint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.without(userID, endpoint)
	if len(kept) == 0 {
		delete(c.subs, userID)
		return nil
	}
	v := c.subs[userID]
	v.subs = kept
	c.subs[userID] = v
	return nil
}

func (c *Client) Subscriptions(ctx context.Context, userID string) ([]storage.PushSubscription, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.subs[userID]
	if !ok || c.now().After(v.exp) {
		return nil, nil
	}
	return append([]storage.PushSubscription(nil), v.subs...), nil
}

// without требует c.mu.
func (c *Client) without(userID, endpoint string) []storage.PushSubscription {
	v, ok := c.subs[userID]
	if !ok || c.now().After(v.exp) {
		return nil
	}
	kept := make([]storage.PushSubscription, 0, len(v.subs))
	for _, s := range v.subs {
		if s.Endpoint != endpoint {
			kept = append(kept, s)
		}
	}
	return kept
}
