package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chatcore/internal/storage"
	"github.com/redis/go-redis/v9"
)

const subsKeyPrefix = "push:subs:"

// Client хранит подписки списком JSON-строк по ключу push:subs:{user_id}.
type Client struct {
	cli *redis.Client
}

// New оборачивает уже подключённый клиент (см. startup.ConnectRedisWithRetry).
func New(cli *redis.Client) *Client {
	return &Client{cli: cli}
}

// Close не закрывает общий клиент: им же пользуется шина событий.
func (c *Client) Close() error { return nil }

// AddSubscription добавляет подписку; повторная подписка того же endpoint заменяет старую.
func (c *Client) AddSubscription(ctx context.Context, userID string, sub storage.PushSubscription) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("subscription encode: %w", err)
	}
	key := subsKeyPrefix + userID
	kept, err := c.without(ctx, key, sub.Endpoint)
	if err != nil {
		return err
	}
	kept = append(kept, string(raw))
	if len(kept) > storage.MaxSubscriptionsPerUser {
		kept = kept[len(kept)-storage.MaxSubscriptionsPerUser:]
	}
	return c.replace(ctx, key, kept)
}

func (c *Client) RemoveSubscription(ctx context.Context, userID, endpoint string) error {
	key := subsKeyPrefix + userID
	kept, err := c.without(ctx, key, endpoint)
	if err != nil {
		return err
	}
	return c.replace(ctx, key, kept)
}

func (c *Client) Subscriptions(ctx context.Context, userID string) ([]storage.PushSubscription, error) {
	list, err := c.cli.LRange(ctx, subsKeyPrefix+userID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}
	subs := make([]storage.PushSubscription, 0, len(list))
	for _, item := range list {
		var sub storage.PushSubscription
		if json.Unmarshal([]byte(item), &sub) == nil && sub.Endpoint != "" {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

// without возвращает сырые элементы списка, кроме подписки с данным endpoint.
func (c *Client) without(ctx context.Context, key, endpoint string) ([]string, error) {
	list, err := c.cli.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}
	kept := make([]string, 0, len(list))
	for _, item := range list {
		var sub storage.PushSubscription
		if json.Unmarshal([]byte(item), &sub) == nil && sub.Endpoint != endpoint {
			kept = append(kept, item)
		}
	}
	return kept, nil
}

// replace атомарно переписывает список в одной транзакции MULTI/EXEC.
func (c *Client) replace(ctx context.Context, key string, items []string) error {
	_, err := c.cli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(items) == 0 {
			return nil
		}
		vals := make([]any, len(items))
		for i, v := range items {
			vals[i] = v
		}
		pipe.RPush(ctx, key, vals...)
		pipe.Expire(ctx, key, storage.SubscriptionTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis replace %s: %w", key, err)
	}
	return nil
}
