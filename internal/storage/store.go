package storage

import (
	"context"
	"time"
)

const (
	// MaxSubscriptionsPerUser: сверх лимита старые подписки вытесняются новыми.
	MaxSubscriptionsPerUser = 10
	SubscriptionTTL         = 30 * 24 * time.Hour
)

// PushSubscription: подписка из браузера (PushManager.subscribe()).
type PushSubscription struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// SubscriptionStore: хранилище Web Push подписок пользователей.
// Реализации: redis.Client, memory.Client (без Redis).
type SubscriptionStore interface {
	AddSubscription(ctx context.Context, userID string, sub PushSubscription) error
	RemoveSubscription(ctx context.Context, userID, endpoint string) error
	Subscriptions(ctx context.Context, userID string) ([]PushSubscription, error)
	Close() error
}
