package pubsub

import (
	"context"
	"fmt"
	"strings"

	"github.com/chatcore/internal/logger"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "chatcore:"

// RedisBus publishes through Redis so every node delivers to its own local subscribers.
// Join and Leave stay local; Run feeds the local registry from the Redis subscription.
type RedisBus struct {
	*Local
	cli *redis.Client
}

func NewRedisBus(cli *redis.Client) *RedisBus {
	return &RedisBus{Local: NewLocal(), cli: cli}
}

// Publish sends payload to every node, this one included.
func (b *RedisBus) Publish(ctx context.Context, name string, payload []byte) error {
	if err := b.cli.Publish(ctx, channelPrefix+name, payload).Err(); err != nil {
		return fmt.Errorf("pubsub: publish %s: %w", name, err)
	}
	return nil
}

// Run receives published payloads until ctx is done. Redis keeps per-channel order, so
// per-topic FIFO holds across nodes.
func (b *RedisBus) Run(ctx context.Context) error {
	sub := b.cli.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("pubsub: subscribe: %w", err)
	}
	logger.Infof("pubsub: redis subscription ready")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.deliver(strings.TrimPrefix(msg.Channel, channelPrefix), []byte(msg.Payload))
		}
	}
}
