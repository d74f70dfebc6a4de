// Package pubsub fans out live events to connections subscribed to a topic.
package pubsub

import (
	"context"
	"sync"
)

// PresenceTopic is the global topic every presence transition is published to.
const PresenceTopic = "presence"

// ConversationTopic returns the topic of a conversation.
func ConversationTopic(conversationID string) string {
	return "conversation:" + conversationID
}

// Subscriber receives payloads published to topics it joined. Deliver must not block:
// it is called while the topic is locked.
type Subscriber interface {
	Deliver(topic string, payload []byte)
}

type topic struct {
	mu   sync.Mutex
	subs map[Subscriber]struct{}
}

// Local is the in-process topic registry. Publishes to one topic are delivered in call
// order; different topics are independent.
type Local struct {
	mu     sync.RWMutex
	topics map[string]*topic
}

func NewLocal() *Local {
	return &Local{topics: make(map[string]*topic)}
}

// Join subscribes s to name. Joining twice is a no-op.
func (b *Local) Join(name string, s Subscriber) {
	b.mu.Lock()
	t, ok := b.topics[name]
	if !ok {
		t = &topic{subs: make(map[Subscriber]struct{})}
		b.topics[name] = t
	}
	t.mu.Lock()
	b.mu.Unlock()
	t.subs[s] = struct{}{}
	t.mu.Unlock()
}

// Leave unsubscribes s from name. Leaving a topic s never joined is a no-op.
func (b *Local) Leave(name string, s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.topics[name]
	if !ok {
		return
	}
	t.mu.Lock()
	delete(t.subs, s)
	if len(t.subs) == 0 {
		delete(b.topics, name)
	}
	t.mu.Unlock()
}

// Publish delivers payload to the current subscribers of name.
func (b *Local) Publish(_ context.Context, name string, payload []byte) error {
	b.deliver(name, payload)
	return nil
}

func (b *Local) deliver(name string, payload []byte) {
	b.mu.RLock()
	t, ok := b.topics[name]
	if !ok {
		b.mu.RUnlock()
		return
	}
	t.mu.Lock()
	b.mu.RUnlock()
	defer t.mu.Unlock()
	for s := range t.subs {
		s.Deliver(name, payload)
	}
}

// Subscribers returns the number of subscribers of name.
func (b *Local) Subscribers(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := b.topics[name]
	if !ok {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}
