package service

import (
	"context"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
)

type mocks struct {
	tx          *MockTxRunner
	convs       *MockConversationStore
	users       *MockUserStore
	msgs        *MockMessageStore
	receipts    *MockReceiptStore
	reactions   *MockReactionStore
	attachments *MockAttachmentStore
	presence    *MockPresenceStore
	processor   *MockMediaProcessor
	blobs       *MockBlobStore
}

func newMocks(t *testing.T) *mocks {
	ctrl := gomock.NewController(t)
	m := &mocks{
		tx:          NewMockTxRunner(ctrl),
		convs:       NewMockConversationStore(ctrl),
		users:       NewMockUserStore(ctrl),
		msgs:        NewMockMessageStore(ctrl),
		receipts:    NewMockReceiptStore(ctrl),
		reactions:   NewMockReactionStore(ctrl),
		attachments: NewMockAttachmentStore(ctrl),
		presence:    NewMockPresenceStore(ctrl),
		processor:   NewMockMediaProcessor(ctrl),
		blobs:       NewMockBlobStore(ctrl),
	}
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
		return fn(ctx)
	}).AnyTimes()
	return m
}

// recorder collects hook events.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) hooks() *Hooks {
	h := NewHooks()
	h.Register("recorder", func(_ context.Context, ev Event) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, ev)
	})
	return h
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

const (
	userA  = "11111111-1111-1111-1111-111111111111"
	userB  = "22222222-2222-2222-2222-222222222222"
	userC  = "33333333-3333-3333-3333-333333333333"
	convID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	msgID  = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)
