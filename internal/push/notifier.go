package push

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
	"github.com/chatcore/internal/service"
	"github.com/chatcore/internal/storage"
)

const notifyTimeout = 10 * time.Second

// Sender доставляет одно уведомление; по умолчанию webpush.SendNotificationWithContext.
type Sender func(ctx context.Context, payload []byte, sub *webpush.Subscription, opts *webpush.Options) (*http.Response, error)

// Payload: то, что получает service worker.
type Payload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Notifier рассылает Web Push о новых сообщениях участникам беседы.
// Без ключей VAPID подписки сохраняются, но отправка не выполняется.
type Notifier struct {
	subs  storage.SubscriptionStore
	vapid *webpush.Options
	send  Sender
	wg    sync.WaitGroup
}

// NewNotifier создаёт рассыльщик. При keys == nil пуши отключены.
func NewNotifier(subs storage.SubscriptionStore, keys *VAPIDKeys, subscriber string) *Notifier {
	n := &Notifier{subs: subs, send: webpush.SendNotificationWithContext}
	if keys != nil && keys.PublicKey != "" && keys.PrivateKey != "" {
		n.vapid = &webpush.Options{
			Subscriber:      subscriber,
			VAPIDPublicKey:  keys.PublicKey,
			VAPIDPrivateKey: keys.PrivateKey,
			TTL:             30,
		}
	}
	return n
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.vapid != nil
}

// PublicKey возвращает публичный VAPID-ключ или пустую строку.
func (n *Notifier) PublicKey() string {
	if !n.Enabled() {
		return ""
	}
	return n.vapid.VAPIDPublicKey
}

func (n *Notifier) Subscribe(ctx context.Context, userID string, sub storage.PushSubscription) error {
	if sub.Endpoint == "" || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
		return &service.Error{Kind: service.ErrValidation, Msg: "subscription.endpoint and subscription.keys required"}
	}
	return n.subs.AddSubscription(ctx, userID, sub)
}

func (n *Notifier) Unsubscribe(ctx context.Context, userID, endpoint string) error {
	if endpoint == "" {
		return &service.Error{Kind: service.ErrValidation, Msg: "endpoint required"}
	}
	return n.subs.RemoveSubscription(ctx, userID, endpoint)
}

// Hook уведомляет всех участников, кроме отправителя, о новом сообщении.
// Отправка идёт в фоне и не задерживает запись.
func (n *Notifier) Hook(_ context.Context, ev service.Event) {
	if !n.Enabled() || ev.Kind != service.EventMessageCreated || ev.Message == nil {
		return
	}
	m := ev.Message
	p := Payload{
		Title: senderName(m),
		Body:  model.Preview(m),
		Data:  map[string]string{"conversation_id": m.ConversationID, "message_id": m.ID},
	}
	for _, userID := range ev.ParticipantIDs {
		if userID == m.SenderID {
			continue
		}
		n.wg.Add(1)
		go func(userID string) {
			defer n.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			n.Notify(ctx, userID, p)
		}(userID)
	}
}

// Wait ждёт завершения фоновых рассылок.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// Notify отправляет пуш на все подписки пользователя; отозванные подписки удаляются.
func (n *Notifier) Notify(ctx context.Context, userID string, p Payload) {
	if !n.Enabled() {
		return
	}
	subs, err := n.subs.Subscriptions(ctx, userID)
	if err != nil {
		logger.Errorf("push subscriptions user=%s: %v", userID, err)
		return
	}
	if len(subs) == 0 {
		return
	}
	payload, err := json.Marshal(p)
	if err != nil {
		logger.Errorf("push payload: %v", err)
		return
	}
	for _, sub := range subs {
		wpSub := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys:     webpush.Keys{P256dh: sub.Keys.P256dh, Auth: sub.Keys.Auth},
		}
		resp, err := n.send(ctx, payload, wpSub, n.vapid)
		if err != nil {
			logger.Errorf("push send %s: %v", shortEndpoint(sub.Endpoint), err)
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
			if err := n.subs.RemoveSubscription(ctx, userID, sub.Endpoint); err != nil {
				logger.Errorf("push drop subscription user=%s: %v", userID, err)
			}
		}
	}
}

func senderName(m *model.Message) string {
	if m.Sender == nil {
		return "New message"
	}
	if m.Sender.DisplayName != "" {
		return m.Sender.DisplayName
	}
	return m.Sender.Username
}

func shortEndpoint(e string) string {
	if len(e) > 50 {
		return e[:50]
	}
	return e
}
