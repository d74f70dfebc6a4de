// Package metrics exposes process counters in the Prometheus format.
package metrics

import (
	"context"
	"net/http"

	"github.com/chatcore/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	WSSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatcore_ws_sessions",
		Help: "Open gateway sessions.",
	})
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatcore_events_published_total",
		Help: "Live envelopes published to topics, by envelope type.",
	}, []string{"type"})
	MessagesAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatcore_messages_appended_total",
		Help: "Messages appended, by message type.",
	}, []string{"type"})
	HookPanics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatcore_hook_panics_total",
		Help: "Post-commit hooks that panicked.",
	})
	SlowSubscribers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatcore_slow_subscribers_total",
		Help: "Sessions dropped because their send buffer was full.",
	})
)

// Hook counts committed messages.
func Hook(_ context.Context, ev service.Event) {
	if ev.Kind == service.EventMessageCreated && ev.Message != nil {
		MessagesAppended.WithLabelValues(string(ev.Message.Type)).Inc()
	}
}

// OnHookPanic is assigned to service.Hooks.OnPanic.
func OnHookPanic(string) {
	HookPanics.Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
