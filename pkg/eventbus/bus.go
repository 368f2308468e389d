// Package eventbus is the in-process domain event bus. Publish is invoked by
// the persistence gateway after a successful write; subscribers run
// synchronously on the caller's context so their own repository calls join
// any ambient transaction.
package eventbus

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/billfold/billfold/pkg/ddd"
)

var (
	publishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billfold_events_published_total",
		Help: "Domain events published, by event name.",
	}, []string{"event"})

	handlerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billfold_event_handler_failures_total",
		Help: "Subscriber errors swallowed at publish time, by event name.",
	}, []string{"event"})
)

// Handler consumes one published event. A returned error is logged and
// counted; it never unwinds the write that produced the event.
type Handler func(ctx context.Context, e ddd.Event) error

// Bus fan-outs events to subscribers sequentially, in subscription order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *zap.Logger
}

func New(log *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		log:      log.Named("eventbus"),
	}
}

// Subscribe registers a handler for the named event.
func (b *Bus) Subscribe(eventName string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], h)
}

// Publish dispatches the event to every subscriber and waits for each.
// Subscriber failures are logged, not propagated: the triggering write has
// already happened and must not be unwound here.
func (b *Bus) Publish(ctx context.Context, e ddd.Event) {
	b.mu.RLock()
	handlers := b.handlers[e.EventName()]
	b.mu.RUnlock()

	publishedTotal.WithLabelValues(e.EventName()).Inc()

	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			handlerFailures.WithLabelValues(e.EventName()).Inc()
			b.log.Error("event handler failed",
				zap.String("event", e.EventName()),
				zap.String("event_id", e.EventID()),
				zap.String("aggregate_id", e.AggregateID().String()),
				zap.Error(err),
			)
		}
	}
}
