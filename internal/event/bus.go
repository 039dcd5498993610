package event

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Bus delivers published events to matching subscriptions, inline and in
// subscription order. A subscriber error or panic is logged and never stops
// delivery to the remaining subscribers.
type Bus struct {
	registry *registry
	logger   *slog.Logger
	seq      atomic.Uint64

	published atomic.Uint64
	delivered atomic.Uint64
	failed    atomic.Uint64
	panicked  atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used for subscriber diagnostics.
func WithLogger(logger *slog.Logger) BusOption {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBus creates a synchronous publish channel.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		registry: newRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for a topic or ".*" pattern and returns its
// handle. The handle must be cancelled when the subscriber goes away.
func (b *Bus) Subscribe(t Topic, handler Handler) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if t == "" {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(uuid.NewString(), t, handler, b.seq.Add(1))
	b.registry.add(sub)
	return sub, nil
}

// SubscribeFunc is Subscribe with a plain function handler.
func (b *Bus) SubscribeFunc(t Topic, fn HandlerFunc) (Subscription, error) {
	return b.Subscribe(t, fn)
}

// Unsubscribe cancels a subscription and releases it from the bus.
func (b *Bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	sub.Cancel()
	if !b.registry.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Publish delivers an event to every active matching subscription, in the
// order the subscriptions were created.
func (b *Bus) Publish(t Topic, payload any) {
	b.PublishEvent(Event{Topic: t, Payload: payload, Timestamp: time.Now()})
}

// PublishEvent delivers a fully formed event envelope.
func (b *Bus) PublishEvent(ev Event) {
	if ev.Topic == "" || ev.Topic.IsPattern() {
		return
	}

	b.published.Add(1)
	for _, sub := range b.registry.matchActive(ev.Topic) {
		b.deliver(sub, ev)
	}
}

// deliver runs one handler with panic and error isolation.
func (b *Bus) deliver(sub *subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.panicked.Add(1)
			perr := &PanicError{SubscriptionID: sub.id, Topic: ev.Topic, Value: r}
			b.logger.Error("subscriber panicked",
				"topic", string(ev.Topic),
				"subscription", sub.id,
				"panic", r,
				"err", perr)
		}
	}()

	if err := sub.handler.HandleEvent(ev); err != nil {
		b.failed.Add(1)
		herr := &HandlerError{SubscriptionID: sub.id, Topic: ev.Topic, Err: err}
		b.logger.Warn("subscriber failed",
			"topic", string(ev.Topic),
			"subscription", sub.id,
			"err", herr)
		return
	}
	b.delivered.Add(1)
}

// Stats reports cumulative bus counters.
type Stats struct {
	Published     uint64
	Delivered     uint64
	Failed        uint64
	Panicked      uint64
	Subscriptions int
}

// Stats returns current counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		Failed:        b.failed.Load(),
		Panicked:      b.panicked.Load(),
		Subscriptions: b.registry.count(),
	}
}

// Sweep drops cancelled subscriptions that were never unsubscribed, and
// returns how many were released.
func (b *Bus) Sweep() int {
	return b.registry.sweepCancelled()
}
