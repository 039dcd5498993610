package event

import (
	"sync/atomic"
)

// Handler consumes delivered events. Handlers run synchronously on the
// dispatch path and must not block.
type Handler interface {
	HandleEvent(ev Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ev Event) error

// HandleEvent implements Handler.
func (f HandlerFunc) HandleEvent(ev Event) error {
	return f(ev)
}

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionActive means the subscription is receiving events.
	SubscriptionActive SubscriptionState = iota

	// SubscriptionPaused means delivery is temporarily suspended.
	SubscriptionPaused

	// SubscriptionCancelled means the subscription is permanently cancelled.
	SubscriptionCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionActive:
		return "active"
	case SubscriptionPaused:
		return "paused"
	case SubscriptionCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription is the handle returned by Subscribe. Holders must Cancel (or
// Unsubscribe through the bus) when done; an uncancelled handle keeps its
// callback alive.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed topic or pattern.
	Topic() Topic

	// State returns the current subscription state.
	State() SubscriptionState

	// IsActive returns true if the subscription can receive events.
	IsActive() bool

	// Pause temporarily stops delivery to this subscription.
	Pause()

	// Resume restarts delivery after a pause.
	Resume()

	// Cancel permanently cancels the subscription. Cancellation cannot be
	// undone.
	Cancel()
}

// subscription is the internal implementation of Subscription.
type subscription struct {
	id      string
	topic   Topic
	handler Handler
	state   atomic.Int32
	seq     uint64
}

func newSubscription(id string, t Topic, h Handler, seq uint64) *subscription {
	s := &subscription{id: id, topic: t, handler: h, seq: seq}
	s.state.Store(int32(SubscriptionActive))
	return s
}

// ID returns the subscription ID.
func (s *subscription) ID() string { return s.id }

// Topic returns the subscribed topic or pattern.
func (s *subscription) Topic() Topic { return s.topic }

// State returns the current subscription state.
func (s *subscription) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

// IsActive returns true if the subscription is active.
func (s *subscription) IsActive() bool {
	return s.State() == SubscriptionActive
}

// Pause temporarily stops delivery. Only an active subscription pauses.
func (s *subscription) Pause() {
	s.state.CompareAndSwap(int32(SubscriptionActive), int32(SubscriptionPaused))
}

// Resume restarts delivery. Only a paused subscription resumes.
func (s *subscription) Resume() {
	s.state.CompareAndSwap(int32(SubscriptionPaused), int32(SubscriptionActive))
}

// Cancel permanently cancels the subscription.
func (s *subscription) Cancel() {
	s.state.Store(int32(SubscriptionCancelled))
}
