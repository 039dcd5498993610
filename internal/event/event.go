package event

import (
	"strings"
	"time"
)

// Topic names the channel an event is published on. Action topics are
// "action.<name>"; a trailing ".*" in a subscription pattern matches any
// single final segment.
type Topic string

const (
	// TopicContextChanged is published after a successful context switch.
	TopicContextChanged Topic = "context.changed"

	// TopicAllActions subscribes to every action.
	TopicAllActions Topic = "action.*"

	actionPrefix = "action."
)

// ActionTopic returns the topic for a named action.
func ActionTopic(name string) Topic {
	return Topic(actionPrefix + name)
}

// IsPattern returns true if the topic is a wildcard subscription pattern.
func (t Topic) IsPattern() bool {
	return strings.HasSuffix(string(t), ".*")
}

// Matches reports whether a concrete event topic matches this subscription
// topic. Exact topics match themselves; a ".*" pattern matches any single
// final segment, so "action.*" matches "action.zoom" but not "action.a.b".
func (t Topic) Matches(concrete Topic) bool {
	if t == concrete {
		return true
	}
	if !t.IsPattern() {
		return false
	}
	prefix := strings.TrimSuffix(string(t), "*")
	rest, ok := strings.CutPrefix(string(concrete), prefix)
	return ok && rest != "" && !strings.Contains(rest, ".")
}

// Event is the envelope delivered to subscribers. The payload is the full
// Action record for action topics, or a ContextChange for context.changed.
type Event struct {
	// Topic is the concrete topic the event was published on.
	Topic Topic

	// Payload is the event-specific record.
	Payload any

	// Timestamp is when the event was published.
	Timestamp time.Time
}

// ContextChange is the payload of TopicContextChanged.
type ContextChange struct {
	// From is the previously active context name; empty on first activation.
	From string

	// To is the newly active context name.
	To string
}
