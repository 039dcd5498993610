package event

import (
	"sort"
	"sync"
)

// registry holds subscriptions by topic pattern. It is thread-safe so UI
// panels can subscribe and unsubscribe from outside the dispatch path.
type registry struct {
	mu   sync.RWMutex
	subs map[Topic][]*subscription
	byID map[string]*subscription
}

func newRegistry() *registry {
	return &registry{
		subs: make(map[Topic][]*subscription),
		byID: make(map[string]*subscription),
	}
}

// add inserts a subscription under its topic pattern.
func (r *registry) add(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs[sub.topic] = append(r.subs[sub.topic], sub)
	r.byID[sub.id] = sub
}

// remove deletes a subscription by ID, returning false if unknown.
func (r *registry) remove(subID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, exists := r.byID[subID]
	if !exists {
		return false
	}

	subs := r.subs[sub.topic]
	for i, s := range subs {
		if s.id == subID {
			r.subs[sub.topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(r.subs[sub.topic]) == 0 {
		delete(r.subs, sub.topic)
	}
	delete(r.byID, subID)
	return true
}

// matchActive returns active subscriptions whose pattern matches the concrete
// topic, in subscription order.
func (r *registry) matchActive(concrete Topic) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*subscription
	for pattern, subs := range r.subs {
		if !pattern.Matches(concrete) {
			continue
		}
		for _, sub := range subs {
			if sub.IsActive() {
				matched = append(matched, sub)
			}
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].seq < matched[j].seq
	})
	return matched
}

// count returns the total number of held subscriptions.
func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// sweepCancelled drops cancelled subscriptions, returning how many were
// removed.
func (r *registry) sweepCancelled() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, sub := range r.byID {
		if sub.State() != SubscriptionCancelled {
			continue
		}
		subs := r.subs[sub.topic]
		for i, s := range subs {
			if s.id == id {
				r.subs[sub.topic] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if len(r.subs[sub.topic]) == 0 {
			delete(r.subs, sub.topic)
		}
		delete(r.byID, id)
		removed++
	}
	return removed
}
