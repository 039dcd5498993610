package manager

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dshills/sceneinput/internal/binding"
	"github.com/dshills/sceneinput/internal/event"
	"github.com/dshills/sceneinput/internal/pick"
	"github.com/dshills/sceneinput/internal/raw"
	"github.com/dshills/sceneinput/internal/source"
)

// blockerEntry is one registered priority blocker.
type blockerEntry struct {
	name     string
	priority int
	seq      uint64
	pred     func() bool
}

// Manager routes raw events from registered sources through the blocker
// chain and the active context, triggers the resulting actions, and answers
// state queries. It implements source.Sink.
//
// All mutation happens inline on the caller's goroutine; the mutex exists
// only because the touch long-press timer delivers from its own goroutine.
type Manager struct {
	logger *slog.Logger
	clock  func() time.Time
	picker pick.Picker
	bus    *event.Bus

	mu         sync.Mutex
	sources    map[string]source.Source
	contexts   map[string]*binding.Context
	active     *binding.Context
	blockers   []blockerEntry
	blockerSeq uint64
	states     map[string]*actionState
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPicker installs the scene picking service consulted for bindings that
// request hit enrichment. Without one, those actions fire with no hit info.
func WithPicker(p pick.Picker) Option {
	return func(m *Manager) { m.picker = p }
}

// WithClock overrides the timestamp source; tests inject a fixed clock.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithBus uses an existing publish bus instead of creating one.
func WithBus(bus *event.Bus) Option {
	return func(m *Manager) {
		if bus != nil {
			m.bus = bus
		}
	}
}

// New creates a manager with no sources, contexts, or active context.
func New(opts ...Option) *Manager {
	m := &Manager{
		logger:   slog.Default(),
		clock:    time.Now,
		sources:  make(map[string]source.Source),
		contexts: make(map[string]*binding.Context),
		states:   make(map[string]*actionState),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.bus == nil {
		m.bus = event.NewBus(event.WithLogger(m.logger))
	}
	return m
}

// Bus returns the publish channel consumers subscribe on.
func (m *Manager) Bus() *event.Bus {
	return m.bus
}

// RegisterSource adds a named source. Registering an existing name returns a
// *DuplicateRegistrationError unless replace is true.
func (m *Manager) RegisterSource(src source.Source, replace bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := src.Name()
	if _, exists := m.sources[name]; exists && !replace {
		return &DuplicateRegistrationError{Kind: "source", Name: name}
	}
	m.sources[name] = src
	return nil
}

// Source returns the source registered under name.
func (m *Manager) Source(name string) (source.Source, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, ok := m.sources[name]
	return src, ok
}

// RegisterContext adds a named binding context. Registering an existing name
// returns a *DuplicateRegistrationError unless replace is true; replacing the
// active context swaps it in immediately.
func (m *Manager) RegisterContext(ctx *binding.Context, replace bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := ctx.Name()
	prev, exists := m.contexts[name]
	if exists && !replace {
		return &DuplicateRegistrationError{Kind: "context", Name: name}
	}
	m.contexts[name] = ctx
	if exists && m.active == prev {
		m.active = ctx
	}
	return nil
}

// Context returns the context registered under name.
func (m *Manager) Context(name string) (*binding.Context, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctx, ok := m.contexts[name]
	return ctx, ok
}

// ActiveContext returns the active context's name, or empty before the first
// successful SetContext.
func (m *Manager) ActiveContext() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ""
	}
	return m.active.Name()
}

// SetContext switches the active context. An unknown name returns an
// *UnknownContextError with no state change. On success the transient held
// entries in the action cache are reset, analog entries are left untouched,
// and a context.changed event is published. Switching to the already-active
// context is a no-op and publishes nothing.
func (m *Manager) SetContext(name string) error {
	m.mu.Lock()
	ctx, ok := m.contexts[name]
	if !ok {
		m.mu.Unlock()
		return &UnknownContextError{Name: name}
	}
	if m.active == ctx {
		m.mu.Unlock()
		return nil
	}

	from := ""
	if m.active != nil {
		from = m.active.Name()
	}
	m.active = ctx
	for _, st := range m.states {
		if st.held {
			st.pressed = false
			st.value = 0
		}
	}
	m.mu.Unlock()

	m.logger.Debug("context switched", "from", from, "to", name)
	m.bus.Publish(event.TopicContextChanged, event.ContextChange{From: from, To: name})
	return nil
}

// AddBlocker registers a named blocker predicate at the given priority.
// Higher priorities are consulted first; equal priorities run in registration
// order. A nil predicate is ignored.
func (m *Manager) AddBlocker(name string, priority int, pred func() bool) {
	if pred == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blockerSeq++
	m.blockers = append(m.blockers, blockerEntry{
		name:     name,
		priority: priority,
		seq:      m.blockerSeq,
		pred:     pred,
	})
	sort.SliceStable(m.blockers, func(i, j int) bool {
		if m.blockers[i].priority != m.blockers[j].priority {
			return m.blockers[i].priority > m.blockers[j].priority
		}
		return m.blockers[i].seq < m.blockers[j].seq
	})
}

// HandleInput receives one normalized raw event from a source. The blocker
// chain runs first; the first predicate that holds consumes the event. An
// unblocked event is mapped through the active context, and a match triggers
// the bound action. Implements source.Sink.
func (m *Manager) HandleInput(ev raw.Event) {
	m.mu.Lock()
	blockers := make([]blockerEntry, len(m.blockers))
	copy(blockers, m.blockers)
	active := m.active
	m.mu.Unlock()

	for _, b := range blockers {
		if b.pred() {
			m.logger.Debug("event blocked", "blocker", b.name, "device", ev.EventDevice().String())
			return
		}
	}

	if active == nil {
		m.logger.Debug("event dropped, no active context", "device", ev.EventDevice().String())
		return
	}
	match, ok := active.Map(ev, binding.StateOf(ev))
	if !ok {
		return
	}
	m.trigger(match)
}

// trigger builds the action record from a match, runs pick enrichment,
// updates the state cache, and publishes. Cache update precedes publish, so
// a subscriber querying the manager sees state consistent with the event it
// is handling.
func (m *Manager) trigger(match binding.Match) {
	act := Action{
		Name:      match.Action,
		Value:     match.Value,
		HasValue:  match.HasValue,
		Delta:     match.Delta,
		HasDelta:  match.HasDelta,
		Pos:       match.Pos,
		HasPos:    match.HasPos,
		Mods:      match.Mods,
		Timestamp: m.clock(),
	}
	if match.Pick && match.HasPos && m.picker != nil {
		r := m.picker.Pick(match.Pos)
		act.Hit = &r
	}

	m.mu.Lock()
	st, ok := m.states[act.Name]
	if !ok {
		st = &actionState{}
		m.states[act.Name] = st
	}
	switch match.Edge {
	case binding.EdgeDown:
		st.pressed = true
		st.held = true
	case binding.EdgeUp:
		st.pressed = false
		st.held = true
	case binding.EdgeAnalog:
		st.held = false
	}
	if act.HasValue {
		st.value, st.hasValue = act.Value, true
	}
	if act.HasDelta {
		st.delta, st.hasDelta = act.Delta, true
	}
	st.updated = act.Timestamp
	m.mu.Unlock()

	m.bus.Publish(event.ActionTopic(act.Name), act)
}

// IsActionPressed reports whether the named action is currently in a pressed
// state. Unknown actions are not pressed.
func (m *Manager) IsActionPressed(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[name]
	return ok && st.pressed
}

// ActionValue returns the last value triggered for the named action, and
// whether one has been recorded.
func (m *Manager) ActionValue(name string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[name]
	if !ok || !st.hasValue {
		return 0, false
	}
	return st.value, true
}

// ActionDelta returns the last delta triggered for the named action, and
// whether one has been recorded.
func (m *Manager) ActionDelta(name string) (raw.Delta, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[name]
	if !ok || !st.hasDelta {
		return raw.Delta{}, false
	}
	return st.delta, true
}

// ClearActionState drops the cached entry for one action.
func (m *Manager) ClearActionState(name string) {
	m.mu.Lock()
	delete(m.states, name)
	m.mu.Unlock()
}

// ClearAllActionStates drops every cached entry. Hosts call this on focus
// loss, paired with the sources' ResetHeld.
func (m *Manager) ClearAllActionStates() {
	m.mu.Lock()
	m.states = make(map[string]*actionState)
	m.mu.Unlock()
}
