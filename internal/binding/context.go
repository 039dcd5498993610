package binding

import (
	"strconv"
	"sync"

	"github.com/dshills/sceneinput/internal/raw"
)

// Match is the result of mapping a raw event through a context's table. It is
// a transient value consumed by the manager to build and publish an Action.
type Match struct {
	// Action is the matched binding's action name.
	Action string

	// Edge classifies the match for action-state bookkeeping.
	Edge Edge

	// Value is the analog or press value, when the event kind carries one.
	Value    float64
	HasValue bool

	// Delta is the movement or scroll delta, when present.
	Delta    raw.Delta
	HasDelta bool

	// Pos is the screen position, when present.
	Pos    raw.Position
	HasPos bool

	// Pick is true if the binding requested scene-pick enrichment.
	Pick bool

	// Mods are the modifiers held when the event fired.
	Mods raw.Modifiers
}

// Context is a named, ordered binding table representing one interaction mode
// (e.g. viewing vs editing). The table is the context's only state; mapping
// is a pure function of the event and guard state, so identical input against
// an unchanged table yields identical actions.
type Context struct {
	name string

	mu       sync.RWMutex
	bindings []Binding
}

// NewContext creates a context from an ordered binding list. The table is
// validated; the first malformed binding aborts construction with an
// *InvalidBindingError.
func NewContext(name string, bindings ...Binding) (*Context, error) {
	if err := validateTable(name, bindings); err != nil {
		return nil, err
	}
	return &Context{name: name, bindings: bindings}, nil
}

// MustContext is NewContext for built-in tables that are known valid.
func MustContext(name string, bindings ...Binding) *Context {
	c, err := NewContext(name, bindings...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the context's registered name.
func (c *Context) Name() string {
	return c.name
}

// Bindings returns a copy of the current table.
func (c *Context) Bindings() []Binding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Binding, len(c.bindings))
	copy(out, c.bindings)
	return out
}

// SetBindings swaps the binding table at runtime. The new table is validated
// first; on error the existing table is untouched. Swapping never
// reinterprets actions that were already triggered.
func (c *Context) SetBindings(bindings []Binding) error {
	if err := validateTable(c.name, bindings); err != nil {
		return err
	}
	c.mu.Lock()
	c.bindings = bindings
	c.mu.Unlock()
	return nil
}

// Map resolves a raw event to a match by scanning the table in registration
// order. The first binding whose trigger matches the event and whose guard
// holds against st wins. Returns false if nothing matched.
func (c *Context) Map(ev raw.Event, st State) (Match, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, b := range c.bindings {
		edge, ok := b.Trigger.Match(ev)
		if !ok {
			continue
		}
		if !b.Condition.Holds(st) {
			continue
		}
		return buildMatch(b, edge, ev), true
	}
	return Match{}, false
}

// buildMatch fills the match payload from the event case that fired.
func buildMatch(b Binding, edge Edge, ev raw.Event) Match {
	m := Match{
		Action: b.Action,
		Edge:   edge,
		Pick:   b.Pick,
	}

	switch e := ev.(type) {
	case raw.Key:
		m.Mods = e.Mods
		m.Value, m.HasValue = pressValue(b, edge), true
	case raw.PointerButton:
		m.Mods = e.Mods
		m.Pos, m.HasPos = e.Pos, true
		m.Value, m.HasValue = pressValue(b, edge), true
	case raw.PointerMove:
		m.Mods = e.Mods
		m.Pos, m.HasPos = e.Pos, true
		m.Delta, m.HasDelta = e.Delta, true
	case raw.Wheel:
		m.Mods = e.Mods
		m.Pos, m.HasPos = e.Pos, true
		m.Delta, m.HasDelta = e.Delta, true
		m.Value, m.HasValue = e.Delta.Y, true
	case raw.Gesture:
		m.Mods = e.Mods
		m.Pos, m.HasPos = e.Pos, true
		if !e.Delta.IsZero() {
			m.Delta, m.HasDelta = e.Delta, true
		}
		if e.Kind == raw.GesturePinch {
			m.Value, m.HasValue = e.Scale, true
		}
	}

	return m
}

// pressValue returns the value for a discrete press/release match: the
// binding's fixed value on press (default 1), zero on release.
func pressValue(b Binding, edge Edge) float64 {
	if edge == EdgeUp {
		return 0
	}
	if b.Value != nil {
		return *b.Value
	}
	return 1
}

// validateTable checks a binding table for registration-time errors: empty or
// duplicate action names and kind-inconsistent trigger fields.
func validateTable(ctxName string, bindings []Binding) error {
	seen := make(map[string]int, len(bindings))
	for i, b := range bindings {
		if b.Action == "" {
			return &InvalidBindingError{Context: ctxName, Index: i, Reason: "empty action name"}
		}
		if b.Trigger == nil {
			return &InvalidBindingError{Context: ctxName, Index: i, Action: b.Action, Reason: "nil trigger"}
		}
		if reason := b.Trigger.validate(); reason != "" {
			return &InvalidBindingError{Context: ctxName, Index: i, Action: b.Action, Reason: reason}
		}
		if prev, dup := seen[b.Action]; dup {
			return &InvalidBindingError{
				Context: ctxName, Index: i, Action: b.Action,
				Reason: "duplicate of binding " + strconv.Itoa(prev),
			}
		}
		seen[b.Action] = i
	}
	return nil
}
