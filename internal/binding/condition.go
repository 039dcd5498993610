package binding

import (
	"sort"
	"sync"

	"github.com/dshills/sceneinput/internal/raw"
)

// State is the modifier and held-button snapshot a guard condition is
// evaluated against.
type State struct {
	Held raw.Buttons
	Mods raw.Modifiers
}

// StateOf derives the guard state from a raw event.
func StateOf(ev raw.Event) State {
	switch e := ev.(type) {
	case raw.Key:
		return State{Mods: e.Mods}
	case raw.PointerButton:
		return State{Held: e.Held, Mods: e.Mods}
	case raw.PointerMove:
		return State{Held: e.Held, Mods: e.Mods}
	case raw.Wheel:
		return State{Mods: e.Mods}
	case raw.Gesture:
		return State{Mods: e.Mods}
	default:
		return State{}
	}
}

// Condition is a named, pure guard predicate over the current held-button and
// modifier state. Purity is a contract: a Test must not read or write
// anything outside its arguments, so mapping stays deterministic and
// replayable.
type Condition struct {
	Name string
	Test func(State) bool
}

// Holds evaluates the condition. A zero-value condition always holds.
func (c Condition) Holds(st State) bool {
	if c.Test == nil {
		return true
	}
	return c.Test(st)
}

// Built-in conditions referenced by name from loaders.
var (
	// CondShift holds while Shift is held.
	CondShift = Condition{Name: "shift", Test: func(st State) bool { return st.Mods.HasShift() }}

	// CondCtrl holds while Control is held.
	CondCtrl = Condition{Name: "ctrl", Test: func(st State) bool { return st.Mods.HasCtrl() }}

	// CondAlt holds while Alt is held.
	CondAlt = Condition{Name: "alt", Test: func(st State) bool { return st.Mods.HasAlt() }}

	// CondMeta holds while Meta is held.
	CondMeta = Condition{Name: "meta", Test: func(st State) bool { return st.Mods.HasMeta() }}

	// CondNoMods holds while no modifiers are held.
	CondNoMods = Condition{Name: "no-mods", Test: func(st State) bool { return st.Mods.IsEmpty() }}

	// CondNoButtons holds while no pointer buttons are held.
	CondNoButtons = Condition{Name: "no-buttons", Test: func(st State) bool { return st.Held.IsEmpty() }}
)

// HeldCondition builds a condition that holds while the given button is held.
func HeldCondition(b raw.Button) Condition {
	return Condition{
		Name: "held:" + b.String(),
		Test: func(st State) bool { return st.Held.Has(b) },
	}
}

// conditionRegistry maps condition names to conditions for loader lookup.
type conditionRegistry struct {
	mu     sync.RWMutex
	byName map[string]Condition
}

var conditions = &conditionRegistry{byName: map[string]Condition{}}

func init() {
	for _, c := range []Condition{CondShift, CondCtrl, CondAlt, CondMeta, CondNoMods, CondNoButtons} {
		conditions.byName[c.Name] = c
	}
	for _, b := range []raw.Button{raw.ButtonLeft, raw.ButtonMiddle, raw.ButtonRight, raw.ButtonAltLeft} {
		c := HeldCondition(b)
		conditions.byName[c.Name] = c
	}
}

// RegisterCondition makes a named condition available to binding loaders.
// Registering an existing name replaces it.
func RegisterCondition(c Condition) {
	conditions.mu.Lock()
	defer conditions.mu.Unlock()
	conditions.byName[c.Name] = c
}

// LookupCondition returns the condition registered under name.
func LookupCondition(name string) (Condition, bool) {
	conditions.mu.RLock()
	defer conditions.mu.RUnlock()
	c, ok := conditions.byName[name]
	return c, ok
}

// ConditionNames returns the sorted names of all registered conditions.
func ConditionNames() []string {
	conditions.mu.RLock()
	defer conditions.mu.RUnlock()
	names := make([]string, 0, len(conditions.byName))
	for name := range conditions.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
