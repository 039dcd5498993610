package manager

import (
	"time"

	"github.com/dshills/sceneinput/internal/pick"
	"github.com/dshills/sceneinput/internal/raw"
)

// Action is the record published when a binding fires. It is the payload of
// every "action.<name>" event and the unit the state cache is built from.
type Action struct {
	// Name is the bound action name.
	Name string

	// Value is the press or analog value, when the match carried one.
	Value    float64
	HasValue bool

	// Delta is the movement or scroll delta, when present.
	Delta    raw.Delta
	HasDelta bool

	// Pos is the screen position, when present.
	Pos    raw.Position
	HasPos bool

	// Hit is the scene-pick result, filled only for bindings that requested
	// enrichment and only when a picker is installed.
	Hit *pick.Result

	// Mods are the modifiers held when the source event fired.
	Mods raw.Modifiers

	// Timestamp is when the manager triggered the action.
	Timestamp time.Time
}

// actionState is one cached entry in the manager's query table.
type actionState struct {
	pressed bool

	value    float64
	hasValue bool

	delta    raw.Delta
	hasDelta bool

	// held marks entries last written by a press/release edge. A context
	// switch resets these and leaves analog entries alone.
	held bool

	updated time.Time
}
