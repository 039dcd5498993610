package binding

import (
	"github.com/dshills/sceneinput/internal/raw"
)

// EdgeFilter selects which edges of a press/release pair a trigger fires on.
type EdgeFilter uint8

const (
	// EdgeBoth matches both the press and the release of the key or button,
	// producing a press match and an opposing release match for the same
	// action. This is the default so held-style actions end when the release
	// arrives.
	EdgeBoth EdgeFilter = iota
	// EdgePress matches only the press.
	EdgePress
	// EdgeRelease matches only the release.
	EdgeRelease
)

// String returns a string representation of the edge filter.
func (e EdgeFilter) String() string {
	switch e {
	case EdgePress:
		return "press"
	case EdgeRelease:
		return "release"
	default:
		return "both"
	}
}

// EdgeFilterFromName returns the EdgeFilter for a name and whether the name
// was recognized. The empty string means EdgeBoth.
func EdgeFilterFromName(name string) (EdgeFilter, bool) {
	switch name {
	case "", "both":
		return EdgeBoth, true
	case "press":
		return EdgePress, true
	case "release":
		return EdgeRelease, true
	default:
		return EdgeBoth, false
	}
}

// Trigger is a pattern over one raw event kind. The set of implementations is
// closed: KeyTrigger, ButtonTrigger, MoveTrigger, WheelTrigger and
// GestureTrigger. A trigger matches only events of its own kind.
type Trigger interface {
	// Match reports whether the trigger fires for the event and, for
	// press/release triggers, which edge fired.
	Match(ev raw.Event) (Edge, bool)

	// validate reports a human-readable reason the trigger is malformed, or
	// the empty string if it is well formed. Checked at registration, never
	// at dispatch.
	validate() string
}

// Edge classifies a trigger match for action-state bookkeeping.
type Edge uint8

const (
	// EdgeAnalog is a match with no press/release semantics (moves, wheel,
	// gestures other than long-press).
	EdgeAnalog Edge = iota
	// EdgeDown is a press-style match: the action becomes held.
	EdgeDown
	// EdgeUp is a release-style match: the action stops being held.
	EdgeUp
)

// KeyTrigger matches keyboard events for one key code.
type KeyTrigger struct {
	// Code is the normalized key code, e.g. "W", "Delete", "Escape".
	Code string

	// On filters which edges fire. Defaults to both.
	On EdgeFilter
}

// Match implements Trigger.
func (t KeyTrigger) Match(ev raw.Event) (Edge, bool) {
	k, ok := ev.(raw.Key)
	if !ok || k.Code != t.Code {
		return EdgeAnalog, false
	}
	switch k.Action {
	case raw.KeyPress:
		if t.On == EdgeRelease {
			return EdgeAnalog, false
		}
		return EdgeDown, true
	default:
		if t.On == EdgePress {
			return EdgeAnalog, false
		}
		return EdgeUp, true
	}
}

func (t KeyTrigger) validate() string {
	if t.Code == "" {
		return "key trigger requires a key code"
	}
	return ""
}

// ButtonTrigger matches pointer button events for one button.
type ButtonTrigger struct {
	Button raw.Button

	// On filters which edges fire. Defaults to both.
	On EdgeFilter

	// Clicks restricts the match to an exact consecutive click count: 2
	// matches only the second press of a double click. Zero matches any
	// count.
	Clicks int
}

// Match implements Trigger.
func (t ButtonTrigger) Match(ev raw.Event) (Edge, bool) {
	b, ok := ev.(raw.PointerButton)
	if !ok || b.Button != t.Button {
		return EdgeAnalog, false
	}
	if t.Clicks > 0 && b.Clicks != t.Clicks {
		return EdgeAnalog, false
	}
	switch b.Action {
	case raw.PointerPress:
		if t.On == EdgeRelease {
			return EdgeAnalog, false
		}
		return EdgeDown, true
	default:
		if t.On == EdgePress {
			return EdgeAnalog, false
		}
		return EdgeUp, true
	}
}

func (t ButtonTrigger) validate() string {
	if t.Button == raw.ButtonNone {
		return "button trigger requires a button"
	}
	if t.Clicks < 0 {
		return "button trigger click count must not be negative"
	}
	return ""
}

// MoveTrigger matches pointer movement. While is an any-of button set: the
// trigger fires when at least one listed button is held during the move. An
// empty While matches only moves with no buttons held, so tables can bind
// bare movement explicitly; moves never carry rotation semantics on their
// own.
type MoveTrigger struct {
	While raw.Buttons
}

// Match implements Trigger.
func (t MoveTrigger) Match(ev raw.Event) (Edge, bool) {
	m, ok := ev.(raw.PointerMove)
	if !ok {
		return EdgeAnalog, false
	}
	if t.While.IsEmpty() {
		return EdgeAnalog, m.Held.IsEmpty()
	}
	return EdgeAnalog, m.Held.HasAny(t.While)
}

func (MoveTrigger) validate() string { return "" }

// WheelTrigger matches scroll wheel events.
type WheelTrigger struct{}

// Match implements Trigger.
func (WheelTrigger) Match(ev raw.Event) (Edge, bool) {
	_, ok := ev.(raw.Wheel)
	return EdgeAnalog, ok
}

func (WheelTrigger) validate() string { return "" }

// AnyTrigger matches when any of its alternatives matches, in order. It lets
// one action keep a single table entry while answering to several physical
// patterns (e.g. context menu on right click, long press, or a second touch
// contact) without violating action-name uniqueness.
type AnyTrigger struct {
	Of []Trigger
}

// OneOf builds an AnyTrigger from its alternatives.
func OneOf(triggers ...Trigger) AnyTrigger {
	return AnyTrigger{Of: triggers}
}

// Match implements Trigger.
func (t AnyTrigger) Match(ev raw.Event) (Edge, bool) {
	for _, alt := range t.Of {
		if edge, ok := alt.Match(ev); ok {
			return edge, true
		}
	}
	return EdgeAnalog, false
}

func (t AnyTrigger) validate() string {
	if len(t.Of) == 0 {
		return "one-of trigger requires at least one alternative"
	}
	for _, alt := range t.Of {
		if alt == nil {
			return "one-of trigger contains a nil alternative"
		}
		if reason := alt.validate(); reason != "" {
			return reason
		}
	}
	return ""
}

// GestureTrigger matches one synthesized touch gesture kind.
type GestureTrigger struct {
	Gesture raw.GestureKind
}

// Match implements Trigger.
func (t GestureTrigger) Match(ev raw.Event) (Edge, bool) {
	g, ok := ev.(raw.Gesture)
	return EdgeAnalog, ok && g.Kind == t.Gesture
}

func (t GestureTrigger) validate() string {
	if t.Gesture > raw.GestureLongPress {
		return "gesture trigger references an unknown gesture kind"
	}
	return ""
}
