package raw

// Event is the normalized form of one physical device signal. It is a closed
// set: the only implementations are the types in this package, one per event
// kind, each carrying only the fields that kind defines.
type Event interface {
	// EventDevice returns the device class that produced the event.
	EventDevice() Device

	// isEvent seals the interface to this package.
	isEvent()
}

// KeyAction distinguishes key presses from releases.
type KeyAction uint8

const (
	// KeyPress indicates a key went down.
	KeyPress KeyAction = iota
	// KeyRelease indicates a key came up.
	KeyRelease
)

// String returns a string representation of the key action.
func (a KeyAction) String() string {
	if a == KeyRelease {
		return "release"
	}
	return "press"
}

// Key is a keyboard press or release. Sources suppress auto-repeat: exactly
// one KeyPress is emitted per physical press, until release.
type Key struct {
	Action KeyAction
	Code   string
	Mods   Modifiers
}

// EventDevice returns DeviceKeyboard.
func (Key) EventDevice() Device { return DeviceKeyboard }

func (Key) isEvent() {}

// PointerAction distinguishes pointer button presses from releases.
type PointerAction uint8

const (
	// PointerPress indicates a button went down.
	PointerPress PointerAction = iota
	// PointerRelease indicates a button came up.
	PointerRelease
)

// String returns a string representation of the pointer action.
func (a PointerAction) String() string {
	if a == PointerRelease {
		return "release"
	}
	return "press"
}

// PointerButton is a pointer button press or release. Held is the full set of
// buttons held after this event was applied. Clicks counts consecutive
// presses of the same button within the source's double-click window: 1 for
// a lone press, 2 for a double click; the matching release carries the same
// count.
type PointerButton struct {
	Action PointerAction
	Button Button
	Pos    Position
	Held   Buttons
	Mods   Modifiers
	Clicks int
}

// EventDevice returns DevicePointer.
func (PointerButton) EventDevice() Device { return DevicePointer }

func (PointerButton) isEvent() {}

// PointerMove is pointer movement. Held carries the buttons held during the
// move; a move with an empty held set is still forwarded so binding tables
// can explicitly choose whether unheld movement means anything.
type PointerMove struct {
	Pos   Position
	Delta Delta
	Held  Buttons
	Mods  Modifiers
}

// EventDevice returns DevicePointer.
func (PointerMove) EventDevice() Device { return DevicePointer }

func (PointerMove) isEvent() {}

// Wheel is a scroll wheel tick. Delta.Y is positive when scrolling up.
type Wheel struct {
	Delta Delta
	Pos   Position
	Mods  Modifiers
}

// EventDevice returns DevicePointer.
func (Wheel) EventDevice() Device { return DevicePointer }

func (Wheel) isEvent() {}

// GestureKind identifies a synthesized touch gesture.
type GestureKind uint8

const (
	// GesturePan is single-contact movement.
	GesturePan GestureKind = iota
	// GesturePinch is a two-contact spread or squeeze, with a scale delta.
	GesturePinch
	// GestureTwoFingerPan is two contacts moving together.
	GestureTwoFingerPan
	// GestureTwoFingerDown fires once when a second contact lands while the
	// first is still tracked. The position is the second contact's.
	GestureTwoFingerDown
	// GestureLongPress fires once when a single contact stays near-stationary
	// past the configured threshold.
	GestureLongPress
)

// String returns a string representation of the gesture kind.
func (k GestureKind) String() string {
	switch k {
	case GesturePan:
		return "pan"
	case GesturePinch:
		return "pinch"
	case GestureTwoFingerPan:
		return "two-finger-pan"
	case GestureTwoFingerDown:
		return "two-finger-down"
	case GestureLongPress:
		return "long-press"
	default:
		return "unknown"
	}
}

// GestureKindFromName returns the GestureKind for a given name and whether
// the name was recognized.
func GestureKindFromName(name string) (GestureKind, bool) {
	switch name {
	case "pan":
		return GesturePan, true
	case "pinch":
		return GesturePinch, true
	case "two-finger-pan":
		return GestureTwoFingerPan, true
	case "two-finger-down":
		return GestureTwoFingerDown, true
	case "long-press":
		return GestureLongPress, true
	default:
		return GesturePan, false
	}
}

// Gesture is a synthesized higher-level touch event. Scale is the
// multiplicative spread change for pinch gestures (1.0 = no change) and zero
// otherwise. Contacts is the number of live contacts when the gesture fired.
type Gesture struct {
	Kind     GestureKind
	Pos      Position
	Delta    Delta
	Scale    float64
	Contacts int
	Mods     Modifiers
}

// EventDevice returns DeviceTouch.
func (Gesture) EventDevice() Device { return DeviceTouch }

func (Gesture) isEvent() {}
