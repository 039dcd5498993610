package raw

import "strings"

// Button identifies a single pointer button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = 0

	// ButtonLeft is the primary (left) pointer button.
	ButtonLeft Button = 1 << iota

	// ButtonMiddle is the middle pointer button (wheel click).
	ButtonMiddle

	// ButtonRight is the secondary (right) pointer button.
	ButtonRight

	// ButtonAltLeft is the virtual button reported when the left button is
	// pressed with Alt held. It exists so binding tables can treat alt+left
	// interchangeably with middle on hardware that lacks a middle button.
	ButtonAltLeft
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonAltLeft:
		return "alt-left"
	default:
		return "none"
	}
}

// ButtonFromName returns the Button for a given name (case-insensitive).
// Returns ButtonNone if the name is not recognized.
func ButtonFromName(name string) Button {
	switch strings.ToLower(name) {
	case "left":
		return ButtonLeft
	case "middle":
		return ButtonMiddle
	case "right":
		return ButtonRight
	case "alt-left", "altleft":
		return ButtonAltLeft
	default:
		return ButtonNone
	}
}

// Buttons is a set of pointer buttons, attached to pointer events as an
// immutable snapshot of what was held when the event fired.
type Buttons uint8

// NoButtons is the empty held-button set.
const NoButtons Buttons = 0

// ButtonSet builds a Buttons set from individual buttons.
func ButtonSet(buttons ...Button) Buttons {
	var s Buttons
	for _, b := range buttons {
		s |= Buttons(b)
	}
	return s
}

// Has returns true if the set contains the given button.
func (s Buttons) Has(b Button) bool {
	return s&Buttons(b) != 0
}

// HasAny returns true if the set contains any button from other.
func (s Buttons) HasAny(other Buttons) bool {
	return s&other != 0
}

// HasAll returns true if the set contains every button in other.
func (s Buttons) HasAll(other Buttons) bool {
	return s&other == other
}

// With returns a new set with the given button added.
func (s Buttons) With(b Button) Buttons {
	return s | Buttons(b)
}

// Without returns a new set with the given button removed.
func (s Buttons) Without(b Button) Buttons {
	return s &^ Buttons(b)
}

// IsEmpty returns true if no buttons are held.
func (s Buttons) IsEmpty() bool {
	return s == 0
}

// String returns a "+"-joined list of held button names.
func (s Buttons) String() string {
	if s == 0 {
		return ""
	}
	var parts []string
	for _, b := range []Button{ButtonLeft, ButtonMiddle, ButtonRight, ButtonAltLeft} {
		if s.Has(b) {
			parts = append(parts, b.String())
		}
	}
	return strings.Join(parts, "+")
}
