package raw

// Device identifies the physical source of an event.
type Device uint8

const (
	// DeviceUnknown indicates an unrecognized device.
	DeviceUnknown Device = iota
	// DeviceKeyboard indicates a keyboard.
	DeviceKeyboard
	// DevicePointer indicates a mouse or other pointing device.
	DevicePointer
	// DeviceTouch indicates a touch surface.
	DeviceTouch
)

// String returns a string representation of the device.
func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "keyboard"
	case DevicePointer:
		return "pointer"
	case DeviceTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// Position is a screen coordinate in host pixels.
type Position struct {
	X float64
	Y float64
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Distance returns the Manhattan distance (|dx| + |dy|) between two positions.
// Manhattan distance is sufficient for jitter and proximity thresholds and
// avoids a square root on the per-move path.
func (p Position) Distance(other Position) float64 {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Sub returns the delta from other to p.
func (p Position) Sub(other Position) Delta {
	return Delta{X: p.X - other.X, Y: p.Y - other.Y}
}

// Delta is a relative movement in host pixels, or a scroll amount for wheel
// events (Y positive scrolling up).
type Delta struct {
	X float64
	Y float64
}

// IsZero returns true if the delta has no movement on either axis.
func (d Delta) IsZero() bool {
	return d.X == 0 && d.Y == 0
}
