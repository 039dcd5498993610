package source

import (
	"sync"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/dshills/sceneinput/internal/raw"
)

const (
	// defaultDoubleClickWindow bounds the gap between presses that chain
	// into a multi-click.
	defaultDoubleClickWindow = 300 * time.Millisecond

	// doubleClickRadius is how far, in host pixels, consecutive presses may
	// land apart and still chain.
	doubleClickRadius = 4.0
)

// pressRecord remembers how a physical press was reported so the release
// resolves identically.
type pressRecord struct {
	reported raw.Button
	clicks   int
}

// clickRecord is the most recent press, used to chain multi-clicks.
type clickRecord struct {
	button raw.Button
	pos    raw.Position
	at     time.Time
	count  int
}

// Pointer normalizes host mouse callbacks. It tracks which buttons are held
// and stamps that set on every event, so binding tables can tell "button held
// while moving" from plain movement; unheld moves are still forwarded and
// carry no rotation semantics of their own.
//
// Pressing left with Alt held is reported as the virtual alt-left button for
// the whole press, making it bindable interchangeably with middle.
//
// Consecutive presses of the same button within the double-click window and
// radius chain into a click count carried on the event, so tables can bind
// double clicks distinctly from single ones.
type Pointer struct {
	device

	// physical maps the physical button that went down to how it was
	// reported, so the release resolves the same way regardless of whether
	// Alt is still held by then.
	physical map[raw.Button]pressRecord

	held    mapset.Set[raw.Button]
	last    raw.Position
	hasLast bool

	now       func() time.Time
	lastClick clickRecord

	// mu guards the tunables, which a config reload may adjust from another
	// goroutine.
	mu          sync.Mutex
	wheelStep   float64
	clickWindow time.Duration
}

// NewPointer creates a pointer source forwarding into sink.
func NewPointer(name string, sink Sink) *Pointer {
	return &Pointer{
		device:      newDevice(name, sink),
		physical:    make(map[raw.Button]pressRecord, 4),
		held:        mapset.New[raw.Button](),
		now:         time.Now,
		wheelStep:   1,
		clickWindow: defaultDoubleClickWindow,
	}
}

// SetWheelStep sets the factor scaling one host wheel notch into the
// forwarded scroll delta. Zero is ignored; negative inverts scrolling.
func (p *Pointer) SetWheelStep(step float64) {
	if step == 0 {
		return
	}
	p.mu.Lock()
	p.wheelStep = step
	p.mu.Unlock()
}

// SetDoubleClickWindow sets the maximum gap between presses that chain into
// a multi-click. Non-positive values are ignored.
func (p *Pointer) SetDoubleClickWindow(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	p.clickWindow = d
	p.mu.Unlock()
}

// ButtonDown reports a host button-press callback.
func (p *Pointer) ButtonDown(b raw.Button, pos raw.Position, mods raw.Modifiers) {
	if !p.Enabled() || b == raw.ButtonNone {
		return
	}
	if _, down := p.physical[b]; down {
		return
	}

	reported := b
	if b == raw.ButtonLeft && mods.HasAlt() {
		reported = raw.ButtonAltLeft
	}
	clicks := p.countClick(reported, pos)
	p.physical[b] = pressRecord{reported: reported, clicks: clicks}
	p.held.Put(reported)
	p.last, p.hasLast = pos, true

	p.forward(raw.PointerButton{
		Action: raw.PointerPress,
		Button: reported,
		Pos:    pos,
		Held:   p.heldSet(),
		Mods:   mods,
		Clicks: clicks,
	})
}

// ButtonUp reports a host button-release callback. The release is reported
// as whatever the press was reported as, including its click count.
func (p *Pointer) ButtonUp(b raw.Button, pos raw.Position, mods raw.Modifiers) {
	if !p.Enabled() {
		return
	}
	rec, down := p.physical[b]
	if !down {
		return
	}
	delete(p.physical, b)
	p.held.Remove(rec.reported)
	p.last, p.hasLast = pos, true

	p.forward(raw.PointerButton{
		Action: raw.PointerRelease,
		Button: rec.reported,
		Pos:    pos,
		Held:   p.heldSet(),
		Mods:   mods,
		Clicks: rec.clicks,
	})
}

// MoveTo reports a host move callback, computing the delta from the previous
// position.
func (p *Pointer) MoveTo(pos raw.Position, mods raw.Modifiers) {
	if !p.Enabled() {
		return
	}
	var delta raw.Delta
	if p.hasLast {
		delta = pos.Sub(p.last)
	}
	p.last = pos
	p.hasLast = true

	p.forward(raw.PointerMove{
		Pos:   pos,
		Delta: delta,
		Held:  p.heldSet(),
		Mods:  mods,
	})
}

// WheelBy reports a host scroll callback. The host delta is scaled by the
// configured wheel step.
func (p *Pointer) WheelBy(delta raw.Delta, pos raw.Position, mods raw.Modifiers) {
	if !p.Enabled() || delta.IsZero() {
		return
	}
	p.mu.Lock()
	step := p.wheelStep
	p.mu.Unlock()
	if step != 1 {
		delta = raw.Delta{X: delta.X * step, Y: delta.Y * step}
	}
	p.forward(raw.Wheel{Delta: delta, Pos: pos, Mods: mods})
}

// Held returns the currently held button set.
func (p *Pointer) Held() raw.Buttons {
	return p.heldSet()
}

// ResetHeld forgets all held buttons without emitting releases; used on
// focus loss when the matching button-up events will never arrive. The click
// chain is forgotten too, so the first press after refocus is a lone click.
func (p *Pointer) ResetHeld() {
	p.physical = make(map[raw.Button]pressRecord, 4)
	p.held = mapset.New[raw.Button]()
	p.lastClick = clickRecord{}
}

// countClick extends or restarts the click chain for a press of the reported
// button at pos, returning the press's click count.
func (p *Pointer) countClick(reported raw.Button, pos raw.Position) int {
	p.mu.Lock()
	window := p.clickWindow
	p.mu.Unlock()

	at := p.now()
	count := 1
	if reported == p.lastClick.button &&
		at.Sub(p.lastClick.at) <= window &&
		pos.Distance(p.lastClick.pos) <= doubleClickRadius {
		count = p.lastClick.count + 1
	}
	p.lastClick = clickRecord{button: reported, pos: pos, at: at, count: count}
	return count
}

// heldSet snapshots the mutable tracking set into an immutable bitmask.
func (p *Pointer) heldSet() raw.Buttons {
	var s raw.Buttons
	p.held.Each(func(b raw.Button) {
		s = s.With(b)
	})
	return s
}
