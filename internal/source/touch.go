package source

import (
	"math"
	"sync"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/dshills/sceneinput/internal/raw"
)

// TouchConfig configures gesture synthesis thresholds.
type TouchConfig struct {
	// LongPressDelay is how long a single contact must stay near-stationary
	// before a long-press fires.
	LongPressDelay time.Duration

	// JitterTolerance is the Manhattan distance, in host pixels, a contact
	// may drift while still counting as stationary.
	JitterTolerance float64

	// Timers schedules the long-press callback. Defaults to AfterFunc.
	Timers TimerFactory
}

// DefaultTouchConfig returns the default gesture thresholds.
func DefaultTouchConfig() TouchConfig {
	return TouchConfig{
		LongPressDelay:  500 * time.Millisecond,
		JitterTolerance: 8,
		Timers:          AfterFunc,
	}
}

// contact is one live touch point.
type contact struct {
	start raw.Position
	pos   raw.Position
}

// Touch synthesizes higher-level gestures from raw multi-contact streams:
// single-contact pan, two-contact pinch and pan, and a time-bounded
// long-press. A second contact landing while the first is tracked promotes
// the stream to a two-finger gesture; it is never treated as two independent
// single touches.
type Touch struct {
	device
	cfg TouchConfig

	// mu guards gesture state against the long-press timer callback, the one
	// asynchronous entry point into this source.
	mu sync.Mutex

	contacts map[int]*contact
	ids      mapset.Set[int]
	firstID  int

	panning    bool
	pressTimer Timer
	pressFired bool

	prevDist     float64
	prevCentroid raw.Position
}

// NewTouch creates a touch source forwarding into sink.
func NewTouch(name string, sink Sink, cfg TouchConfig) *Touch {
	if cfg.LongPressDelay <= 0 {
		cfg.LongPressDelay = DefaultTouchConfig().LongPressDelay
	}
	if cfg.JitterTolerance <= 0 {
		cfg.JitterTolerance = DefaultTouchConfig().JitterTolerance
	}
	if cfg.Timers == nil {
		cfg.Timers = AfterFunc
	}
	return &Touch{
		device:   newDevice(name, sink),
		cfg:      cfg,
		contacts: make(map[int]*contact, 4),
		ids:      mapset.New[int](),
	}
}

// ContactDown reports a new touch contact.
func (t *Touch) ContactDown(id int, pos raw.Position) {
	if !t.Enabled() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ids.Has(id) {
		return
	}
	before := len(t.contacts)
	t.contacts[id] = &contact{start: pos, pos: pos}
	t.ids.Put(id)

	switch before {
	case 0:
		t.firstID = id
		t.panning = false
		t.pressFired = false
		t.armLongPress(id)
	case 1:
		// Second contact while the first is tracked: this is now a
		// two-finger stream, not two single touches.
		t.cancelLongPress()
		t.rebaselineTwo()
		t.forward(raw.Gesture{
			Kind:     raw.GestureTwoFingerDown,
			Pos:      pos,
			Contacts: 2,
		})
	}
}

// ContactMove reports movement of a live contact.
func (t *Touch) ContactMove(id int, pos raw.Position) {
	if !t.Enabled() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.contacts[id]
	if !ok {
		return
	}
	prev := c.pos
	c.pos = pos

	switch len(t.contacts) {
	case 1:
		t.singleMove(c, prev, pos)
	case 2:
		t.twoFingerMove()
	}
}

// ContactUp reports a contact lifting.
func (t *Touch) ContactUp(id int) {
	if !t.Enabled() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.ids.Has(id) {
		return
	}
	delete(t.contacts, id)
	t.ids.Remove(id)

	switch len(t.contacts) {
	case 0:
		// Release before the threshold cancels the pending long-press with
		// no event.
		t.cancelLongPress()
		t.panning = false
		t.pressFired = false
	case 1:
		// Back to one finger: continue as a pan without re-arming the
		// long-press, since the remaining contact is not a fresh press.
		for rem := range t.contacts {
			t.firstID = rem
		}
		t.panning = true
	case 2:
		t.rebaselineTwo()
	}
}

// SetThresholds adjusts the long-press delay and jitter tolerance at
// runtime. In-flight gestures keep the thresholds they started with.
func (t *Touch) SetThresholds(longPress time.Duration, jitter float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if longPress > 0 {
		t.cfg.LongPressDelay = longPress
	}
	if jitter > 0 {
		t.cfg.JitterTolerance = jitter
	}
}

// Reset forgets all contacts and pending timers; used on focus loss.
func (t *Touch) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancelLongPress()
	t.contacts = make(map[int]*contact, 4)
	t.ids = mapset.New[int]()
	t.panning = false
	t.pressFired = false
}

// singleMove handles one-finger movement: cancel the long-press once the
// contact drifts past the jitter tolerance, then pan.
func (t *Touch) singleMove(c *contact, prev, pos raw.Position) {
	if !t.panning && c.start.Distance(pos) > t.cfg.JitterTolerance {
		t.cancelLongPress()
		t.panning = true
	}
	if !t.panning {
		return
	}
	delta := pos.Sub(prev)
	if delta.IsZero() {
		return
	}
	t.forward(raw.Gesture{
		Kind:     raw.GesturePan,
		Pos:      pos,
		Delta:    delta,
		Contacts: 1,
	})
}

// twoFingerMove classifies two-finger movement as pinch or pan by whichever
// dominates this update: spread change or centroid travel.
func (t *Touch) twoFingerMove() {
	dist, centroid := t.spread()
	spreadDelta := dist - t.prevDist
	panDelta := centroid.Sub(t.prevCentroid)

	defer func() {
		t.prevDist = dist
		t.prevCentroid = centroid
	}()

	if math.Abs(spreadDelta) >= math.Abs(panDelta.X)+math.Abs(panDelta.Y) {
		if t.prevDist <= 0 || spreadDelta == 0 {
			return
		}
		t.forward(raw.Gesture{
			Kind:     raw.GesturePinch,
			Pos:      centroid,
			Scale:    dist / t.prevDist,
			Contacts: 2,
		})
		return
	}
	if panDelta.IsZero() {
		return
	}
	t.forward(raw.Gesture{
		Kind:     raw.GestureTwoFingerPan,
		Pos:      centroid,
		Delta:    panDelta,
		Contacts: 2,
	})
}

// spread returns the distance between the two live contacts and their
// centroid.
func (t *Touch) spread() (float64, raw.Position) {
	pts := make([]raw.Position, 0, 2)
	for _, c := range t.contacts {
		pts = append(pts, c.pos)
	}
	if len(pts) < 2 {
		return 0, raw.Position{}
	}
	dx := pts[0].X - pts[1].X
	dy := pts[0].Y - pts[1].Y
	dist := math.Hypot(dx, dy)
	centroid := raw.Position{X: (pts[0].X + pts[1].X) / 2, Y: (pts[0].Y + pts[1].Y) / 2}
	return dist, centroid
}

// rebaselineTwo snapshots the current spread and centroid so the next move
// measures against it.
func (t *Touch) rebaselineTwo() {
	t.prevDist, t.prevCentroid = t.spread()
}

// armLongPress schedules the long-press callback for the contact that just
// landed.
func (t *Touch) armLongPress(id int) {
	t.cancelLongPress()
	t.pressTimer = t.cfg.Timers(t.cfg.LongPressDelay, func() {
		t.firePress(id)
	})
}

// cancelLongPress stops any pending long-press callback.
func (t *Touch) cancelLongPress() {
	if t.pressTimer != nil {
		t.pressTimer.Stop()
		t.pressTimer = nil
	}
}

// firePress emits the long-press gesture if the contact is still the only
// one, still within the jitter tolerance, and has not fired before. The
// gesture is forwarded after the lock is released, so a sink may call back
// into this source without deadlocking the timer goroutine.
func (t *Touch) firePress(id int) {
	t.mu.Lock()
	c, ok := t.contacts[id]
	if !ok || len(t.contacts) != 1 || t.pressFired || t.panning ||
		c.start.Distance(c.pos) > t.cfg.JitterTolerance {
		t.mu.Unlock()
		return
	}
	t.pressFired = true
	t.pressTimer = nil
	pos := c.pos
	t.mu.Unlock()

	t.forward(raw.Gesture{
		Kind:     raw.GestureLongPress,
		Pos:      pos,
		Contacts: 1,
	})
}
