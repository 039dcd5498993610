// Package ebitenhost feeds the core sources from Ebitengine's polled input
// state. Ebitengine exposes input as per-frame snapshots rather than
// callbacks, so the host diffs the snapshot each tick and synthesizes the
// down/up/move calls the sources expect.
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dshills/sceneinput/internal/raw"
	"github.com/dshills/sceneinput/internal/source"
)

// mouseButtons maps Ebitengine buttons to their raw equivalents.
var mouseButtons = []struct {
	host ebiten.MouseButton
	raw  raw.Button
}{
	{ebiten.MouseButtonLeft, raw.ButtonLeft},
	{ebiten.MouseButtonMiddle, raw.ButtonMiddle},
	{ebiten.MouseButtonRight, raw.ButtonRight},
}

// Host polls Ebitengine input each tick and drives the keyboard, pointer,
// and touch sources. Call Poll from the game's Update.
type Host struct {
	keyboard *source.Keyboard
	pointer  *source.Pointer
	touch    *source.Touch

	// reused append buffers
	keys     []ebiten.Key
	touchIDs []ebiten.TouchID

	cursorX, cursorY int
	cursorSeen       bool
}

// New creates a host driving the given sources. Any of them may be nil to
// skip that device.
func New(keyboard *source.Keyboard, pointer *source.Pointer, touch *source.Touch) *Host {
	return &Host{keyboard: keyboard, pointer: pointer, touch: touch}
}

// Poll reads this tick's input snapshot and forwards the differences.
func (h *Host) Poll() {
	mods := h.modifiers()
	h.pollKeys(mods)
	h.pollMouse(mods)
	h.pollTouches()
}

// Reset clears held-state tracking in the driven sources; call on window
// focus loss, when release events will never be observed.
func (h *Host) Reset() {
	if h.keyboard != nil {
		h.keyboard.ResetHeld()
	}
	if h.pointer != nil {
		h.pointer.ResetHeld()
	}
	if h.touch != nil {
		h.touch.Reset()
	}
}

// modifiers reads the current modifier keys. Ebitengine's virtual modifier
// keys cover both left and right variants.
func (h *Host) modifiers() raw.Modifiers {
	var mods raw.Modifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods = mods.With(raw.ModShift)
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods = mods.With(raw.ModCtrl)
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods = mods.With(raw.ModAlt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods = mods.With(raw.ModMeta)
	}
	return mods
}

// pollKeys forwards this tick's key transitions. Key codes are Ebitengine's
// names ("W", "ArrowUp", "Delete"), which the default binding tables use.
func (h *Host) pollKeys(mods raw.Modifiers) {
	if h.keyboard == nil {
		return
	}
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.keyboard.KeyDown(k.String(), mods)
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.keyboard.KeyUp(k.String(), mods)
	}
}

// pollMouse forwards button transitions, cursor movement, and wheel scroll.
func (h *Host) pollMouse(mods raw.Modifiers) {
	if h.pointer == nil {
		return
	}
	x, y := ebiten.CursorPosition()
	pos := raw.Position{X: float64(x), Y: float64(y)}

	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.host) {
			h.pointer.ButtonDown(mb.raw, pos, mods)
		}
		if inpututil.IsMouseButtonJustReleased(mb.host) {
			h.pointer.ButtonUp(mb.raw, pos, mods)
		}
	}

	if !h.cursorSeen || x != h.cursorX || y != h.cursorY {
		moved := h.cursorSeen
		h.cursorX, h.cursorY, h.cursorSeen = x, y, true
		if moved {
			h.pointer.MoveTo(pos, mods)
		}
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		h.pointer.WheelBy(raw.Delta{X: wx, Y: wy}, pos, mods)
	}
}

// pollTouches forwards contact transitions and movement. Released contacts
// are reported before moves so a lifted finger never produces a trailing pan.
func (h *Host) pollTouches() {
	if h.touch == nil {
		return
	}

	h.touchIDs = inpututil.AppendJustReleasedTouchIDs(h.touchIDs[:0])
	for _, id := range h.touchIDs {
		h.touch.ContactUp(int(id))
	}

	h.touchIDs = inpututil.AppendJustPressedTouchIDs(h.touchIDs[:0])
	for _, id := range h.touchIDs {
		x, y := ebiten.TouchPosition(id)
		h.touch.ContactDown(int(id), raw.Position{X: float64(x), Y: float64(y)})
	}

	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])
	for _, id := range h.touchIDs {
		x, y := ebiten.TouchPosition(id)
		h.touch.ContactMove(int(id), raw.Position{X: float64(x), Y: float64(y)})
	}
}
