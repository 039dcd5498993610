// Package tcellhost feeds the core sources from tcell terminal events, for
// headless or remote scene tooling. Terminals report key presses but never
// releases, so each key event is forwarded as a press immediately followed by
// a release; hold-style bindings do not fire from a terminal.
package tcellhost

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/sceneinput/internal/raw"
	"github.com/dshills/sceneinput/internal/source"
)

// buttonMasks maps tcell button bits to their raw equivalents.
var buttonMasks = []struct {
	mask tcell.ButtonMask
	raw  raw.Button
}{
	{tcell.Button1, raw.ButtonLeft},
	{tcell.Button2, raw.ButtonMiddle},
	{tcell.Button3, raw.ButtonRight},
}

// Host translates tcell events into source calls. Feed it every event from
// the screen's polling loop.
type Host struct {
	keyboard *source.Keyboard
	pointer  *source.Pointer

	held       tcell.ButtonMask
	cursorX    int
	cursorY    int
	cursorSeen bool
}

// New creates a host driving the given sources. Either may be nil to skip
// that device.
func New(keyboard *source.Keyboard, pointer *source.Pointer) *Host {
	return &Host{keyboard: keyboard, pointer: pointer}
}

// HandleEvent consumes one tcell event. It reports whether the event was an
// input event this host handled.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		h.handleKey(e)
		return true
	case *tcell.EventMouse:
		h.handleMouse(e)
		return true
	default:
		return false
	}
}

// handleKey forwards a terminal key event as a press/release pair.
func (h *Host) handleKey(e *tcell.EventKey) {
	if h.keyboard == nil {
		return
	}
	code := keyCode(e)
	if code == "" {
		return
	}
	mods := convertMods(e.Modifiers())
	h.keyboard.KeyDown(code, mods)
	h.keyboard.KeyUp(code, mods)
}

// handleMouse diffs the button mask against the last event's, forwards the
// transitions, then movement and wheel scroll.
func (h *Host) handleMouse(e *tcell.EventMouse) {
	if h.pointer == nil {
		return
	}
	x, y := e.Position()
	pos := raw.Position{X: float64(x), Y: float64(y)}
	mods := convertMods(e.Modifiers())
	buttons := e.Buttons()

	for _, bm := range buttonMasks {
		was := h.held&bm.mask != 0
		now := buttons&bm.mask != 0
		switch {
		case now && !was:
			h.pointer.ButtonDown(bm.raw, pos, mods)
		case was && !now:
			h.pointer.ButtonUp(bm.raw, pos, mods)
		}
	}
	h.held = buttons

	if !h.cursorSeen || x != h.cursorX || y != h.cursorY {
		moved := h.cursorSeen
		h.cursorX, h.cursorY, h.cursorSeen = x, y, true
		if moved {
			h.pointer.MoveTo(pos, mods)
		}
	}

	if delta := wheelDelta(buttons); !delta.IsZero() {
		h.pointer.WheelBy(delta, pos, mods)
	}
}

// wheelDelta converts the momentary wheel bits into a scroll delta. Wheel up
// is positive Y, matching the convention the binding layer expects.
func wheelDelta(b tcell.ButtonMask) raw.Delta {
	var d raw.Delta
	if b&tcell.WheelUp != 0 {
		d.Y++
	}
	if b&tcell.WheelDown != 0 {
		d.Y--
	}
	if b&tcell.WheelRight != 0 {
		d.X++
	}
	if b&tcell.WheelLeft != 0 {
		d.X--
	}
	return d
}

// keyCode names a terminal key the way the binding tables expect: uppercase
// letters for rune keys, Ebitengine-style names for specials.
func keyCode(e *tcell.EventKey) string {
	switch e.Key() {
	case tcell.KeyRune:
		r := e.Rune()
		if r == ' ' {
			return "Space"
		}
		return strings.ToUpper(string(r))
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyTab:
		return "Tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	case tcell.KeyDelete:
		return "Delete"
	case tcell.KeyInsert:
		return "Insert"
	case tcell.KeyHome:
		return "Home"
	case tcell.KeyEnd:
		return "End"
	case tcell.KeyPgUp:
		return "PageUp"
	case tcell.KeyPgDn:
		return "PageDown"
	default:
		return ""
	}
}

// convertMods maps tcell modifiers onto the raw bitmask.
func convertMods(m tcell.ModMask) raw.Modifiers {
	var mods raw.Modifiers
	if m&tcell.ModShift != 0 {
		mods = mods.With(raw.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(raw.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(raw.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(raw.ModMeta)
	}
	return mods
}
