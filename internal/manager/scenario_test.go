package manager

import (
	"testing"
	"time"

	"github.com/dshills/sceneinput/internal/binding"
	"github.com/dshills/sceneinput/internal/raw"
	"github.com/dshills/sceneinput/internal/source"
)

// rig wires real device sources into a manager over the default contexts,
// the way a hosting application does.
type rig struct {
	m        *Manager
	keyboard *source.Keyboard
	pointer  *source.Pointer
	touch    *source.Touch
	timers   *timerControl
	actions  *[]Action
}

type manualTimer struct {
	fn      func()
	stopped bool
	fired   bool
}

func (m *manualTimer) Stop() bool {
	pending := !m.stopped && !m.fired
	m.stopped = true
	return pending
}

type timerControl struct {
	timers []*manualTimer
}

func (tc *timerControl) factory(d time.Duration, fn func()) source.Timer {
	mt := &manualTimer{fn: fn}
	tc.timers = append(tc.timers, mt)
	return mt
}

// elapse fires pending callbacks that were not cancelled.
func (tc *timerControl) elapse() {
	for _, mt := range tc.timers {
		if !mt.stopped && !mt.fired {
			mt.fired = true
			mt.fn()
		}
	}
}

func newRig(t *testing.T) *rig {
	t.Helper()
	m := testManager(t)

	tc := &timerControl{}
	r := &rig{
		m:        m,
		keyboard: source.NewKeyboard("keyboard", m),
		pointer:  source.NewPointer("mouse", m),
		timers:   tc,
		actions:  collect(t, m),
	}
	r.touch = source.NewTouch("touch", m, source.TouchConfig{
		LongPressDelay:  500 * time.Millisecond,
		JitterTolerance: 8,
		Timers:          tc.factory,
	})
	for _, src := range []source.Source{r.keyboard, r.pointer, r.touch} {
		if err := m.RegisterSource(src, false); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func (r *rig) names() []string {
	out := make([]string, len(*r.actions))
	for i, a := range *r.actions {
		out[i] = a.Name
	}
	return out
}

func TestScenarioHoldToMove(t *testing.T) {
	r := newRig(t)

	r.keyboard.KeyDown("W", raw.ModNone)
	if !r.m.IsActionPressed(binding.ActionMoveForward) {
		t.Error("moveForward should be pressed while W is held")
	}
	r.keyboard.KeyDown("W", raw.ModNone) // host auto-repeat: no extra action
	r.keyboard.KeyUp("W", raw.ModNone)
	if r.m.IsActionPressed(binding.ActionMoveForward) {
		t.Error("moveForward should end when W is released")
	}

	got := r.names()
	if len(got) != 2 || got[0] != binding.ActionMoveForward || got[1] != binding.ActionMoveForward {
		t.Errorf("actions = %v, want one press and one release", got)
	}
}

func TestScenarioAltLeftLooksAround(t *testing.T) {
	r := newRig(t)

	r.pointer.ButtonDown(raw.ButtonLeft, raw.Position{X: 100, Y: 100}, raw.ModAlt)
	r.pointer.MoveTo(raw.Position{X: 100, Y: 100}, raw.ModAlt)
	r.pointer.MoveTo(raw.Position{X: 104, Y: 97}, raw.ModAlt)
	r.pointer.ButtonUp(raw.ButtonLeft, raw.Position{X: 104, Y: 97}, raw.ModAlt)

	var looks []Action
	for _, a := range *r.actions {
		if a.Name == binding.ActionLookAround {
			looks = append(looks, a)
		}
	}
	if len(looks) != 2 {
		t.Fatalf("lookAround fired %d times, want 2: %v", len(looks), r.names())
	}
	if looks[1].Delta.X != 4 || looks[1].Delta.Y != -3 {
		t.Errorf("look delta = %+v", looks[1].Delta)
	}

	// Plain left press instead walks, never looks.
	r.pointer.ButtonDown(raw.ButtonLeft, raw.Position{X: 50, Y: 50}, raw.ModNone)
	last := (*r.actions)[len(*r.actions)-1]
	if last.Name != binding.ActionWalkTo {
		t.Errorf("plain left press = %q, want walkTo", last.Name)
	}
}

func TestScenarioTouchLongPressMenu(t *testing.T) {
	r := newRig(t)
	pos := raw.Position{X: 200, Y: 150}

	r.touch.ContactDown(1, pos)
	r.timers.elapse()
	r.touch.ContactUp(1)

	got := r.names()
	if len(got) != 1 || got[0] != binding.ActionContextMenu {
		t.Fatalf("actions = %v, want one contextMenu", got)
	}
	if (*r.actions)[0].Pos != pos {
		t.Errorf("menu position = %v, want %v", (*r.actions)[0].Pos, pos)
	}

	// A quick tap-and-release never opens the menu.
	r.touch.ContactDown(2, pos)
	r.touch.ContactUp(2)
	r.timers.elapse()
	if len(*r.actions) != 1 {
		t.Errorf("quick tap fired extra actions: %v", r.names())
	}
}

func TestScenarioSecondContactMenu(t *testing.T) {
	r := newRig(t)
	second := raw.Position{X: 300, Y: 200}

	r.touch.ContactDown(1, raw.Position{X: 100, Y: 100})
	r.touch.ContactDown(2, second)
	r.timers.elapse()

	got := r.names()
	if len(got) != 1 || got[0] != binding.ActionContextMenu {
		t.Fatalf("actions = %v, want one contextMenu", got)
	}
	if (*r.actions)[0].Pos != second {
		t.Errorf("menu position = %v, want the second contact's %v", (*r.actions)[0].Pos, second)
	}
}

func TestScenarioPinchZoom(t *testing.T) {
	r := newRig(t)

	r.touch.ContactDown(1, raw.Position{X: 0, Y: 0})
	r.touch.ContactDown(2, raw.Position{X: 100, Y: 0})
	r.touch.ContactMove(2, raw.Position{X: 150, Y: 0})

	var zoom *Action
	for i, a := range *r.actions {
		if a.Name == binding.ActionZoom {
			zoom = &(*r.actions)[i]
		}
	}
	if zoom == nil {
		t.Fatalf("no zoom action in %v", r.names())
	}
	if zoom.Value != 1.5 {
		t.Errorf("zoom value = %g, want pinch scale 1.5", zoom.Value)
	}

	// The wheel drives the same action.
	r.pointer.WheelBy(raw.Delta{Y: -2}, raw.Position{X: 10, Y: 10}, raw.ModNone)
	last := (*r.actions)[len(*r.actions)-1]
	if last.Name != binding.ActionZoom || last.Value != -2 {
		t.Errorf("wheel zoom = %+v", last)
	}
}

func TestScenarioContextSwitchRebinds(t *testing.T) {
	r := newRig(t)

	r.pointer.ButtonDown(raw.ButtonLeft, raw.Position{X: 5, Y: 5}, raw.ModNone)
	r.pointer.ButtonUp(raw.ButtonLeft, raw.Position{X: 5, Y: 5}, raw.ModNone)

	if err := r.m.SetContext("edit"); err != nil {
		t.Fatal(err)
	}

	r.pointer.ButtonDown(raw.ButtonLeft, raw.Position{X: 5, Y: 5}, raw.ModNone)

	got := r.names()
	// walkTo fires on the press only, then the same press selects in edit.
	want := []string{binding.ActionWalkTo, binding.ActionSelect}
	if len(got) != len(want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("actions = %v, want %v", got, want)
		}
	}
}
