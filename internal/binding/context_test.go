package binding

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/sceneinput/internal/raw"
)

func TestNewContextValidation(t *testing.T) {
	tests := []struct {
		name     string
		bindings []Binding
		reason   string
	}{
		{
			"empty action",
			[]Binding{Bind("", KeyTrigger{Code: "W"})},
			"empty action name",
		},
		{
			"nil trigger",
			[]Binding{{Action: "jump"}},
			"nil trigger",
		},
		{
			"malformed trigger",
			[]Binding{Bind("jump", KeyTrigger{})},
			"key code",
		},
		{
			"duplicate action",
			[]Binding{
				Bind("jump", KeyTrigger{Code: "Space"}),
				Bind("jump", KeyTrigger{Code: "J"}),
			},
			"duplicate",
		},
	}

	for _, tt := range tests {
		_, err := NewContext("test", tt.bindings...)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		var berr *InvalidBindingError
		if !errors.As(err, &berr) {
			t.Errorf("%s: error type %T, want *InvalidBindingError", tt.name, err)
			continue
		}
		if !strings.Contains(berr.Reason, tt.reason) {
			t.Errorf("%s: reason %q does not mention %q", tt.name, berr.Reason, tt.reason)
		}
	}
}

func TestContextMapFirstMatchWins(t *testing.T) {
	ctx := MustContext("test",
		Bind("first", ButtonTrigger{Button: raw.ButtonLeft, On: EdgePress}),
		Bind("second", ButtonTrigger{Button: raw.ButtonLeft, On: EdgePress}),
	)

	ev := raw.PointerButton{Action: raw.PointerPress, Button: raw.ButtonLeft}
	m, ok := ctx.Map(ev, StateOf(ev))
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Action != "first" {
		t.Errorf("Action = %q, want %q", m.Action, "first")
	}
}

func TestContextMapConditionGate(t *testing.T) {
	ctx := MustContext("test",
		Bind("special", KeyTrigger{Code: "D", On: EdgePress}).When(CondCtrl),
		Bind("plain", KeyTrigger{Code: "D", On: EdgePress}),
	)

	withCtrl := raw.Key{Action: raw.KeyPress, Code: "D", Mods: raw.ModCtrl}
	if m, ok := ctx.Map(withCtrl, StateOf(withCtrl)); !ok || m.Action != "special" {
		t.Errorf("with ctrl: got (%+v, %v), want special", m, ok)
	}

	plain := raw.Key{Action: raw.KeyPress, Code: "D"}
	if m, ok := ctx.Map(plain, StateOf(plain)); !ok || m.Action != "plain" {
		t.Errorf("without ctrl: got (%+v, %v), want plain", m, ok)
	}
}

func TestContextMapNoMatch(t *testing.T) {
	ctx := MustContext("test", Bind("jump", KeyTrigger{Code: "Space"}))

	if _, ok := ctx.Map(raw.Key{Action: raw.KeyPress, Code: "W"}, State{}); ok {
		t.Error("unbound key should not match")
	}
	if _, ok := ctx.Map(raw.Wheel{Delta: raw.Delta{Y: 1}}, State{}); ok {
		t.Error("unbound event kind should not match")
	}
}

func TestContextMapDeterministic(t *testing.T) {
	ctx := MustContext("test", Bind("jump", KeyTrigger{Code: "Space"}))
	ev := raw.Key{Action: raw.KeyPress, Code: "Space", Mods: raw.ModShift}
	st := StateOf(ev)

	first, ok1 := ctx.Map(ev, st)
	second, ok2 := ctx.Map(ev, st)
	if !ok1 || !ok2 || first != second {
		t.Errorf("identical input mapped differently: %+v vs %+v", first, second)
	}
}

func TestContextMapPayloads(t *testing.T) {
	ctx := MustContext("test",
		Bind("jump", KeyTrigger{Code: "Space"}),
		Bind("boost", KeyTrigger{Code: "B"}).WithValue(2.5),
		Bind("look", MoveTrigger{While: raw.ButtonSet(raw.ButtonMiddle)}),
		Bind("zoom", WheelTrigger{}),
		Bind("pinchZoom", GestureTrigger{Gesture: raw.GesturePinch}),
		Bind("menu", ButtonTrigger{Button: raw.ButtonRight, On: EdgePress}).WithPick(),
	)

	press := raw.Key{Action: raw.KeyPress, Code: "Space"}
	if m, _ := ctx.Map(press, StateOf(press)); !m.HasValue || m.Value != 1 || m.Edge != EdgeDown {
		t.Errorf("key press match = %+v, want value 1 on EdgeDown", m)
	}

	release := raw.Key{Action: raw.KeyRelease, Code: "Space"}
	if m, _ := ctx.Map(release, StateOf(release)); !m.HasValue || m.Value != 0 || m.Edge != EdgeUp {
		t.Errorf("key release match = %+v, want value 0 on EdgeUp", m)
	}

	boost := raw.Key{Action: raw.KeyPress, Code: "B"}
	if m, _ := ctx.Map(boost, StateOf(boost)); m.Value != 2.5 {
		t.Errorf("custom value match = %+v, want value 2.5", m)
	}

	move := raw.PointerMove{
		Pos:   raw.Position{X: 100, Y: 50},
		Delta: raw.Delta{X: 3, Y: -2},
		Held:  raw.ButtonSet(raw.ButtonMiddle),
	}
	if m, _ := ctx.Map(move, StateOf(move)); !m.HasDelta || m.Delta != move.Delta || !m.HasPos || m.Pos != move.Pos {
		t.Errorf("move match = %+v, want delta and pos from the event", m)
	}

	wheel := raw.Wheel{Delta: raw.Delta{Y: -3}, Pos: raw.Position{X: 10, Y: 20}}
	if m, _ := ctx.Map(wheel, StateOf(wheel)); !m.HasValue || m.Value != -3 {
		t.Errorf("wheel match = %+v, want value -3", m)
	}

	pinch := raw.Gesture{Kind: raw.GesturePinch, Scale: 1.25, Pos: raw.Position{X: 5, Y: 5}}
	if m, _ := ctx.Map(pinch, StateOf(pinch)); !m.HasValue || m.Value != 1.25 {
		t.Errorf("pinch match = %+v, want value 1.25", m)
	}

	menu := raw.PointerButton{Action: raw.PointerPress, Button: raw.ButtonRight, Pos: raw.Position{X: 7, Y: 9}}
	if m, _ := ctx.Map(menu, StateOf(menu)); !m.Pick || !m.HasPos {
		t.Errorf("pick match = %+v, want Pick with position", m)
	}
}

func TestSetBindings(t *testing.T) {
	ctx := MustContext("test", Bind("jump", KeyTrigger{Code: "Space"}))

	err := ctx.SetBindings([]Binding{Bind("fly", KeyTrigger{Code: "F"})})
	if err != nil {
		t.Fatalf("SetBindings: %v", err)
	}

	ev := raw.Key{Action: raw.KeyPress, Code: "F"}
	if m, ok := ctx.Map(ev, StateOf(ev)); !ok || m.Action != "fly" {
		t.Errorf("after swap: got (%+v, %v), want fly", m, ok)
	}
	old := raw.Key{Action: raw.KeyPress, Code: "Space"}
	if _, ok := ctx.Map(old, StateOf(old)); ok {
		t.Error("old binding should be gone after swap")
	}
}

func TestSetBindingsInvalidKeepsTable(t *testing.T) {
	ctx := MustContext("test", Bind("jump", KeyTrigger{Code: "Space"}))

	err := ctx.SetBindings([]Binding{Bind("", KeyTrigger{Code: "F"})})
	if err == nil {
		t.Fatal("expected validation error")
	}

	ev := raw.Key{Action: raw.KeyPress, Code: "Space"}
	if _, ok := ctx.Map(ev, StateOf(ev)); !ok {
		t.Error("failed swap should leave the previous table in effect")
	}
}

func TestBindingsReturnsCopy(t *testing.T) {
	ctx := MustContext("test", Bind("jump", KeyTrigger{Code: "Space"}))
	got := ctx.Bindings()
	got[0].Action = "mutated"

	ev := raw.Key{Action: raw.KeyPress, Code: "Space"}
	if m, ok := ctx.Map(ev, StateOf(ev)); !ok || m.Action != "jump" {
		t.Error("mutating the returned slice must not affect the table")
	}
}

func TestDefaultContexts(t *testing.T) {
	view := ViewContext()
	edit := EditContext()

	if view.Name() != "view" || edit.Name() != "edit" {
		t.Fatalf("default context names = %q, %q", view.Name(), edit.Name())
	}

	// The same left press resolves differently per context.
	press := raw.PointerButton{Action: raw.PointerPress, Button: raw.ButtonLeft, Pos: raw.Position{X: 1, Y: 2}}
	if m, ok := view.Map(press, StateOf(press)); !ok || m.Action != ActionWalkTo {
		t.Errorf("view left press = (%+v, %v), want walkTo", m, ok)
	}
	if m, ok := edit.Map(press, StateOf(press)); !ok || m.Action != ActionSelect {
		t.Errorf("edit left press = (%+v, %v), want select", m, ok)
	}

	// Alt+left drag and middle drag both look around in view mode.
	for _, held := range []raw.Buttons{raw.ButtonSet(raw.ButtonMiddle), raw.ButtonSet(raw.ButtonAltLeft)} {
		move := raw.PointerMove{Delta: raw.Delta{X: 4}, Held: held}
		if m, ok := view.Map(move, StateOf(move)); !ok || m.Action != ActionLookAround {
			t.Errorf("view move with %v = (%+v, %v), want lookAround", held, m, ok)
		}
	}

	// Bare movement matches nothing in either table.
	bare := raw.PointerMove{Delta: raw.Delta{X: 4}}
	if _, ok := view.Map(bare, StateOf(bare)); ok {
		t.Error("bare move should not match in view")
	}

	// Right click, long press, and a second touch contact all open the menu.
	menuEvents := []raw.Event{
		raw.PointerButton{Action: raw.PointerPress, Button: raw.ButtonRight},
		raw.Gesture{Kind: raw.GestureLongPress, Contacts: 1},
		raw.Gesture{Kind: raw.GestureTwoFingerDown, Contacts: 2},
	}
	for _, ev := range menuEvents {
		if m, ok := view.Map(ev, StateOf(ev)); !ok || m.Action != ActionContextMenu || !m.Pick {
			t.Errorf("%T menu mapping = (%+v, %v), want picked contextMenu", ev, m, ok)
		}
	}

	// Wheel and pinch both zoom.
	wheel := raw.Wheel{Delta: raw.Delta{Y: 1}}
	pinch := raw.Gesture{Kind: raw.GesturePinch, Scale: 0.9}
	for _, ev := range []raw.Event{wheel, pinch} {
		if m, ok := edit.Map(ev, StateOf(ev)); !ok || m.Action != ActionZoom {
			t.Errorf("%T zoom mapping = (%+v, %v), want zoom", ev, m, ok)
		}
	}

	// Ctrl+D duplicates in edit mode; plain D does nothing there.
	dup := raw.Key{Action: raw.KeyPress, Code: "D", Mods: raw.ModCtrl}
	if m, ok := edit.Map(dup, StateOf(dup)); !ok || m.Action != ActionDuplicate {
		t.Errorf("ctrl+D = (%+v, %v), want duplicate", m, ok)
	}
	plainD := raw.Key{Action: raw.KeyPress, Code: "D"}
	if _, ok := edit.Map(plainD, StateOf(plainD)); ok {
		t.Error("plain D should not match in edit")
	}
}
