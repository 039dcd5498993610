package binding

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/sceneinput/internal/raw"
)

const testProfile = `
[[contexts]]
name = "view"

[[contexts.bindings]]
action = "moveForward"
trigger = { type = "key", code = "W" }

[[contexts.bindings]]
action = "walkTo"
trigger = { type = "button", button = "left", on = "press" }
when = "no-mods"
pick = true

[[contexts.bindings]]
action = "lookAround"
trigger = { type = "move", while = ["middle", "alt-left"] }

[[contexts.bindings]]
action = "zoom"
triggers = [
  { type = "wheel" },
  { type = "gesture", gesture = "pinch" },
]

[[contexts.bindings]]
action = "boost"
trigger = { type = "key", code = "B", on = "press" }
value = 2.5

[[contexts]]
name = "edit"

[[contexts.bindings]]
action = "select"
trigger = { type = "button", button = "left", on = "press" }
`

func TestLoaderLoadReader(t *testing.T) {
	contexts, err := NewLoader().LoadReader(strings.NewReader(testProfile))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if len(contexts) != 2 {
		t.Fatalf("got %d contexts, want 2", len(contexts))
	}
	view, edit := contexts[0], contexts[1]
	if view.Name() != "view" || edit.Name() != "edit" {
		t.Fatalf("context names = %q, %q", view.Name(), edit.Name())
	}

	key := raw.Key{Action: raw.KeyPress, Code: "W"}
	if m, ok := view.Map(key, StateOf(key)); !ok || m.Action != "moveForward" {
		t.Errorf("W press = (%+v, %v), want moveForward", m, ok)
	}

	press := raw.PointerButton{Action: raw.PointerPress, Button: raw.ButtonLeft, Pos: raw.Position{X: 3, Y: 4}}
	if m, ok := view.Map(press, StateOf(press)); !ok || m.Action != "walkTo" || !m.Pick {
		t.Errorf("left press = (%+v, %v), want picked walkTo", m, ok)
	}
	guarded := raw.PointerButton{Action: raw.PointerPress, Button: raw.ButtonLeft, Mods: raw.ModShift}
	if _, ok := view.Map(guarded, StateOf(guarded)); ok {
		t.Error("shift+left should be rejected by the no-mods guard")
	}

	move := raw.PointerMove{Delta: raw.Delta{X: 1}, Held: raw.ButtonSet(raw.ButtonAltLeft)}
	if m, ok := view.Map(move, StateOf(move)); !ok || m.Action != "lookAround" {
		t.Errorf("alt-left move = (%+v, %v), want lookAround", m, ok)
	}

	for _, ev := range []raw.Event{
		raw.Wheel{Delta: raw.Delta{Y: 1}},
		raw.Gesture{Kind: raw.GesturePinch, Scale: 1.1},
	} {
		if m, ok := view.Map(ev, StateOf(ev)); !ok || m.Action != "zoom" {
			t.Errorf("%T = (%+v, %v), want zoom", ev, m, ok)
		}
	}

	boost := raw.Key{Action: raw.KeyPress, Code: "B"}
	if m, ok := view.Map(boost, StateOf(boost)); !ok || m.Value != 2.5 {
		t.Errorf("boost = (%+v, %v), want value 2.5", m, ok)
	}
}

func TestLoaderLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.toml")
	if err := os.WriteFile(path, []byte(testProfile), 0o644); err != nil {
		t.Fatal(err)
	}
	contexts, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(contexts) != 2 {
		t.Fatalf("got %d contexts, want 2", len(contexts))
	}
}

func TestLoaderClicksField(t *testing.T) {
	profile := `
[[contexts]]
name = "edit"

[[contexts.bindings]]
action = "openTarget"
trigger = { type = "button", button = "left", on = "press", clicks = 2 }

[[contexts.bindings]]
action = "select"
trigger = { type = "button", button = "left", on = "press" }
`
	contexts, err := NewLoader().LoadReader(strings.NewReader(profile))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	ctx := contexts[0]

	lone := raw.PointerButton{Action: raw.PointerPress, Button: raw.ButtonLeft, Clicks: 1}
	if m, ok := ctx.Map(lone, StateOf(lone)); !ok || m.Action != "select" {
		t.Errorf("lone press = (%+v, %v), want select", m, ok)
	}
	double := raw.PointerButton{Action: raw.PointerPress, Button: raw.ButtonLeft, Clicks: 2}
	if m, ok := ctx.Map(double, StateOf(double)); !ok || m.Action != "openTarget" {
		t.Errorf("double click = (%+v, %v), want openTarget", m, ok)
	}
}

func TestLoaderRejectsMalformedBindings(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		reason  string
	}{
		{
			"unknown trigger type",
			`[[contexts]]
name = "t"
[[contexts.bindings]]
action = "a"
trigger = { type = "joystick" }`,
			"unknown trigger type",
		},
		{
			"key trigger with button field",
			`[[contexts]]
name = "t"
[[contexts.bindings]]
action = "a"
trigger = { type = "key", code = "W", button = "left" }`,
			"non-key fields",
		},
		{
			"unknown condition",
			`[[contexts]]
name = "t"
[[contexts.bindings]]
action = "a"
trigger = { type = "key", code = "W" }
when = "phase-of-moon"`,
			"unknown condition",
		},
		{
			"unknown button",
			`[[contexts]]
name = "t"
[[contexts.bindings]]
action = "a"
trigger = { type = "button", button = "fourth" }`,
			"unknown button",
		},
		{
			"unknown gesture",
			`[[contexts]]
name = "t"
[[contexts.bindings]]
action = "a"
trigger = { type = "gesture", gesture = "wiggle" }`,
			"unknown gesture",
		},
		{
			"trigger and triggers",
			`[[contexts]]
name = "t"
[[contexts.bindings]]
action = "a"
trigger = { type = "wheel" }
triggers = [{ type = "wheel" }]`,
			"both trigger and triggers",
		},
		{
			"missing trigger",
			`[[contexts]]
name = "t"
[[contexts.bindings]]
action = "a"`,
			"no trigger",
		},
		{
			"key trigger with clicks",
			`[[contexts]]
name = "t"
[[contexts.bindings]]
action = "a"
trigger = { type = "key", code = "W", clicks = 2 }`,
			"non-key fields",
		},
		{
			"negative click count",
			`[[contexts]]
name = "t"
[[contexts.bindings]]
action = "a"
trigger = { type = "button", button = "left", clicks = -1 }`,
			"click count",
		},
	}

	for _, tt := range tests {
		_, err := NewLoader().LoadReader(strings.NewReader(tt.profile))
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

func TestLoaderRejectsMissingContextName(t *testing.T) {
	profile := `[[contexts]]
[[contexts.bindings]]
action = "a"
trigger = { type = "wheel" }`
	if _, err := NewLoader().LoadReader(strings.NewReader(profile)); err == nil {
		t.Error("expected error for a table without a context name")
	}
}
