package binding

import (
	"fmt"
	"io"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/dshills/sceneinput/internal/raw"
)

// tableSpec is the serialized form of one context's binding table, shared by
// the TOML and Lua loaders.
type tableSpec struct {
	Name     string        `toml:"name"`
	Bindings []bindingSpec `toml:"bindings"`
}

// bindingSpec is the serialized form of one binding.
type bindingSpec struct {
	Action      string        `toml:"action"`
	Trigger     *triggerSpec  `toml:"trigger"`
	Triggers    []triggerSpec `toml:"triggers"`
	When        string        `toml:"when"`
	Value       *float64      `toml:"value"`
	Pick        bool          `toml:"pick"`
	Description string        `toml:"description"`
}

// triggerSpec is the serialized form of one trigger pattern.
type triggerSpec struct {
	Type    string   `toml:"type"`
	Code    string   `toml:"code"`
	On      string   `toml:"on"`
	Button  string   `toml:"button"`
	Clicks  int      `toml:"clicks"`
	While   []string `toml:"while"`
	Gesture string   `toml:"gesture"`
}

// tomlFile is the top-level document shape: one or more context tables.
type tomlFile struct {
	Contexts []tableSpec `toml:"contexts"`
}

// Loader reads binding tables from serialized profiles, resolving guard
// conditions by name through the condition registry.
type Loader struct{}

// NewLoader creates a binding table loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile loads all context tables from a TOML file.
func (l *Loader) LoadFile(path string) ([]*Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening binding file: %w", err)
	}
	defer f.Close()

	return l.LoadReader(f)
}

// LoadReader loads all context tables from TOML on a reader.
func (l *Loader) LoadReader(r io.Reader) ([]*Context, error) {
	var doc tomlFile
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding bindings: %w", err)
	}

	contexts := make([]*Context, 0, len(doc.Contexts))
	for _, spec := range doc.Contexts {
		ctx, err := buildContext(spec)
		if err != nil {
			return nil, err
		}
		contexts = append(contexts, ctx)
	}
	return contexts, nil
}

// buildContext turns a serialized table into a validated Context.
func buildContext(spec tableSpec) (*Context, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("binding table missing a context name")
	}

	bindings := make([]Binding, 0, len(spec.Bindings))
	for i, bs := range spec.Bindings {
		b, err := buildBinding(spec.Name, i, bs)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}

	return NewContext(spec.Name, bindings...)
}

// buildBinding turns a serialized binding into a Binding value.
func buildBinding(ctxName string, index int, bs bindingSpec) (Binding, error) {
	fail := func(reason string) (Binding, error) {
		return Binding{}, &InvalidBindingError{Context: ctxName, Index: index, Action: bs.Action, Reason: reason}
	}

	var trigger Trigger
	switch {
	case bs.Trigger != nil && len(bs.Triggers) > 0:
		return fail("binding declares both trigger and triggers")
	case bs.Trigger != nil:
		t, reason := buildTrigger(*bs.Trigger)
		if reason != "" {
			return fail(reason)
		}
		trigger = t
	case len(bs.Triggers) > 0:
		alts := make([]Trigger, 0, len(bs.Triggers))
		for _, ts := range bs.Triggers {
			t, reason := buildTrigger(ts)
			if reason != "" {
				return fail(reason)
			}
			alts = append(alts, t)
		}
		trigger = OneOf(alts...)
	default:
		return fail("binding has no trigger")
	}

	b := Bind(bs.Action, trigger)
	if bs.When != "" {
		cond, ok := LookupCondition(bs.When)
		if !ok {
			return fail("unknown condition " + fmt.Sprintf("%q", bs.When))
		}
		b = b.When(cond)
	}
	if bs.Value != nil {
		b = b.WithValue(*bs.Value)
	}
	if bs.Pick {
		b = b.WithPick()
	}
	if bs.Description != "" {
		b = b.WithDescription(bs.Description)
	}
	return b, nil
}

// buildTrigger turns a serialized trigger into a Trigger, returning a reason
// string when the fields are inconsistent with the declared type.
func buildTrigger(ts triggerSpec) (Trigger, string) {
	switch ts.Type {
	case "key":
		if ts.Button != "" || ts.Gesture != "" || len(ts.While) > 0 || ts.Clicks != 0 {
			return nil, "key trigger carries non-key fields"
		}
		on, ok := EdgeFilterFromName(ts.On)
		if !ok {
			return nil, fmt.Sprintf("unknown edge filter %q", ts.On)
		}
		return KeyTrigger{Code: ts.Code, On: on}, ""

	case "button":
		if ts.Code != "" || ts.Gesture != "" || len(ts.While) > 0 {
			return nil, "button trigger carries non-button fields"
		}
		btn := raw.ButtonFromName(ts.Button)
		if btn == raw.ButtonNone {
			return nil, fmt.Sprintf("unknown button %q", ts.Button)
		}
		on, ok := EdgeFilterFromName(ts.On)
		if !ok {
			return nil, fmt.Sprintf("unknown edge filter %q", ts.On)
		}
		return ButtonTrigger{Button: btn, On: on, Clicks: ts.Clicks}, ""

	case "move":
		if ts.Code != "" || ts.Button != "" || ts.Gesture != "" || ts.On != "" || ts.Clicks != 0 {
			return nil, "move trigger carries non-move fields"
		}
		var while raw.Buttons
		for _, name := range ts.While {
			btn := raw.ButtonFromName(name)
			if btn == raw.ButtonNone {
				return nil, fmt.Sprintf("unknown button %q in while list", name)
			}
			while = while.With(btn)
		}
		return MoveTrigger{While: while}, ""

	case "wheel":
		if ts.Code != "" || ts.Button != "" || ts.Gesture != "" || len(ts.While) > 0 || ts.On != "" || ts.Clicks != 0 {
			return nil, "wheel trigger carries extra fields"
		}
		return WheelTrigger{}, ""

	case "gesture":
		if ts.Code != "" || ts.Button != "" || len(ts.While) > 0 || ts.On != "" || ts.Clicks != 0 {
			return nil, "gesture trigger carries non-gesture fields"
		}
		kind, ok := raw.GestureKindFromName(ts.Gesture)
		if !ok {
			return nil, fmt.Sprintf("unknown gesture %q", ts.Gesture)
		}
		return GestureTrigger{Gesture: kind}, ""

	default:
		return nil, fmt.Sprintf("unknown trigger type %q", ts.Type)
	}
}
