package raw

import "strings"

// Modifiers is the bitmask of modifier keys held during an event. Sources
// stamp it on every event they forward, so guard conditions never need to
// track modifier key state themselves.
type Modifiers uint8

const (
	// ModNone is the empty mask.
	ModNone Modifiers = 0

	// ModShift marks either Shift key.
	ModShift Modifiers = 1 << iota

	// ModCtrl marks either Control key.
	ModCtrl

	// ModAlt marks Alt, or Option on macOS.
	ModAlt

	// ModMeta marks Cmd on macOS and the Windows key elsewhere.
	ModMeta
)

// Has reports whether mod is in the mask.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod != 0
}

// HasShift reports whether Shift is held.
func (m Modifiers) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl reports whether Control is held.
func (m Modifiers) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt reports whether Alt is held.
func (m Modifiers) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta reports whether Meta is held.
func (m Modifiers) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns the mask with mod added.
func (m Modifiers) With(mod Modifiers) Modifiers {
	return m | mod
}

// Without returns the mask with mod removed.
func (m Modifiers) Without(mod Modifiers) Modifiers {
	return m &^ mod
}

// IsEmpty reports whether no modifiers are held.
func (m Modifiers) IsEmpty() bool {
	return m == ModNone
}

// String renders the mask like "Ctrl+Alt", in a fixed order, or "" for the
// empty mask.
func (m Modifiers) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// modifierNameMap resolves the spellings binding profiles use, including the
// platform synonyms.
var modifierNameMap = map[string]Modifiers{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"super":   ModMeta,
}

// ModifierFromName resolves a single modifier name, case-insensitively.
// Unrecognized names resolve to ModNone.
func ModifierFromName(name string) Modifiers {
	if m, ok := modifierNameMap[strings.ToLower(name)]; ok {
		return m
	}
	return ModNone
}

// ParseModifiers builds a mask from a "+"-joined list like "ctrl+alt" or
// "Shift". Unrecognized parts are skipped rather than rejected.
func ParseModifiers(s string) Modifiers {
	var result Modifiers
	for _, part := range strings.Split(s, "+") {
		if mod := ModifierFromName(strings.TrimSpace(part)); mod != ModNone {
			result = result.With(mod)
		}
	}
	return result
}
