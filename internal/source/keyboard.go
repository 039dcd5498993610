package source

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/dshills/sceneinput/internal/raw"
)

// Keyboard normalizes host key callbacks. Host environments deliver
// auto-repeat as repeated down callbacks while a key is physically held; the
// keyboard suppresses those so exactly one press event is forwarded per
// physical press, until release.
type Keyboard struct {
	device
	held mapset.Set[string]
}

// NewKeyboard creates a keyboard source forwarding into sink.
func NewKeyboard(name string, sink Sink) *Keyboard {
	return &Keyboard{
		device: newDevice(name, sink),
		held:   mapset.New[string](),
	}
}

// KeyDown reports a host key-down callback. Repeats for a key already held
// are dropped.
func (k *Keyboard) KeyDown(code string, mods raw.Modifiers) {
	if !k.Enabled() || code == "" || k.held.Has(code) {
		return
	}
	k.held.Put(code)
	k.forward(raw.Key{Action: raw.KeyPress, Code: code, Mods: mods})
}

// KeyUp reports a host key-up callback. A release for a key that was never
// tracked (e.g. pressed before the window gained focus) is dropped.
func (k *Keyboard) KeyUp(code string, mods raw.Modifiers) {
	if !k.Enabled() || code == "" || !k.held.Has(code) {
		return
	}
	k.held.Remove(code)
	k.forward(raw.Key{Action: raw.KeyRelease, Code: code, Mods: mods})
}

// IsHeld returns true if the key is currently tracked as held.
func (k *Keyboard) IsHeld(code string) bool {
	return k.held.Has(code)
}

// ResetHeld forgets all held keys without emitting releases. Hosts call this
// on focus loss, paired with the manager's ClearAllActionStates, because the
// matching key-up events will never arrive.
func (k *Keyboard) ResetHeld() {
	k.held = mapset.New[string]()
}
