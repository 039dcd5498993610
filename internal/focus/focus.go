// Package focus defines the seam to the hosting UI's focus and modal state,
// consumed by the manager's priority blockers so that typing into a text
// field or interacting with a dialog never leaks into the 3D scene.
package focus

// Query reports the hosting UI's current focus state. Implementations must
// be cheap and non-blocking; predicates run on every raw event.
type Query interface {
	// TextInputFocused returns true while a text-entry control has keyboard
	// focus.
	TextInputFocused() bool

	// ModalOpen returns true while a modal dialog is open.
	ModalOpen() bool
}

// TextInputPredicate adapts a Query into a blocker predicate for the
// text-input layer.
func TextInputPredicate(q Query) func() bool {
	return func() bool { return q.TextInputFocused() }
}

// ModalPredicate adapts a Query into a blocker predicate for the modal
// layer.
func ModalPredicate(q Query) func() bool {
	return func() bool { return q.ModalOpen() }
}
