package binding

import "fmt"

// InvalidBindingError reports a malformed binding, detected when a table is
// registered or swapped, never at dispatch time.
type InvalidBindingError struct {
	// Context is the name of the context the binding belongs to.
	Context string

	// Index is the binding's position in the table.
	Index int

	// Action is the binding's action name, if it had one.
	Action string

	// Reason describes what is wrong.
	Reason string
}

// Error implements the error interface.
func (e *InvalidBindingError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("context %q binding %d (%s): %s", e.Context, e.Index, e.Action, e.Reason)
	}
	return fmt.Sprintf("context %q binding %d: %s", e.Context, e.Index, e.Reason)
}
