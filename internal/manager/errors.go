package manager

import "fmt"

// UnknownContextError is returned by SetContext for a name that was never
// registered. The active context and all cached state are unchanged.
type UnknownContextError struct {
	Name string
}

func (e *UnknownContextError) Error() string {
	return fmt.Sprintf("unknown context %q", e.Name)
}

// DuplicateRegistrationError is returned when a source or context name is
// registered twice without the replace option.
type DuplicateRegistrationError struct {
	// Kind is "source" or "context".
	Kind string
	Name string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("%s %q already registered", e.Kind, e.Name)
}
