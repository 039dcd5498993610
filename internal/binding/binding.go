package binding

// Binding pairs a trigger pattern with a guard condition and an action name.
// Bindings are data: they hold no mutable state and produce no side effects.
type Binding struct {
	// Trigger is the pattern over raw event fields.
	Trigger Trigger

	// Condition is an optional pure guard. The zero value always holds.
	Condition Condition

	// Action is the name of the action this binding produces.
	Action string

	// Value overrides the default press value (1 on press, 0 on release) for
	// discrete triggers. Nil means use the default.
	Value *float64

	// Pick requests scene-pick enrichment: the manager runs the injected
	// picking service at the event position and attaches the result.
	Pick bool

	// Description documents the binding for display and tooling.
	Description string
}

// Bind creates a binding from an action name and a trigger.
func Bind(action string, trigger Trigger) Binding {
	return Binding{Action: action, Trigger: trigger}
}

// When sets the guard condition for this binding.
func (b Binding) When(c Condition) Binding {
	b.Condition = c
	return b
}

// WithValue sets a fixed press value for this binding.
func (b Binding) WithValue(v float64) Binding {
	b.Value = &v
	return b
}

// WithPick requests scene-pick enrichment for this binding's actions.
func (b Binding) WithPick() Binding {
	b.Pick = true
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}
