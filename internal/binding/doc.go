// Package binding maps raw input events to named actions. A Context is an
// ordered table of Bindings; each Binding pairs a trigger pattern with an
// optional pure guard condition and an action name. Mapping is a pure
// function of the event and the modifier/held-button state, so identical
// input sequences against an unchanged table always yield the same actions.
package binding
