// Package raw defines the normalized input event types produced by device
// sources. Each event kind is a distinct value type carrying only the fields
// that kind needs; events are immutable once constructed and are produced
// exactly once per physical device signal.
package raw
