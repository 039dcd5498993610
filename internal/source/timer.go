package source

import "time"

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop cancels the pending callback. It reports whether the callback was
	// still pending.
	Stop() bool
}

// TimerFactory schedules fn to run once after d. The touch source injects a
// factory so tests control time; the default wraps time.AfterFunc, the sole
// asynchronous completion in this core.
type TimerFactory func(d time.Duration, fn func()) Timer

// AfterFunc is the default TimerFactory.
func AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
