package ports

import "time"

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop prevents the callback from running. It reports false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Scheduler creates one-shot timers and tells the time.
// Implementations may fire callbacks on any goroutine; callers that need
// serialization wrap the callback themselves.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}
