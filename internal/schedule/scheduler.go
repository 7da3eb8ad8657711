package schedule

import (
	"errors"
	"time"
)

// Sentinel errors for the loop.
var (
	// ErrLoopClosed is returned when work is posted to a closed loop.
	ErrLoopClosed = errors.New("loop is closed")

	// ErrLoopRunning is returned when Run is called on a running loop.
	ErrLoopRunning = errors.New("loop is already running")

	// ErrQueueFull is returned when the loop queue cannot accept more work.
	ErrQueueFull = errors.New("loop queue is full")
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the call stopped a live
	// timer; stopping an expired or already stopped timer is a no-op that
	// returns false.
	Stop() bool
}

// Scheduler creates timers whose callbacks run on the caller's
// execution context.
type Scheduler interface {
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Timer

	// Every runs fn repeatedly, every d, until stopped.
	Every(d time.Duration, fn func()) Timer
}

// StopTimer stops t if it is non-nil. It is safe to call with a nil timer.
func StopTimer(t Timer) {
	if t != nil {
		t.Stop()
	}
}
