// Package schedule provides the cooperative, single-threaded execution model
// widgets run under.
//
// All widget code runs to completion on one goroutine. Work arriving from
// other goroutines (terminal input, file watchers, timers) is posted to a
// Loop and executed there in order. Timers never call back directly; they
// post their callback to the loop, and the callback re-checks the timer's
// stopped flag before running. Stopping a timer on the loop goroutine
// therefore always wins over a tick that is already queued.
//
// Manual is a virtual clock implementing the same Scheduler interface for
// deterministic tests.
package schedule
