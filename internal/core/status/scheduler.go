package status

import "time"

// Timer is a handle to a pending scheduled call.
type Timer interface {
	// Stop prevents the call from running. It returns false if the call has
	// already run or was already stopped.
	Stop() bool
}

// Scheduler arms one-shot timers.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// ClockScheduler schedules calls on the wall clock.
type ClockScheduler struct{}

// AfterFunc implements Scheduler.
func (ClockScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
