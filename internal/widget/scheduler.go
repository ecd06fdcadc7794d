package widget

import "time"

// Scheduler schedules a single deferred callback and hands back a cancel
// function. Sessions use it for the simulated typing delay so that teardown
// can cancel pending continuations deterministically instead of letting a
// stray timer fire against a dead session.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

// Schedule runs fn after d unless the returned cancel is called first.
func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
