package player

import "time"

// Timer is a cancellable handle for a scheduled transition completion.
type Timer interface {
	// Stop cancels the timer. It reports whether the callback was prevented
	// from running.
	Stop() bool
}

// Scheduler schedules transition completions. The production implementation
// delegates to time.AfterFunc; tests substitute a manual clock so transition
// timing is deterministic.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemScheduler struct{}

type systemTimer struct {
	t *time.Timer
}

func (s systemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{t: time.AfterFunc(d, fn)}
}

func (t systemTimer) Stop() bool {
	return t.t.Stop()
}

// SystemScheduler returns the wall-clock scheduler.
func SystemScheduler() Scheduler {
	return systemScheduler{}
}
