package engine

import (
	"sync"
	"time"
)

// Scheduler arms a one-shot callback after a delay and can cancel a
// pending arm. It decouples tick scheduling from any one timer facility,
// so the generator and read/readiness protocols never reference
// time.Timer directly.
//
// The engine re-Arms after every fire using whatever period is configured
// at that moment, which is how a period change takes effect starting with
// the very next tick without restarting anything.
type Scheduler interface {
	// Arm schedules fn to run once, after delay elapses, on its own
	// goroutine. A prior pending arm, if any, is replaced.
	Arm(delay time.Duration, fn func())
	// Cancel aborts a pending arm. Safe to call when nothing is armed, or
	// more than once.
	Cancel()
}

// timerScheduler is a Scheduler backed by time.Timer.
type timerScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

func newTimerScheduler() *timerScheduler {
	return &timerScheduler{}
}

func (s *timerScheduler) Arm(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, fn)
}

func (s *timerScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
