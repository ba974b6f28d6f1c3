package engine

import "fmt"

// Stats is the engine's aggregate counters, as surfaced by the read-only
// "stats" item of the key/value configuration surface.
type Stats struct {
	Updates   uint64
	Alerts    uint64
	LastError int
}

// Stats returns a snapshot of the engine's aggregate counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Stats{
		Updates:   e.updates,
		Alerts:    e.alerts,
		LastError: e.lastErrorCode,
	}
}

// String renders stats in the exact multi-line text form the key/value
// configuration surface's "stats" item returns.
func (s Stats) String() string {
	return fmt.Sprintf("updates=%d\nalerts=%d\nlast_error=%d\n", s.Updates, s.Alerts, s.LastError)
}
