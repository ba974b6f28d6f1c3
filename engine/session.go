package engine

import "context"

// Session holds one consumer's view cursor into the engine's sample
// stream: the last sequence number it has consumed and the last alert
// polarity it observed. Session state belongs solely to its consumer; the
// engine never tracks open sessions centrally, so closing a session is
// simply dropping its reference.
type Session struct {
	engine *Engine

	lastSeq   uint32
	lastAlert bool

	// Transport, if set, delivers the encoded record into dst. The
	// default (nil) copies the record directly and never fails; hosts or
	// tests that want to exercise ErrTransport can install a func that
	// fails on demand.
	Transport func(dst []byte, rec Record) error
}

// OpenSession creates a fresh session on this engine. Per the read
// protocol's lazy-creation rule, the cursor is initialized to the
// engine's current sequence number and alert polarity, which guarantees
// the session's first Read waits for the next tick rather than returning
// an already-materialized sample.
func (e *Engine) OpenSession() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	return &Session{
		engine:    e,
		lastSeq:   e.sampleSeq,
		lastAlert: e.currentMC >= e.thresholdMC,
	}
}

// Close releases the session. It does not mutate engine state.
func (s *Session) Close() {
	s.engine = nil
}

// Readiness is a non-blocking probe. READABLE reports whether a sample
// newer than the session's cursor exists; PRIORITY reports whether the
// current alert polarity differs from the session's last observed
// polarity. Neither bit mutates the session.
type Readiness struct {
	Readable bool
	Priority bool
}

// Poll returns the session's current readiness without blocking or
// mutating session state.
func (s *Session) Poll() Readiness {
	e := s.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	alert := e.currentMC >= e.thresholdMC
	return Readiness{
		Readable: e.sampleSeq != s.lastSeq,
		Priority: alert != s.lastAlert,
	}
}

// Read blocks until a sample strictly newer than the session's cursor is
// available, then delivers exactly one sample record into buf.
//
// It fails with ErrInterrupted if ctx is cancelled before a new sample
// arrives, ErrBufferTooSmall if buf is smaller than RecordSize,
// ErrTransport if delivery fails, or ErrShutdown if the engine stops
// while waiting. Only a fully successful read advances the session
// cursor: a buffer or transport failure leaves the session exactly where
// it was; ctx cancellation and shutdown never touch the session either.
func (s *Session) Read(ctx context.Context, buf []byte) (Record, error) {
	e := s.engine
	prevSeq := s.lastSeq

	if err := e.waitForAdvance(ctx, prevSeq); err != nil {
		return Record{}, err
	}

	e.mu.Lock()
	timestamp := e.monotonicNanos()
	tempMC := e.currentMC
	newSeq := e.sampleSeq
	alert := tempMC >= e.thresholdMC
	if alert != s.lastAlert {
		e.alerts++
	}
	e.mu.Unlock()

	var flags uint32 = FlagNewSample
	if alert {
		flags |= FlagThresholdCrossed
	}
	rec := Record{TimestampNS: timestamp, TempMC: int32(tempMC), Flags: flags}

	if len(buf) < RecordSize {
		e.setLastError(ErrBufferTooSmall)
		return Record{}, ErrBufferTooSmall
	}

	if s.Transport != nil {
		if err := s.Transport(buf, rec); err != nil {
			e.setLastError(ErrTransport)
			return Record{}, ErrTransport
		}
	} else {
		rec.Encode(buf)
	}

	s.lastSeq = newSeq
	s.lastAlert = alert
	return rec, nil
}

// waitForAdvance blocks until the engine's sample sequence differs from
// prevSeq, the engine stops, or ctx is cancelled. It never mutates
// session state, only observes engine state.
//
// ctx cancellation is watched from a second goroutine, since sync.Cond
// has no select-friendly wait. That goroutine records the cancellation
// under e.mu before broadcasting, so the flag it sets and the Wait loop's
// own check of sampleSeq/stopped are ordered by the same lock: the
// watcher cannot record "cancelled" and broadcast while this goroutine is
// between checking the loop condition and actually parking in Wait,
// because that whole span holds e.mu. Broadcasting without first taking
// e.mu (e.g. straight off ctx.Done()) would race exactly that window and
// could drop the wakeup until the next tick or Stop.
func (e *Engine) waitForAdvance(ctx context.Context, prevSeq uint32) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var cancelled bool
	if ctx != nil && ctx.Done() != nil {
		giveUp := make(chan struct{})
		defer close(giveUp)
		go func() {
			select {
			case <-ctx.Done():
				e.mu.Lock()
				cancelled = true
				e.mu.Unlock()
				e.cond.Broadcast()
			case <-giveUp:
			}
		}()
	}

	for e.sampleSeq == prevSeq && !e.stopped && !cancelled {
		e.cond.Wait()
	}

	if cancelled && e.sampleSeq == prevSeq {
		return ErrInterrupted
	}
	if e.sampleSeq != prevSeq {
		return nil
	}
	return ErrShutdown
}
