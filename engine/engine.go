// Package engine implements the temperature sampling engine: a
// timer-driven producer, per-consumer blocking reads with edge-triggered
// threshold detection, and live-reconfigurable period/threshold/mode.
package engine

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/neox5/simtemp/seed"
)

// Engine is the single source of truth for the simulated sensor: current
// reading, sample sequence, live configuration, and aggregate counters.
// All mutable state is guarded by one mutex; the only object touched
// outside it is the condition variable used for the wakeup broadcast.
type Engine struct {
	mu   sync.Mutex
	cond *sync.Cond

	// guarded by mu
	currentMC     int
	sampleSeq     uint32
	periodMS      int
	thresholdMC   int
	mode          Mode
	rampDir       int
	updates       uint64
	alerts        uint64
	lastErrorCode int
	stopped       bool

	scheduler    Scheduler
	seedRegistry *seed.Registry
	rng          *rand.Rand
	startMono    time.Time
}

// New creates an engine from DefaultConfig with the given options applied.
// It returns ErrInvalid if the resulting configuration is out of range.
// The engine is created in the stopped state; call Start to arm the timer.
func New(opts ...Option) (*Engine, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newFromConfig(cfg)
}

func newFromConfig(cfg Config) (*Engine, error) {
	if !validPeriod(cfg.PeriodMS) {
		return nil, ErrInvalid
	}
	if !validThreshold(cfg.ThresholdMC) {
		return nil, ErrInvalid
	}

	registry := seed.NewRegistry(cfg.Seed)

	e := &Engine{
		currentMC:    cfg.InitialMC,
		periodMS:     cfg.PeriodMS,
		thresholdMC:  cfg.ThresholdMC,
		mode:         cfg.Mode,
		rampDir:      1,
		stopped:      true,
		scheduler:    newTimerScheduler(),
		seedRegistry: registry,
		rng:          registry.NewRand(),
		startMono:    time.Now(),
	}
	e.cond = sync.NewCond(&e.mu)
	return e, nil
}

// Start arms the timer at the currently configured period. Start is a
// no-op if the engine is already running.
func (e *Engine) Start() {
	e.mu.Lock()
	if !e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = false
	period := e.periodMS
	e.mu.Unlock()

	e.scheduler.Arm(time.Duration(period)*time.Millisecond, e.onTick)
}

// Stop cancels the timer and wakes every blocked reader with a terminal
// (SHUTDOWN) indication. Stop is idempotent.
func (e *Engine) Stop() {
	e.mu.Lock()
	already := e.stopped
	e.stopped = true
	e.mu.Unlock()

	e.scheduler.Cancel()
	if !already {
		e.cond.Broadcast()
	}
}

// onTick is the timer callback: it produces exactly one new sample and
// re-arms itself at whatever period is configured at the moment it runs,
// so a period change takes effect starting with the very next tick.
func (e *Engine) onTick() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}

	next, nextDir := step(e.mode, e.currentMC, e.rampDir, e.rng)
	e.currentMC = next
	e.rampDir = nextDir
	e.updates++
	e.sampleSeq++
	period := e.periodMS
	e.mu.Unlock()

	e.cond.Broadcast()

	e.mu.Lock()
	stopped := e.stopped
	e.mu.Unlock()
	if stopped {
		return
	}
	e.scheduler.Arm(time.Duration(period)*time.Millisecond, e.onTick)
}

func (e *Engine) monotonicNanos() uint64 {
	return uint64(time.Since(e.startMono).Nanoseconds())
}

func (e *Engine) setLastError(err error) {
	e.mu.Lock()
	e.lastErrorCode = errorCode(err)
	e.mu.Unlock()
}

// SetPeriodMS validates and commits a new sampling period in milliseconds.
// Accepted range is [1, 10000]; effect applies starting with the next
// re-arm. Rejection leaves period_ms unchanged and sets last_error.
func (e *Engine) SetPeriodMS(v int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !validPeriod(v) {
		e.lastErrorCode = errorCode(ErrInvalid)
		return ErrInvalid
	}
	e.periodMS = v
	return nil
}

// PeriodMS returns the currently configured sampling period.
func (e *Engine) PeriodMS() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.periodMS
}

// SetThresholdMC validates and commits a new alert threshold in
// milli-degrees Celsius. Accepted range is [-20000, 60000]. Rejection
// leaves threshold_mC unchanged and sets last_error.
func (e *Engine) SetThresholdMC(v int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !validThreshold(v) {
		e.lastErrorCode = errorCode(ErrInvalid)
		return ErrInvalid
	}
	e.thresholdMC = v
	return nil
}

// ThresholdMC returns the currently configured alert threshold.
func (e *Engine) ThresholdMC() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.thresholdMC
}

// SetMode validates and commits a new operating mode from its wire token
// ("normal", "noisy", "ramp"; a single trailing newline is stripped).
// Rejection leaves mode unchanged and sets last_error.
func (e *Engine) SetMode(token string) error {
	mode, ok := parseMode(token)
	if !ok {
		e.mu.Lock()
		e.lastErrorCode = errorCode(ErrInvalid)
		e.mu.Unlock()
		return ErrInvalid
	}

	e.mu.Lock()
	e.mode = mode
	e.mu.Unlock()
	return nil
}

// Mode returns the currently configured operating mode.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// CurrentMC returns the current simulated reading, for diagnostics.
func (e *Engine) CurrentMC() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentMC
}
