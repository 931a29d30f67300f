// Package timer drives the agent's periodic update.
package timer

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/linanwx/hal9000/logger"
)

// DefaultInterval is the time between two ticks.
const DefaultInterval = time.Second

// ErrInvalidInterval is returned for a zero or negative interval.
var ErrInvalidInterval = errors.New("timer: interval must be positive")

// TickFunc receives the tick number, starting at 1.
type TickFunc func(seq uint64)

// Timer calls a TickFunc once per interval. A tick that is still running when
// the next one is due delays it rather than overlapping.
type Timer struct {
	interval  time.Duration
	fn        TickFunc
	scheduler gocron.Scheduler
	seq       atomic.Uint64

	mu      sync.Mutex
	started bool
	stopped bool
}

// New creates a stopped timer.
func New(interval time.Duration, fn TickFunc) (*Timer, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}
	if fn == nil {
		return nil, errors.New("timer: tick func is nil")
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("timer: create scheduler: %w", err)
	}
	return &Timer{interval: interval, fn: fn, scheduler: s}, nil
}

// Interval returns the configured interval.
func (t *Timer) Interval() time.Duration { return t.interval }

// Start schedules the tick job and starts the scheduler. Calling Start twice is
// an error.
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.stopped {
		return errors.New("timer: already started")
	}

	_, err := t.scheduler.NewJob(
		gocron.DurationJob(t.interval),
		gocron.NewTask(t.tick),
		gocron.WithName("agent-tick"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("timer: schedule tick: %w", err)
	}
	t.scheduler.Start()
	t.started = true
	logger.Debug("timer started", "interval", t.interval)
	return nil
}

func (t *Timer) tick() {
	t.fn(t.seq.Add(1))
}

// Stop shuts the scheduler down and waits for a running tick to finish.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	if err := t.scheduler.Shutdown(); err != nil {
		logger.Warn("timer shutdown failed", "err", err)
	}
}
