package countdown

import (
	"context"
	"sync"
	"time"

	"github.com/aikyam/site/pkg/logger"
	"github.com/aikyam/site/pkg/metrics"
)

const defaultTick = time.Second

// Publisher receives every rendered display.
type Publisher func(Display)

// TimerOption configures a Timer.
type TimerOption func(*Timer)

// WithTick sets the interval between displays.
func WithTick(d time.Duration) TimerOption {
	return func(t *Timer) {
		if d > 0 {
			t.tick = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TimerOption {
	return func(t *Timer) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLogger sets the timer logger.
func WithLogger(l logger.Logger) TimerOption {
	return func(t *Timer) {
		if l != nil {
			t.logger = l
		}
	}
}

// Timer drives at most one tick loop at a time.
type Timer struct {
	tick   time.Duration
	now    func() time.Time
	logger logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTimer creates an idle timer.
func NewTimer(opts ...TimerOption) *Timer {
	t := &Timer{
		tick:   defaultTick,
		now:    time.Now,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start cancels any running loop, then publishes the first display
// synchronously. With a target it keeps publishing every tick until the
// target goes live; a nil target publishes "Stay tuned" once and leaves no
// loop running.
func (t *Timer) Start(ctx context.Context, target *Target, publish Publisher) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopLocked() {
		metrics.RecordCountdownRestart()
	}

	first := Compute(target, t.now())
	publish(first)
	metrics.RecordCountdownTick()
	if target == nil || first.State == StateLive {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done

	t.logger.Info(loopCtx, "countdown started",
		logger.String("event", target.Event.ID),
		logger.Time("start", target.Start),
	)
	go t.run(loopCtx, *target, publish, done)
}

func (t *Timer) run(ctx context.Context, target Target, publish Publisher, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d := Compute(&target, t.now())
			publish(d)
			metrics.RecordCountdownTick()
			if d.State == StateLive {
				t.logger.Info(ctx, "countdown reached event start", logger.String("event", target.Event.ID))
				return
			}
		}
	}
}

// Stop cancels the running loop, if any, and waits for it to exit.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Running reports whether a tick loop is active.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// stopLocked reports whether a live loop was cancelled.
func (t *Timer) stopLocked() bool {
	if t.cancel == nil {
		return false
	}
	wasRunning := true
	select {
	case <-t.done:
		wasRunning = false
	default:
	}
	t.cancel()
	<-t.done
	t.cancel = nil
	t.done = nil
	return wasRunning
}
