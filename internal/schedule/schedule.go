// Package schedule implements a cron-style task pool: events carry a list
// of time-spec alternatives matched at minute resolution, an optional skip
// flag, and a bounded retry budget consumed synchronously in the same
// execution pass.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/omegamvc/query/internal/logger"
)

// Action is the callback an event runs when due.
type Action func(ctx context.Context) error

// Schedule is the event pool and its driver.
type Schedule struct {
	events []*Event
	logger logger.Logger
	clock  func() time.Time
}

// Option is a functional option for configuring a Schedule.
type Option func(*Schedule)

// WithLogger sets the logger used to report event failures. Failures are
// never propagated out of the pool driver; logging is the only signal.
func WithLogger(l logger.Logger) Option {
	return func(s *Schedule) {
		s.logger = l
	}
}

// WithClock overrides the reference-time source. Tests pin time with this.
func WithClock(clock func() time.Time) Option {
	return func(s *Schedule) {
		s.clock = clock
	}
}

// New creates an empty pool.
func New(opts ...Option) *Schedule {
	s := &Schedule{
		logger: &logger.NoopLogger{},
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Call registers a callback and returns its event for fluent configuration.
// Until EventName is called the event is anonymous, named by a fresh UUID.
func (s *Schedule) Call(action Action) *Event {
	e := &Event{
		name:      uuid.NewString(),
		anonymous: true,
		action:    action,
		attempts:  1,
		clock:     s.clock,
	}
	s.events = append(s.events, e)
	return e
}

// Events returns the pool contents in registration order.
func (s *Schedule) Events() []*Event {
	return s.events
}

// Execute runs every due, non-skipped event once, retrying a failed event
// synchronously until its attempt budget is spent. The driver always
// returns normally; per-event failures are captured on the event and
// logged.
func (s *Schedule) Execute(ctx context.Context) {
	now := s.clock()
	for _, e := range s.events {
		if e.skip || !e.IsDue(now) {
			continue
		}
		s.runWithRetry(ctx, e)
	}
}

func (s *Schedule) runWithRetry(ctx context.Context, e *Event) {
	remaining := e.attempts
	for remaining > 0 {
		remaining--
		err := e.run(ctx)
		if err == nil {
			e.failed = false
			e.lastErr = nil
			return
		}
		e.failed = true
		e.lastErr = err
		s.logger.Error("scheduled event failed",
			"event", e.name,
			"attempts_left", remaining,
			"error", err,
		)
	}
}

// Run drives the pool: it executes once per minute, waking on the minute
// boundary, until the context is done.
func (s *Schedule) Run(ctx context.Context) error {
	for {
		now := s.clock()
		wait := now.Add(time.Minute).Truncate(time.Minute).Sub(now)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		s.Execute(ctx)
	}
}

// Event is one pool entry: a callback, its time-spec alternatives, and its
// retry bookkeeping.
type Event struct {
	name      string
	anonymous bool
	action    Action
	times     []TimeSpec
	attempts  int
	skip      bool
	failed    bool
	lastErr   error
	clock     func() time.Time
}

// run invokes the callback, converting a panic into an error so a failing
// event can never take down the pool driver.
func (e *Event) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event panicked: %v", r)
		}
	}()
	return e.action(ctx)
}

// EventName names the event, clearing the anonymous flag.
func (e *Event) EventName(name string) *Event {
	e.name = name
	e.anonymous = false
	return e
}

// Retry sets the attempt budget: the total number of runs allowed per
// execution pass, retries included. Values below one keep the single
// default attempt.
func (e *Event) Retry(attempts int) *Event {
	if attempts >= 1 {
		e.attempts = attempts
	}
	return e
}

// Skip excludes the event from execution when the condition holds.
func (e *Event) Skip(when bool) *Event {
	e.skip = when
	return e
}

// IsDue reports whether any time-spec alternative matches t at minute
// resolution. An event with no time spec is never due.
func (e *Event) IsDue(t time.Time) bool {
	for _, spec := range e.times {
		if spec.Matches(t) {
			return true
		}
	}
	return false
}

// Name returns the event name; a UUID for anonymous events.
func (e *Event) Name() string { return e.name }

// Anonymous reports whether the event was never explicitly named.
func (e *Event) Anonymous() bool { return e.anonymous }

// Failed reports whether the last execution pass ended in failure.
func (e *Event) Failed() bool { return e.failed }

// Err returns the error from the last failed run, nil after success.
func (e *Event) Err() error { return e.lastErr }

// Attempts returns the configured attempt budget.
func (e *Event) Attempts() int { return e.attempts }
