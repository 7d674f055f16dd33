// Package cooldown implements the resend throttle of the second-factor step:
// a countdown that loses one unit per tick and releases its tick source as
// soon as it reaches zero or is cancelled.
package cooldown

import (
	"sync"
	"time"

	"github.com/filecoin-project/go-clock"
)

const (
	// DefaultSeconds is the wait imposed between two resend requests.
	DefaultSeconds = 60

	tickPeriod = time.Second
)

// Timer is safe for concurrent use. At most one ticker goroutine exists per
// Timer at any time.
type Timer struct {
	clock   clock.Clock
	seconds int

	mu        sync.Mutex
	remaining int
	ticker    *clock.Ticker
	stop      chan struct{}
	done      chan struct{}
}

type Option func(*Timer)

// WithClock replaces the wall clock, e.g. with clock.NewMock() in tests.
func WithClock(c clock.Clock) Option {
	return func(t *Timer) { t.clock = c }
}

// WithSeconds changes the starting value of the countdown.
func WithSeconds(n int) Option {
	return func(t *Timer) { t.seconds = n }
}

func New(opts ...Option) *Timer {
	t := &Timer{clock: clock.New(), seconds: DefaultSeconds}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Start resets the countdown to its starting value and begins ticking.
// A countdown already running is cancelled first.
func (t *Timer) Start() {
	t.mu.Lock()
	prev := t.stopLocked()

	t.remaining = t.seconds
	if t.remaining > 0 {
		t.ticker = t.clock.Ticker(tickPeriod)
		t.stop = make(chan struct{})
		t.done = make(chan struct{})
		go t.run(t.ticker, t.stop, t.done)
	}
	t.mu.Unlock()

	wait(prev)
}

// Cancel stops ticking immediately, whatever the remaining value. The
// remaining value is reset to zero. Calling Cancel on an idle Timer is a no-op.
func (t *Timer) Cancel() {
	t.mu.Lock()
	prev := t.stopLocked()
	t.remaining = 0
	t.mu.Unlock()

	wait(prev)
}

// Remaining returns the seconds left before a resend is allowed.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Running reports whether a tick source is currently held.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticker != nil
}

// stopLocked releases the current tick source and returns the channel that
// closes once its goroutine has exited (nil when idle).
func (t *Timer) stopLocked() chan struct{} {
	if t.ticker == nil {
		return nil
	}
	t.ticker.Stop()
	close(t.stop)
	done := t.done
	t.ticker, t.stop, t.done = nil, nil, nil
	return done
}

func (t *Timer) run(tk *clock.Ticker, stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		case <-tk.C:
			if t.tick(stop) {
				return
			}
		}
	}
}

// tick decrements the countdown and reports whether the goroutine must exit.
func (t *Timer) tick(stop chan struct{}) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	select {
	case <-stop:
		// cancelled or restarted while this tick was in flight
		return true
	default:
	}

	t.remaining--
	if t.remaining > 0 {
		return false
	}

	t.remaining = 0
	t.ticker.Stop()
	t.ticker, t.stop, t.done = nil, nil, nil
	return true
}

func wait(done chan struct{}) {
	if done != nil {
		<-done
	}
}
