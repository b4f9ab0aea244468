package loop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Handle revokes a scheduled callback. Cancel is idempotent; a cancelled
// callback never runs.
type Handle interface {
	Cancel()
}

// Scheduler requests that fn be invoked once, at the host's next frame.
type Scheduler interface {
	Schedule(fn func()) Handle
}

type task struct {
	fn        func()
	cancelled atomic.Bool
}

func (t *task) Cancel() { t.cancelled.Store(true) }

func (t *task) run() bool {
	if t.cancelled.Load() {
		return false
	}
	t.fn()
	return true
}

// ManualScheduler queues callbacks until the host drains them with
// RunPending. Hosts with their own frame callback (bubbletea, raylib) and
// tests use it.
type ManualScheduler struct {
	queue []*task
}

func NewManualScheduler() *ManualScheduler { return &ManualScheduler{} }

func (s *ManualScheduler) Schedule(fn func()) Handle {
	t := &task{fn: fn}
	s.queue = append(s.queue, t)
	return t
}

// RunPending runs the callbacks queued before the call and returns how many
// ran. Callbacks scheduled while draining wait for the next call.
func (s *ManualScheduler) RunPending() int {
	due := s.queue
	s.queue = nil
	ran := 0
	for _, t := range due {
		if t.run() {
			ran++
		}
	}
	return ran
}

// Pending counts queued callbacks that have not been cancelled.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.cancelled.Load() {
			n++
		}
	}
	return n
}

// TickerScheduler runs scheduled callbacks on the goroutine that calls Run,
// no more often than fps times per second. Events from other goroutines are
// delivered onto the same goroutine through Post, so callbacks never race
// with them. The interval is best effort.
type TickerScheduler struct {
	limiter *rate.Limiter

	mu    sync.Mutex
	queue []*task

	events chan func()
	wake   chan struct{}
	done   chan struct{}
}

func NewTickerScheduler(fps int) *TickerScheduler {
	limit := rate.Inf
	if fps > 0 {
		limit = rate.Limit(fps)
	}
	return &TickerScheduler{
		limiter: rate.NewLimiter(limit, 1),
		events:  make(chan func(), 64),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (s *TickerScheduler) Schedule(fn func()) Handle {
	t := &task{fn: fn}
	s.mu.Lock()
	s.queue = append(s.queue, t)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return t
}

// Post hands fn to the Run goroutine. It reports false once Run has
// returned.
func (s *TickerScheduler) Post(fn func()) bool {
	select {
	case s.events <- fn:
		return true
	case <-s.done:
		return false
	}
}

// Done is closed when Run returns.
func (s *TickerScheduler) Done() <-chan struct{} { return s.done }

// Run services frames and posted events until ctx is cancelled.
func (s *TickerScheduler) Run(ctx context.Context) error {
	defer close(s.done)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	armed := false

	for {
		if !armed && s.hasQueued() {
			timer.Reset(s.limiter.Reserve().Delay())
			armed = true
		}
		var tick <-chan time.Time
		if armed {
			tick = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-s.events:
			fn()
		case <-s.wake:
		case <-tick:
			armed = false
			s.runDue()
		}
	}
}

func (s *TickerScheduler) hasQueued() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) > 0
}

func (s *TickerScheduler) runDue() {
	s.mu.Lock()
	due := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, t := range due {
		t.run()
	}
}
