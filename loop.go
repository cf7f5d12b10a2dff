package bindz

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopClosed is returned by Run on a Loop that already ran, and by Do
// when the loop stops before the task executes.
var ErrLoopClosed = errors.New("loop closed")

// Scheduler decides where asynchronous completions re-enter a stream graph.
// Debounce timers and AsyncMapper results are handed to a Scheduler rather
// than delivered from whatever goroutine produced them.
//
// Schedule may be called from inside a clock callback. Implementations other
// than Inline must enqueue fn and return without running it.
type Scheduler interface {
	Schedule(fn func())
}

type inlineScheduler struct{}

func (inlineScheduler) Schedule(fn func()) {
	fn()
}

// Inline runs scheduled functions immediately on the calling goroutine.
// Stages stay safe for concurrent use, but subscribers may be called from
// timer and fetch goroutines.
var Inline Scheduler = inlineScheduler{}

type goScheduler struct{}

func (goScheduler) Schedule(fn func()) {
	go fn()
}

// detached returns a Scheduler that never runs fn on the calling goroutine.
func detached(s Scheduler) Scheduler {
	if s == Inline {
		return goScheduler{}
	}
	return s
}

// Loop is a single-threaded cooperative event loop. Tasks scheduled from
// any goroutine run one at a time, in scheduling order, on the goroutine
// that called Run.
//
// When to use:
//   - Keep all Source mutation and notification on one goroutine
//   - Serialize UI events, timer expiries and network completions
//
// Example:
//
//	loop := bindz.NewLoop()
//	go loop.Run(ctx)
//
//	debounce := bindz.NewDebounce[string](time.Second, bindz.RealClock).
//		WithScheduler(loop)
//
//	// From a UI goroutine:
//	loop.Schedule(func() { query.Set(text) })
//
// Schedule never blocks; the queue is unbounded.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	started bool
}

// NewLoop creates a Loop. Nothing runs until Run is called.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Schedule enqueues fn to run on the loop goroutine.
func (l *Loop) Schedule(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes scheduled tasks until ctx is done, then returns ctx.Err().
// A Loop runs once; later calls return ErrLoopClosed.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	l.started = true
	l.mu.Unlock()
	defer close(l.done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Do schedules fn and waits until it has run. It must not be called from
// the loop goroutine itself.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	l.Schedule(func() {
		defer close(finished)
		fn()
	})

	select {
	case <-finished:
		return nil
	case <-l.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
