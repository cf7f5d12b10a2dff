package bindz

import (
	"sync"
	"time"
)

// Debounce forwards a value only after a quiet period with no newer value.
// It's useful for filtering out rapid successive events.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Debounce[T any] struct {
	name      string
	clock     Clock
	scheduler Scheduler
	duration  time.Duration
}

// NewDebounce creates a stage that delays and coalesces rapid values.
// Every upstream value (re)starts a timer; when the timer elapses without a
// newer value, the most recent value is forwarded exactly once. Superseded
// values are dropped and never forwarded.
//
// When to use:
//   - Search-as-you-type input handling
//   - Preventing excessive API calls from UI events
//   - Settling values that fluctuate rapidly
//
// Example:
//
//	// Only search after one second of no typing
//	debounced := bindz.NewDebounce[string](time.Second, bindz.RealClock).Process(query)
//
//	// Deterministic tests drive time with a fake clock
//	clock := clockz.NewFakeClock()
//	debounced := bindz.NewDebounce[string](time.Second, clock).Process(query)
//	clock.Advance(time.Second)
//	clock.BlockUntilReady()
//
// Parameters:
//   - duration: The quiet period before forwarding a value
//   - clock: Clock interface for time operations
func NewDebounce[T any](duration time.Duration, clock Clock) *Debounce[T] {
	return &Debounce[T]{
		duration:  duration,
		name:      "debounce",
		clock:     clock,
		scheduler: Inline,
	}
}

// WithName sets a custom name for this stage.
// If not set, defaults to "debounce".
func (d *Debounce[T]) WithName(name string) *Debounce[T] {
	d.name = name
	return d
}

// WithScheduler sets where expired timers deliver their value.
// If not set, defaults to Inline, which delivers on a goroutine started for
// the expired timer.
func (d *Debounce[T]) WithScheduler(s Scheduler) *Debounce[T] {
	if s != nil {
		d.scheduler = s
	}
	return d
}

// Process derives the debounced stream. Each subscription owns its timer.
//
// Expired timers never call downstream code from the clock callback, which
// may run under the clock's own lock. The callback only hands the value to
// the scheduler; Inline is replaced by a fresh goroutine for that handoff.
// Deliveries to one subscriber are serialized.
func (d *Debounce[T]) Process(in Stream[T]) Stream[T] {
	handoff := detached(d.scheduler)
	return newStream(d.name, func(fn func(T)) *Subscription {
		var (
			mu     sync.Mutex
			timer  Timer
			gen    uint64
			closed bool
		)
		out := newSerial(fn)

		fire := func(v T, mine uint64) {
			mu.Lock()
			if closed || gen != mine {
				mu.Unlock()
				return
			}
			out.push(v)
			mu.Unlock()

			out.drain()
		}

		up := in.Subscribe(func(v T) {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}

			gen++
			mine := gen
			if timer != nil {
				timer.Stop()
			}
			timer = d.clock.AfterFunc(d.duration, func() {
				handoff.Schedule(func() { fire(v, mine) })
			})
		})

		return NewSubscription(func() {
			mu.Lock()
			closed = true
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			out.close()
			up.Unsubscribe()
		})
	})
}

func (d *Debounce[T]) Name() string {
	return d.name
}
