package bindz

import (
	"context"
	"sync"
	"sync/atomic"
)

// AsyncMapper maps each value to an asynchronous call and flattens the
// call's eventual Result back into the stream. Calls are started without
// cancelling or waiting for earlier ones, so several may be outstanding at
// once.
//
// By default results are delivered in completion order, not issue order: a
// slow early call can land after a fast later one. WithLatestOnly switches to
// latest-wins delivery, where the result of any call superseded by a newer
// input is ignored. In both modes the calls themselves always run to
// completion; unsubscribing only stops delivery.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type AsyncMapper[In comparable, Out any] struct {
	name       string
	fn         func(context.Context, In) (Out, error)
	ctx        context.Context
	scheduler  Scheduler
	latestOnly bool
	inFlight   atomic.Int64

	mu     sync.Mutex
	latest In
	last   *completion[In, Out]
}

// completion is the most recent successful call for the latest issued input.
type completion[In comparable, Out any] struct {
	input  In
	result Result[Out]
}

// NewAsyncMapper creates a stage that runs fn concurrently for every input.
//
// When to use:
//   - Issuing a network request for every combined input tuple
//   - I/O-bound enrichment where earlier calls must not block later ones
//
// Example:
//
//	// Search on every (subject, page, query) tuple
//	search := bindz.NewAsyncMapper(func(ctx context.Context, q hn.Query) ([]hn.Story, error) {
//		return client.Search(ctx, q)
//	}).WithLatestOnly(true)
//
//	results := search.Process(requests)
//	results.Subscribe(func(r bindz.Result[[]hn.Story]) {
//		if r.IsError() {
//			log.Printf("search failed: %v", r.Err())
//			return
//		}
//		render(r.Value())
//	})
//
// The stage remembers the successful result of the most recently issued
// input, whichever call finished last. When a new subscription's first input
// equals that input, the remembered result is replayed instead of calling fn
// again, so re-attaching a view does not repeat a completed request.
//
// Parameters:
//   - fn: Call executed in its own goroutine per input
//
// Returns a new AsyncMapper stage with fluent configuration.
func NewAsyncMapper[In comparable, Out any](fn func(context.Context, In) (Out, error)) *AsyncMapper[In, Out] {
	return &AsyncMapper[In, Out]{
		name:      "async-mapper",
		fn:        fn,
		ctx:       context.Background(),
		scheduler: Inline,
	}
}

// WithName sets a custom name for this stage.
// If not set, defaults to "async-mapper".
func (a *AsyncMapper[In, Out]) WithName(name string) *AsyncMapper[In, Out] {
	a.name = name
	return a
}

// WithContext sets the context every call receives. The stage never
// cancels it.
func (a *AsyncMapper[In, Out]) WithContext(ctx context.Context) *AsyncMapper[In, Out] {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// WithScheduler sets where completed calls deliver their Result.
// If not set, defaults to Inline (the call's goroutine).
func (a *AsyncMapper[In, Out]) WithScheduler(s Scheduler) *AsyncMapper[In, Out] {
	if s != nil {
		a.scheduler = s
	}
	return a
}

// WithLatestOnly controls whether results of superseded calls are ignored.
// If latest=false (default), every result is delivered in completion order.
// If latest=true, only the result of the most recently issued call is delivered.
func (a *AsyncMapper[In, Out]) WithLatestOnly(latest bool) *AsyncMapper[In, Out] {
	a.latestOnly = latest
	return a
}

// InFlight returns the number of calls that have not returned yet.
func (a *AsyncMapper[In, Out]) InFlight() int64 {
	return a.inFlight.Load()
}

// Process derives the stream of Results. Failed calls become error Results
// carrying the input as the StreamError item.
func (a *AsyncMapper[In, Out]) Process(in Stream[In]) Stream[Result[Out]] {
	return newStream(a.name, func(fn func(Result[Out])) *Subscription {
		var (
			mu     sync.Mutex
			issued uint64
			first  = true
			closed bool
		)
		out := newSerial(fn)

		deliver := func(seq uint64, r Result[Out]) {
			mu.Lock()
			if closed || (a.latestOnly && seq != issued) {
				mu.Unlock()
				return
			}
			out.push(r)
			mu.Unlock()

			out.drain()
		}

		up := in.Subscribe(func(v In) {
			mu.Lock()
			if closed {
				mu.Unlock()
				return
			}
			resumed, ok := a.resume(v, first)
			first = false
			issued++
			seq := issued
			if ok {
				out.push(resumed)
			}
			mu.Unlock()

			if ok {
				out.drain()
				return
			}
			a.start(v, func(r Result[Out]) {
				a.scheduler.Schedule(func() { deliver(seq, r) })
			})
		})

		return NewSubscription(func() {
			mu.Lock()
			closed = true
			mu.Unlock()
			out.close()
			up.Unsubscribe()
		})
	})
}

func (a *AsyncMapper[In, Out]) start(v In, done func(Result[Out])) {
	a.mu.Lock()
	a.latest = v
	a.mu.Unlock()

	a.inFlight.Add(1)
	go func() {
		value, err := a.fn(a.ctx, v)
		if err != nil {
			a.inFlight.Add(-1)
			done(NewError[Out](v, err, a.name))
			return
		}
		r := NewSuccess(value)
		a.remember(v, r)
		a.inFlight.Add(-1)
		done(r)
	}()
}

func (a *AsyncMapper[In, Out]) resume(v In, first bool) (Result[Out], bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !first || a.last == nil || a.last.input != v {
		return Result[Out]{}, false
	}
	a.latest = v
	return a.last.result, true
}

// remember keeps r only if v is still the latest issued input, so an
// earlier call finishing late cannot displace it.
func (a *AsyncMapper[In, Out]) remember(v In, r Result[Out]) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.latest != v {
		return
	}
	a.last = &completion[In, Out]{input: v, result: r}
}

func (a *AsyncMapper[In, Out]) Name() string {
	return a.name
}
