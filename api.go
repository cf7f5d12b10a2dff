// Package bindz provides type-safe, composable push-based streams and a
// view-binding adapter that connects a composed stream to a rendering
// boundary.
//
// The core abstraction is the Stream interface: subscribing attaches a
// callback and returns a Subscription that detaches it. A Source is a
// stateful Stream holding a current value; stages such as Filter, Debounce
// and Mapper derive new Streams from existing ones. Derived streams are cold:
// every subscription builds its own stage state and subscribes upstream.
//
// Basic usage:
//
//	query := bindz.NewSource("react")
//
//	// Only search once typing has paused, and never for an empty query
//	debounced := bindz.NewDebounce[string](time.Second, bindz.RealClock).Process(query)
//	nonEmpty := bindz.NewFilter(func(q string) bool { return q != "" }).Process(debounced)
//
//	sub := nonEmpty.Subscribe(func(q string) {
//		fmt.Printf("searching for %q\n", q)
//	})
//	defer sub.Unsubscribe()
//
//	query.Set("golang")
//
// Delivery is synchronous and order preserving within one notification
// chain. Asynchronous stages (Debounce, AsyncMapper) hand their completions
// to a Scheduler; use a Loop to run the whole graph on a single goroutine.
//
// The package provides:
//   - Push sources with replay of the current value
//   - Filtering, mapping, debouncing, tapping and taking
//   - combineLatest joins over N streams
//   - Concurrent fan-out of asynchronous calls with completion-order or
//     latest-wins delivery
//   - A Binding adapter with attach/detach lifecycle and event dispatchers
package bindz

// Stream is the core interface for push-based sequences.
// Streams should:
//   - Deliver values to a subscriber in the order they were produced
//   - Never call a subscriber after its Subscription was cancelled
//   - Be safe to subscribe to from multiple goroutines
type Stream[T any] interface {
	// Subscribe attaches fn and returns the handle that detaches it.
	// Stateful streams may invoke fn synchronously before Subscribe returns.
	Subscribe(fn func(T)) *Subscription

	// Name returns a descriptive name for the stream, useful for debugging.
	Name() string
}

// Stage transforms one Stream into another.
type Stage[In, Out any] interface {
	// Process derives the output stream from in. It does not subscribe to in
	// until the returned stream is subscribed to.
	Process(in Stream[In]) Stream[Out]

	// Name returns a descriptive name for the stage, useful for debugging.
	Name() string
}

// derived is a Stream built from a subscribe function. Every stage returns one.
type derived[T any] struct {
	subscribe func(fn func(T)) *Subscription
	name      string
}

func newStream[T any](name string, subscribe func(fn func(T)) *Subscription) Stream[T] {
	return &derived[T]{name: name, subscribe: subscribe}
}

func (d *derived[T]) Subscribe(fn func(T)) *Subscription {
	return d.subscribe(fn)
}

func (d *derived[T]) Name() string {
	return d.name
}
