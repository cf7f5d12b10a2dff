package bindz

import "sync"

// Take limits a stream to its first n values.
type Take[T any] struct {
	name  string
	count int
}

// NewTake creates a stage that forwards only the first n values of a stream.
// After forwarding n values it releases its upstream subscription.
//
// When to use:
//   - Waiting for the first ready snapshot in a one-shot command
//   - Testing with a bounded number of emissions
//
// Example:
//
//	// Print the first page of results, then stop listening
//	first := bindz.NewTake[Snapshot](1).Process(ready)
//	first.Subscribe(func(s Snapshot) { print(s) })
func NewTake[T any](count int) *Take[T] {
	return &Take[T]{
		count: count,
		name:  "take",
	}
}

func (t *Take[T]) Process(in Stream[T]) Stream[T] {
	return newStream(t.name, func(fn func(T)) *Subscription {
		var (
			mu    sync.Mutex
			taken int
			done  bool
		)
		if t.count <= 0 {
			return NewSubscription(nil)
		}

		var up *Subscription
		sub := in.Subscribe(func(v T) {
			mu.Lock()
			if done {
				mu.Unlock()
				return
			}
			taken++
			done = taken >= t.count
			release := up
			if !done {
				release = nil
			}
			mu.Unlock()

			fn(v)
			if release != nil {
				release.Unsubscribe()
			}
		})

		// The limit may be reached during the synchronous replay, before up is known.
		mu.Lock()
		up = sub
		finished := done
		mu.Unlock()
		if finished {
			sub.Unsubscribe()
		}
		return sub
	})
}

func (t *Take[T]) Name() string {
	return t.name
}
