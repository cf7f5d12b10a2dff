package bindz

import "sync"

// CombineLatest joins N streams of the same type. Once every source has
// produced at least one value, it emits the aggregate of the latest values
// each time any single source produces a new one.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type CombineLatest[T, R any] struct {
	name    string
	combine func([]T) R
}

// NewCombineLatest creates a join that aggregates the latest value of every
// source with combine.
//
// Nothing is emitted until all sources have emitted. After that every
// upstream emission produces exactly one output, including intermediate
// tuples caused by several sources changing within one notification chain;
// duplicates are not suppressed. Emissions to a subscriber are serialized
// even when sources deliver from different goroutines.
//
// When to use:
//   - Recomputing a request whenever any of its inputs changes
//   - Merging raw inputs and asynchronous results into one view state
//
// Example:
//
//	total := bindz.NewCombineLatest(func(vs []int) int {
//		return vs[0] + vs[1]
//	}).Process(a, b)
//
// For heterogeneous sources use Combine3 or Combine4.
//
// Parameters:
//   - combine: Aggregator receiving the latest values in source order. The
//     slice is a fresh copy on every call.
func NewCombineLatest[T, R any](combine func([]T) R) *CombineLatest[T, R] {
	return &CombineLatest[T, R]{
		name:    "combine-latest",
		combine: combine,
	}
}

// WithName sets a custom name for this join.
// If not set, defaults to "combine-latest".
func (c *CombineLatest[T, R]) WithName(name string) *CombineLatest[T, R] {
	c.name = name
	return c
}

// Process derives the joined stream. Subscribing to it subscribes to every
// source in order.
func (c *CombineLatest[T, R]) Process(ins ...Stream[T]) Stream[R] {
	return newStream(c.name, func(fn func(R)) *Subscription {
		var (
			mu      sync.Mutex
			latest  = make([]T, len(ins))
			has     = make([]bool, len(ins))
			missing = len(ins)
			closed  bool
		)
		out := newSerial(fn)

		subs := make([]*Subscription, 0, len(ins))
		for i, in := range ins {
			subs = append(subs, in.Subscribe(func(v T) {
				mu.Lock()
				if closed {
					mu.Unlock()
					return
				}
				if !has[i] {
					has[i] = true
					missing--
				}
				latest[i] = v
				if missing > 0 {
					mu.Unlock()
					return
				}
				values := make([]T, len(latest))
				copy(values, latest)
				out.push(c.combine(values))
				mu.Unlock()

				out.drain()
			}))
		}

		return NewSubscription(func() {
			mu.Lock()
			closed = true
			mu.Unlock()
			out.close()
			joinSubscriptions(subs...).Unsubscribe()
		})
	})
}

func (c *CombineLatest[T, R]) Name() string {
	return c.name
}

func boxed[T any](in Stream[T]) Stream[any] {
	return NewMapper(in.Name(), func(v T) any { return v }).Process(in)
}

// unbox tolerates nil interface values, which a plain assertion would reject.
func unbox[T any](v any) T {
	t, _ := v.(T)
	return t
}

// Combine3 joins three heterogeneous streams with combineLatest semantics.
func Combine3[A, B, C, R any](a Stream[A], b Stream[B], c Stream[C], fn func(A, B, C) R) Stream[R] {
	return NewCombineLatest(func(vs []any) R {
		return fn(unbox[A](vs[0]), unbox[B](vs[1]), unbox[C](vs[2]))
	}).WithName("combine3").Process(boxed(a), boxed(b), boxed(c))
}

// Combine4 joins four heterogeneous streams with combineLatest semantics.
func Combine4[A, B, C, D, R any](a Stream[A], b Stream[B], c Stream[C], d Stream[D], fn func(A, B, C, D) R) Stream[R] {
	return NewCombineLatest(func(vs []any) R {
		return fn(unbox[A](vs[0]), unbox[B](vs[1]), unbox[C](vs[2]), unbox[D](vs[3]))
	}).WithName("combine4").Process(boxed(a), boxed(b), boxed(c), boxed(d))
}
