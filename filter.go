package bindz

// Filter selectively passes values through a stream based on a predicate.
// Only values for which the predicate returns true reach subscribers;
// the rest are discarded silently.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Filter[T any] struct {
	name      string
	predicate func(T) bool
}

// NewFilter creates a stage that selectively passes values based on a predicate.
// Values for which the predicate returns true are forwarded unchanged.
// Values for which the predicate returns false are discarded.
//
// The predicate function should be pure (no side effects) and deterministic.
//
// When to use:
//   - Suppress invalid inputs before they reach an expensive stage
//   - Gate a request pipeline on required fields being present
//
// Example:
//
//	// Never request a negative page
//	pages := bindz.NewFilter(func(p int) bool {
//		return p >= 0
//	}).WithName("page-non-negative").Process(page)
//
//	// Never search for an empty string
//	queries := bindz.NewFilter(func(q string) bool {
//		return q != ""
//	}).Process(query)
//
// Parameters:
//   - predicate: Function that returns true for values to keep, false to discard
//
// Returns a new Filter stage.
func NewFilter[T any](predicate func(T) bool) *Filter[T] {
	return &Filter[T]{
		name:      "filter",
		predicate: predicate,
	}
}

// WithName sets a custom name for this stage.
// If not set, defaults to "filter".
func (f *Filter[T]) WithName(name string) *Filter[T] {
	f.name = name
	return f
}

// Process derives a stream forwarding only the values of in that match the predicate.
func (f *Filter[T]) Process(in Stream[T]) Stream[T] {
	return newStream(f.name, func(fn func(T)) *Subscription {
		return in.Subscribe(func(v T) {
			if f.predicate(v) {
				fn(v)
			}
		})
	})
}

// Name returns the stage name for debugging and monitoring.
func (f *Filter[T]) Name() string {
	return f.name
}
