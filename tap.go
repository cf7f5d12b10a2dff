package bindz

import "log/slog"

// Tap executes a side effect function for each value while passing values
// through unchanged. It's used for logging, diagnostics and metrics: any
// observation that must not modify the data flow.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Tap[T any] struct {
	name   string
	fn     func(T)
	logger *slog.Logger
}

// NewTap creates a stage that executes a side effect on each value while
// forwarding every value unchanged.
//
// When to use:
//   - Diagnostic logging of fetch results
//   - Metrics collection
//   - Testing and verification
//
// Example:
//
//	logged := bindz.NewTap(func(r bindz.Result[[]Story]) {
//		if r.IsError() {
//			slog.Warn("search failed", "error", r.Err())
//		}
//	}).WithName("search-log").Process(results)
//
// Parameters:
//   - fn: Side effect function that receives each value
//
// Returns a new Tap stage.
func NewTap[T any](fn func(T)) *Tap[T] {
	return &Tap[T]{
		name: "tap",
		fn:   fn,
	}
}

// WithName sets a custom name for this stage.
// If not set, defaults to "tap".
func (t *Tap[T]) WithName(name string) *Tap[T] {
	t.name = name
	return t
}

// WithLogger sets the logger that records panicking side effects.
// If not set, defaults to slog.Default().
func (t *Tap[T]) WithLogger(logger *slog.Logger) *Tap[T] {
	t.logger = logger
	return t
}

// Process runs the side effect on each value of in and forwards it.
// A panicking side effect is logged and the value is still forwarded.
func (t *Tap[T]) Process(in Stream[T]) Stream[T] {
	return newStream(t.name, func(fn func(T)) *Subscription {
		return in.Subscribe(func(v T) {
			t.observe(v)
			fn(v)
		})
	})
}

func (t *Tap[T]) observe(v T) {
	defer func() {
		if r := recover(); r != nil {
			logger := t.logger
			if logger == nil {
				logger = slog.Default()
			}
			logger.Error("tap side effect panicked", "stage", t.name, "panic", r)
		}
	}()
	t.fn(v)
}

// Name returns the stage name for debugging and monitoring.
func (t *Tap[T]) Name() string {
	return t.name
}
