package bindz

// Result represents either a successful value or an error produced by a
// stage. Errors travel in-band so that a failed asynchronous call becomes an
// ordinary stream value instead of terminating the stream and every join
// downstream of it.
type Result[T any] struct {
	value T
	err   *StreamError
}

// NewSuccess creates a Result containing a successful value.
func NewSuccess[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// NewError creates a Result containing an error raised while processing item.
func NewError[T any](item any, err error, stage string) Result[T] {
	return Result[T]{err: NewStreamError(item, err, stage)}
}

// IsError returns true if this Result contains an error.
func (r Result[T]) IsError() bool {
	return r.err != nil
}

// IsSuccess returns true if this Result contains a successful value.
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// Value returns the successful value.
// Panics if called on a Result containing an error - always check IsSuccess() first.
func (r Result[T]) Value() T {
	if r.err != nil {
		panic("called Value() on Result containing an error")
	}
	return r.value
}

// Error returns the StreamError.
// Returns nil if this Result contains a successful value.
func (r Result[T]) Error() *StreamError {
	return r.err
}

// Err returns the error as a plain error value, nil on success.
// Unlike Error it never yields a typed nil.
func (r Result[T]) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// ValueOr returns the successful value if present, otherwise returns the fallback.
func (r Result[T]) ValueOr(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// Map applies a function to the value if this Result is successful.
// If this Result contains an error, returns the error unchanged.
func (r Result[T]) Map(fn func(T) T) Result[T] {
	if r.err != nil {
		return r
	}
	return NewSuccess(fn(r.value))
}
