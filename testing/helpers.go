// Package testing provides test utilities for bindz streams.
package testing

import (
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/bindz"
)

// DefaultTimeout bounds how long Next waits for an emission.
const DefaultTimeout = 2 * time.Second

// Recorder subscribes to a stream and keeps every emission, both in order
// and on a channel for tests that wait on asynchronous delivery.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Recorder[T any] struct {
	mu     sync.Mutex
	values []T
	ch     chan T
	sub    *bindz.Subscription
}

// Record subscribes to stream and returns the Recorder. The subscription is
// cancelled when the test finishes.
func Record[T any](t *testing.T, stream bindz.Stream[T]) *Recorder[T] {
	t.Helper()

	r := NewRecorder[T]()
	r.sub = stream.Subscribe(r.Push)
	t.Cleanup(r.Stop)
	return r
}

// NewRecorder creates a Recorder not attached to any stream. Pass Push as a
// render or subscriber callback.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{ch: make(chan T, 1024)}
}

// Push records v.
func (r *Recorder[T]) Push(v T) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
	r.ch <- v
}

// Values returns a copy of everything recorded so far.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of recorded values.
func (r *Recorder[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Last returns the most recent value, if any.
func (r *Recorder[T]) Last() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		var zero T
		return zero, false
	}
	return r.values[len(r.values)-1], true
}

// Stop cancels the subscription made by Record.
func (r *Recorder[T]) Stop() {
	if r.sub != nil {
		r.sub.Unsubscribe()
	}
}

// Next waits up to DefaultTimeout for the next value not yet consumed by
// Next, NextMatching or Drain.
func (r *Recorder[T]) Next(t *testing.T) T {
	t.Helper()

	select {
	case v := <-r.ch:
		return v
	case <-time.After(DefaultTimeout):
		t.Fatalf("expected a value within %v, got none", DefaultTimeout)
		var zero T
		return zero
	}
}

// NextMatching consumes values until one satisfies match.
func (r *Recorder[T]) NextMatching(t *testing.T, match func(T) bool) T {
	t.Helper()

	deadline := time.After(DefaultTimeout)
	for {
		select {
		case v := <-r.ch:
			if match(v) {
				return v
			}
		case <-deadline:
			t.Fatalf("expected a matching value within %v, got none", DefaultTimeout)
			var zero T
			return zero
		}
	}
}

// ExpectNone fails the test if a value arrives within wait.
func (r *Recorder[T]) ExpectNone(t *testing.T, wait time.Duration) {
	t.Helper()

	select {
	case v := <-r.ch:
		t.Errorf("expected no value, got %v", v)
	case <-time.After(wait):
	}
}

// Drain discards every value waiting on the channel.
func (r *Recorder[T]) Drain() {
	for {
		select {
		case <-r.ch:
		default:
			return
		}
	}
}

// Eventually polls cond until it holds or DefaultTimeout passes.
func Eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(DefaultTimeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v: %s", DefaultTimeout, msg)
}

// SetAll sets every value on src in order.
func SetAll[T any](src *bindz.Source[T], values ...T) {
	for _, v := range values {
		src.Set(v)
	}
}

// SplitResults separates successful values from errors, preserving order.
func SplitResults[T any](results []bindz.Result[T]) ([]T, []error) {
	values := make([]T, 0, len(results))
	errs := make([]error, 0)
	for _, r := range results {
		if r.IsError() {
			errs = append(errs, r.Err())
			continue
		}
		values = append(values, r.Value())
	}
	return values, errs
}

// AssertResultCount verifies the expected number of results were received.
func AssertResultCount[T any](t *testing.T, results []bindz.Result[T], expected int) {
	t.Helper()

	if len(results) != expected {
		t.Errorf("expected %d results, got %d", expected, len(results))
	}
}

// AssertAllSuccess verifies all results are successful.
func AssertAllSuccess[T any](t *testing.T, results []bindz.Result[T]) {
	t.Helper()

	for i, r := range results {
		if r.IsError() {
			t.Errorf("result %d: expected success, got error: %v", i, r.Error())
		}
	}
}

// AssertAllErrors verifies all results are errors.
func AssertAllErrors[T any](t *testing.T, results []bindz.Result[T]) {
	t.Helper()

	for i, r := range results {
		if r.IsSuccess() {
			t.Errorf("result %d: expected error, got success with value: %v", i, r.Value())
		}
	}
}
