package bindz

import "sync"

// serial delivers values to a single callback one at a time, in push order,
// even when pushes come from several goroutines or from inside the callback.
type serial[T any] struct {
	mu       sync.Mutex
	fn       func(T)
	queue    []T
	draining bool
	closed   bool
}

func newSerial[T any](fn func(T)) *serial[T] {
	return &serial[T]{fn: fn}
}

// push enqueues v without delivering it. Callers holding their own lock use
// push under that lock and drain after releasing it, so queue order matches
// their lock order.
func (s *serial[T]) push(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, v)
}

// drain delivers queued values unless another call is already doing so.
// A panicking callback clears the draining flag and propagates.
func (s *serial[T]) drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 || s.closed {
			s.draining = false
			s.mu.Unlock()
			return
		}
		v := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.fn(v)
	}
}

func (s *serial[T]) emit(v T) {
	s.push(v)
	s.drain()
}

// close drops queued values and rejects later pushes.
func (s *serial[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.queue = nil
}
