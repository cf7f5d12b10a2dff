package bindz

import "sync"

// Source is a stateful, multicast push stream. It always holds a current
// value, replays it to every new subscriber, and broadcasts each later Set
// to all attached subscribers in attachment order.
//
// Source keeps no history: a subscriber attached after N values were set
// receives only the Nth (current) value, then every later one.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Source[T any] struct {
	mu       sync.Mutex
	name     string
	value    T
	seq      uint64
	subs     []*sourceSub[T]
	pending  []sourceEntry[T]
	draining bool
}

type sourceSub[T any] struct {
	fn     func(T)
	seen   uint64 // sequence number of the last value delivered or replayed
	active bool
}

type sourceEntry[T any] struct {
	value T
	seq   uint64
}

// NewSource creates a Source holding initial as its current value.
//
// When to use:
//   - User-editable inputs (search text, selected category, page index)
//   - Any single-value state that several stages need to observe
//
// Example:
//
//	page := bindz.NewSource(0).WithName("page")
//	sub := page.Subscribe(func(p int) {
//		fmt.Println("page", p) // prints 0 immediately, then 1
//	})
//	page.Set(1)
//	sub.Unsubscribe()
func NewSource[T any](initial T) *Source[T] {
	return &Source[T]{
		name:  "source",
		value: initial,
	}
}

// WithName sets a custom name for this source.
// If not set, defaults to "source".
func (s *Source[T]) WithName(name string) *Source[T] {
	s.name = name
	return s
}

// Get returns the current value.
func (s *Source[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores v as the current value and notifies every attached subscriber.
//
// A Set issued from inside a notification is queued: the value being
// broadcast reaches all subscribers first, then v does. The outermost Set
// returns once the whole chain has drained.
func (s *Source[T]) Set(v T) {
	s.mu.Lock()
	s.seq++
	s.value = v
	s.pending = append(s.pending, sourceEntry[T]{value: v, seq: s.seq})
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	s.drain()
}

// drain broadcasts pending values until none are left. The lock is never
// held while a subscriber runs, so a panicking subscriber unwinds through
// the recover below with the lock released.
func (s *Source[T]) drain() {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.pending = nil
			s.draining = false
			s.mu.Unlock()
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.pending = nil
			s.draining = false
			s.mu.Unlock()
			return
		}
		entry := s.pending[0]
		s.pending = s.pending[1:]
		subs := make([]*sourceSub[T], len(s.subs))
		copy(subs, s.subs)
		s.mu.Unlock()

		for _, sub := range subs {
			s.deliver(sub, entry)
		}
	}
}

func (s *Source[T]) deliver(sub *sourceSub[T], entry sourceEntry[T]) {
	s.mu.Lock()
	ok := sub.active && sub.seen < entry.seq
	if ok {
		sub.seen = entry.seq
	}
	s.mu.Unlock()

	if ok {
		sub.fn(entry.value)
	}
}

// Subscribe immediately calls fn with the current value, then calls it for
// every later Set until the returned Subscription is cancelled.
func (s *Source[T]) Subscribe(fn func(T)) *Subscription {
	s.mu.Lock()
	sub := &sourceSub[T]{fn: fn, seen: s.seq, active: true}
	s.subs = append(s.subs, sub)
	current := s.value
	s.mu.Unlock()

	fn(current)

	return NewSubscription(func() {
		s.remove(sub)
	})
}

func (s *Source[T]) remove(sub *sourceSub[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.active = false
	for i, candidate := range s.subs {
		if candidate == sub {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of attached subscribers.
func (s *Source[T]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Name returns the source name for debugging and monitoring.
func (s *Source[T]) Name() string {
	return s.name
}
