package bindz

import (
	"sync"
	"sync/atomic"
)

// Subscription is the handle returned by Stream.Subscribe.
// Unsubscribe is idempotent and safe for concurrent use.
type Subscription struct {
	cancel func()
	once   sync.Once
	closed atomic.Bool
}

// NewSubscription creates a Subscription that runs cancel once on the first
// call to Unsubscribe. A nil cancel is allowed.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Unsubscribe detaches the subscriber. Calls after the first do nothing.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.closed.Store(true)
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// Closed reports whether Unsubscribe has been called.
func (s *Subscription) Closed() bool {
	return s.closed.Load()
}

// joinSubscriptions returns a Subscription cancelling every non-nil sub in order.
func joinSubscriptions(subs ...*Subscription) *Subscription {
	return NewSubscription(func() {
		for _, sub := range subs {
			if sub != nil {
				sub.Unsubscribe()
			}
		}
	})
}
