package bindz

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrAlreadyAttached is returned by Attach while a subscription is active.
	ErrAlreadyAttached = errors.New("binding already attached")

	// ErrNotAttached is returned by Detach when no subscription is active.
	ErrNotAttached = errors.New("binding not attached")

	// ErrUnknownEvent is returned when dispatching an event with no handler.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrInvalidArgument is returned when a handler receives an argument of the wrong type.
	ErrInvalidArgument = errors.New("invalid event argument")
)

// Handler reacts to a named event, typically by setting one or more Sources.
type Handler func(arg any) error

// Handlers maps event names to their handlers.
type Handlers map[string]Handler

// On adapts a typed function into a Handler. Arguments that are not an A
// are rejected with ErrInvalidArgument.
func On[A any](fn func(A)) Handler {
	return func(arg any) error {
		v, ok := arg.(A)
		if !ok {
			return fmt.Errorf("%w: expected %T, got %T", ErrInvalidArgument, *new(A), arg)
		}
		fn(v)
		return nil
	}
}

// Binding connects a composed stream to a rendering boundary.
//
// It holds the current render state, seeded with an initial snapshot, and
// exposes the event handlers as dispatchers. Attach subscribes exactly once
// and Detach unsubscribes exactly once:
//
//	Unattached --Attach--> Attached --Detach--> Unattached
//
// At most one subscription is active per Binding. Re-attaching after a
// detach subscribes again, so stateful sources replay their latest values.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Binding[S any] struct {
	name     string
	stream   Stream[S]
	handlers Handlers

	mu       sync.Mutex
	state    S
	attached bool
	gen      uint64
	sub      *Subscription
}

// NewBinding creates a Binding over stream with the given handlers and the
// initial snapshot rendered before the stream's first emission.
//
// Example:
//
//	binding := bindz.NewBinding(snapshots, bindz.Handlers{
//		"change_query": bindz.On(query.Set),
//		"change_page": bindz.On(func(p int) {
//			scrollToTop()
//			page.Set(p)
//		}),
//	}, Snapshot{Query: "react"})
//
//	if err := binding.Attach(view.Render); err != nil {
//		return err
//	}
//	defer binding.Detach()
//
//	binding.Dispatch("change_page", 2)
func NewBinding[S any](stream Stream[S], handlers Handlers, initial S) *Binding[S] {
	copied := make(Handlers, len(handlers))
	for name, h := range handlers {
		copied[name] = h
	}
	return &Binding[S]{
		name:     "binding",
		stream:   stream,
		handlers: copied,
		state:    initial,
	}
}

// WithName sets a custom name for this binding.
// If not set, defaults to "binding".
func (b *Binding[S]) WithName(name string) *Binding[S] {
	b.name = name
	return b
}

// Attach renders the current state, then subscribes to the stream and
// renders every emission. It fails with ErrAlreadyAttached if a subscription
// is active.
func (b *Binding[S]) Attach(render func(S)) error {
	b.mu.Lock()
	if b.attached {
		b.mu.Unlock()
		return fmt.Errorf("%s: %w", b.name, ErrAlreadyAttached)
	}
	b.attached = true
	b.gen++
	gen := b.gen
	current := b.state
	b.mu.Unlock()

	render(current)

	sub := b.stream.Subscribe(func(s S) {
		b.mu.Lock()
		if b.gen != gen || !b.attached {
			b.mu.Unlock()
			return
		}
		b.state = s
		b.mu.Unlock()
		render(s)
	})

	b.mu.Lock()
	if b.gen != gen {
		// Detached while the stream was replaying.
		b.mu.Unlock()
		sub.Unsubscribe()
		return nil
	}
	b.sub = sub
	b.mu.Unlock()
	return nil
}

// Detach cancels the active subscription. It fails with ErrNotAttached if
// there is none. Emissions still in flight are not rendered.
func (b *Binding[S]) Detach() error {
	b.mu.Lock()
	if !b.attached {
		b.mu.Unlock()
		return fmt.Errorf("%s: %w", b.name, ErrNotAttached)
	}
	b.attached = false
	b.gen++
	sub := b.sub
	b.sub = nil
	b.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
	return nil
}

// Attached reports whether a subscription is active.
func (b *Binding[S]) Attached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attached
}

// State returns the most recently rendered snapshot.
func (b *Binding[S]) State() S {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Dispatch invokes the handler registered for event.
func (b *Binding[S]) Dispatch(event string, arg any) error {
	h, ok := b.Dispatcher(event)
	if !ok {
		return fmt.Errorf("%s: %w: %q", b.name, ErrUnknownEvent, event)
	}
	if err := h(arg); err != nil {
		return fmt.Errorf("%s: %s: %w", b.name, event, err)
	}
	return nil
}

// Dispatcher returns the handler registered for event.
func (b *Binding[S]) Dispatcher(event string) (Handler, bool) {
	h, ok := b.handlers[event]
	return h, ok
}

// Events returns the registered event names in sorted order.
func (b *Binding[S]) Events() []string {
	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *Binding[S]) Name() string {
	return b.name
}
