// Package events provides a small type-safe subscription primitive used to
// push model changes out to whoever is rendering them.
package events

import "sync"

// Notifier fans a value of type T out to subscriber callbacks.
type Notifier[T any] struct {
	mu          sync.RWMutex
	subscribers map[uint64]func(T)
	nextID      uint64
	replayLast  bool
	last        *T
}

// NewNotifier creates a Notifier. With replayLast set, a new subscriber is
// immediately called with the most recently published value, if any.
func NewNotifier[T any](replayLast bool) *Notifier[T] {
	return &Notifier[T]{
		subscribers: make(map[uint64]func(T)),
		replayLast:  replayLast,
	}
}

// Subscribe registers fn and returns a function that removes it again.
func (n *Notifier[T]) Subscribe(fn func(T)) func() {
	if fn == nil {
		panic("events: subscriber cannot be nil")
	}

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subscribers[id] = fn
	var replay *T
	if n.replayLast && n.last != nil {
		v := *n.last
		replay = &v
	}
	n.mu.Unlock()

	// Replay outside the lock so the subscriber may publish or subscribe.
	if replay != nil {
		fn(*replay)
	}

	return func() {
		n.mu.Lock()
		delete(n.subscribers, id)
		n.mu.Unlock()
	}
}

// Publish calls every subscriber with value. Callbacks run outside the lock,
// on the publishing goroutine.
func (n *Notifier[T]) Publish(value T) {
	n.mu.Lock()
	if n.replayLast {
		v := value
		n.last = &v
	}
	fns := make([]func(T), 0, len(n.subscribers))
	for _, fn := range n.subscribers {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}

// SubscriberCount reports how many subscribers are registered.
func (n *Notifier[T]) SubscriberCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers)
}
