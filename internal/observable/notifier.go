package observable

import (
	"slices"
	"sync"
)

// Subscription represents an active observer registration.
type Subscription struct {
	id     uint64
	cancel func(id uint64)
	once   sync.Once
}

// Unsubscribe removes the observer. Safe to call more than once and on nil.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(func() {
		s.cancel(s.id)
	})
}

type entry[T any] struct {
	id uint64
	fn func(T)
}

// Notifier delivers events of type T to subscribed observers.
// The zero value is ready to use.
type Notifier[T any] struct {
	mu        sync.RWMutex
	observers []entry[T]
	nextID    uint64
}

// Subscribe registers fn and returns its subscription.
func (n *Notifier[T]) Subscribe(fn func(T)) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.observers = append(n.observers, entry[T]{id: id, fn: fn})

	return &Subscription{id: id, cancel: n.unsubscribe}
}

// Notify calls every observer with event.
func (n *Notifier[T]) Notify(event T) {
	n.mu.RLock()
	observers := slices.Clone(n.observers)
	n.mu.RUnlock()

	for _, o := range observers {
		o.fn(event)
	}
}

// Len returns the number of observers.
func (n *Notifier[T]) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

func (n *Notifier[T]) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.observers = slices.DeleteFunc(n.observers, func(e entry[T]) bool {
		return e.id == id
	})
}
