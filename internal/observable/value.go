package observable

import "sync"

// Change describes a value transition.
type Change[T any] struct {
	Old T
	New T
}

// Value holds a comparable value and notifies observers when it changes.
type Value[T comparable] struct {
	mu       sync.RWMutex
	v        T
	notifier Notifier[Change[T]]
}

// NewValue creates a value holder.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.v
}

// Set stores x and notifies observers if it differs from the current value.
// It returns true if the value changed.
func (v *Value[T]) Set(x T) bool {
	v.mu.Lock()
	old := v.v
	if old == x {
		v.mu.Unlock()
		return false
	}
	v.v = x
	v.mu.Unlock()

	v.notifier.Notify(Change[T]{Old: old, New: x})
	return true
}

// Subscribe registers an observer for changes.
func (v *Value[T]) Subscribe(fn func(Change[T])) *Subscription {
	return v.notifier.Subscribe(fn)
}
