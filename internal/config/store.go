package config

import (
	"sync/atomic"

	"github.com/dshills/blockfmt/internal/observable"
)

// Store holds the current configuration. It is safe for concurrent use.
type Store struct {
	current  atomic.Pointer[Config]
	notifier observable.Notifier[*Config]
}

// NewStore creates a store holding cfg, or the defaults when cfg is nil.
func NewStore(cfg *Config) *Store {
	if cfg == nil {
		cfg = Default()
	}
	s := &Store{}
	s.current.Store(cfg.Clone())
	return s
}

// Get returns a copy of the current configuration.
func (s *Store) Get() *Config {
	return s.current.Load().Clone()
}

// Replace swaps in cfg and notifies subscribers with a copy of it.
func (s *Store) Replace(cfg *Config) {
	s.current.Store(cfg.Clone())
	s.notifier.Notify(cfg.Clone())
}

// Subscribe registers fn to run after every Replace.
func (s *Store) Subscribe(fn func(*Config)) *observable.Subscription {
	return s.notifier.Subscribe(fn)
}

// DefaultFormatID returns the configured default format id.
func (s *Store) DefaultFormatID() string {
	if id := s.current.Load().Heading.Default; id != "" {
		return id
	}
	return DefaultFormatID
}
