package editor

import (
	"go.uber.org/zap"

	"github.com/dshills/blockfmt/internal/config"
)

// Option configures an Editor.
type Option func(*Editor)

// WithConfig uses cfg as the initial configuration.
func WithConfig(cfg *config.Config) Option {
	return func(e *Editor) {
		if cfg != nil {
			e.store = config.NewStore(cfg)
		}
	}
}

// WithConfigStore shares an existing configuration store.
func WithConfigStore(store *config.Store) Option {
	return func(e *Editor) {
		if store != nil {
			e.store = store
		}
	}
}

// WithConfigWatch reloads the configuration file at path while the editor
// is alive. The initial configuration is not read from it; use WithConfig
// with config.Load for that.
func WithConfigWatch(path string) Option {
	return func(e *Editor) {
		e.watchPath = path
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}
