package heading

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// DefaultIDFunc returns the id of the default format. It is called on every
// access so the default can follow configuration changes.
type DefaultIDFunc func() string

// Registry is an ordered, immutable list of formats.
type Registry struct {
	formats   []Format
	byID      map[string]int
	defaultID DefaultIDFunc
	logger    *zap.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDefaultID sets the function supplying the default format id.
func WithDefaultID(fn DefaultIDFunc) RegistryOption {
	return func(r *Registry) {
		if fn != nil {
			r.defaultID = fn
		}
	}
}

// WithLogger sets the logger for resolution diagnostics.
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates a registry of formats in the given order.
func NewRegistry(formats []Format, opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		formats:   slices.Clone(formats),
		byID:      make(map[string]int, len(formats)),
		defaultID: func() string { return DefaultFormatID },
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, f := range r.formats {
		if f.ID == "" {
			return nil, fmt.Errorf("%w: format %d", ErrEmptyFormatID, i)
		}
		if _, ok := r.byID[f.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFormat, f.ID)
		}
		r.byID[f.ID] = i
	}
	return r, nil
}

// Resolve returns the format with the given id. An empty or unknown id
// resolves to the default format.
func (r *Registry) Resolve(id string) Format {
	if f, ok := r.Lookup(id); ok {
		return f
	}
	def := r.Default()
	if id != "" {
		r.logger.Debug("unknown block format, using default",
			zap.String("format", id),
			zap.String("default", def.ID),
		)
	}
	return def
}

// Lookup returns the format with exactly the given id.
func (r *Registry) Lookup(id string) (Format, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Format{}, false
	}
	return r.formats[i], true
}

// Default returns the default format. The default id is resolved on each
// call. When it is not registered the first format is used, and an empty
// registry yields a built-in paragraph format.
func (r *Registry) Default() Format {
	if f, ok := r.Lookup(r.defaultID()); ok {
		return f
	}
	if len(r.formats) > 0 {
		return r.formats[0]
	}
	return builtinDefault
}

// DefaultID returns the configured default id, registered or not.
func (r *Registry) DefaultID() string {
	return r.defaultID()
}

// Formats returns the formats in order.
func (r *Registry) Formats() []Format {
	return slices.Clone(r.formats)
}

// Len returns the number of formats.
func (r *Registry) Len() int {
	return len(r.formats)
}
