package command

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages commands by name.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command under name.
func (r *Registry) Register(name string, cmd Command) error {
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.commands[name]; ok {
		return fmt.Errorf("%w: %s", ErrCommandExists, name)
	}
	r.commands[name] = cmd
	return nil
}

// Unregister removes a command without destroying it.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.commands, name)
}

// Get returns the command registered under name, or nil.
func (r *Registry) Get(name string) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commands[name]
}

// Has returns true if a command is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commands[name]
	return ok
}

// Execute runs the named command. The registry lock is not held while the
// command runs, so commands may execute other commands.
func (r *Registry) Execute(name string, opts Options) error {
	cmd := r.Get(name)
	if cmd == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if !cmd.Enabled() {
		return fmt.Errorf("%w: %s", ErrCommandDisabled, name)
	}
	return cmd.Execute(opts)
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DestroyAll destroys every command and empties the registry.
func (r *Registry) DestroyAll() {
	r.mu.Lock()
	commands := r.commands
	r.commands = make(map[string]Command)
	r.mu.Unlock()

	for _, cmd := range commands {
		cmd.Destroy()
	}
}
