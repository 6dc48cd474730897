// Package command provides the editor command capability set and the
// name-keyed registry features register their commands in.
package command

import (
	"github.com/dshills/blockfmt/internal/engine/history"
)

// Options are the arguments of a command execution.
type Options struct {
	// Value is the command argument, e.g. a format id for "heading".
	// Commands that take no argument ignore it.
	Value string

	// Batch, when set, makes the command record into an existing batch so
	// its changes undo together with earlier ones.
	Batch *history.Batch
}

// Command is an executable editor command.
type Command interface {
	// Execute runs the command.
	Execute(opts Options) error

	// State returns the command's current observable state.
	State() any

	// Enabled returns true if the command can run.
	Enabled() bool

	// Destroy releases listeners held by the command.
	Destroy()
}

// Func adapts a function to the Command interface. It is always enabled and
// has no state.
type Func func(opts Options) error

// Execute implements Command.
func (f Func) Execute(opts Options) error {
	return f(opts)
}

// State implements Command.
func (f Func) State() any {
	return nil
}

// Enabled implements Command.
func (f Func) Enabled() bool {
	return true
}

// Destroy implements Command.
func (f Func) Destroy() {}
