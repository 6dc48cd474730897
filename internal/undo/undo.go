// Package undo provides the undo and redo commands.
package undo

import (
	"github.com/dshills/blockfmt/internal/command"
	"github.com/dshills/blockfmt/internal/engine"
)

// Command names.
const (
	UndoCommandName = "undo"
	RedoCommandName = "redo"
)

// Command steps through the document history in one direction.
type Command struct {
	doc  *engine.Document
	redo bool
}

// NewUndo creates the undo command.
func NewUndo(doc *engine.Document) *Command {
	return &Command{doc: doc}
}

// NewRedo creates the redo command.
func NewRedo(doc *engine.Document) *Command {
	return &Command{doc: doc, redo: true}
}

// Execute implements command.Command.
func (c *Command) Execute(command.Options) error {
	if c.redo {
		return c.doc.Redo()
	}
	return c.doc.Undo()
}

// State reports whether the command can run.
func (c *Command) State() any {
	return c.Enabled()
}

// Enabled returns true if there is a step to undo or redo.
func (c *Command) Enabled() bool {
	if c.redo {
		return c.doc.CanRedo()
	}
	return c.doc.CanUndo()
}

// Destroy implements command.Command.
func (c *Command) Destroy() {}

// Register adds both commands to reg.
func Register(reg *command.Registry, doc *engine.Document) error {
	if err := reg.Register(UndoCommandName, NewUndo(doc)); err != nil {
		return err
	}
	return reg.Register(RedoCommandName, NewRedo(doc))
}
