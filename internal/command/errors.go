package command

import "errors"

// Errors returned by the registry.
var (
	// ErrCommandExists indicates a name is already registered.
	ErrCommandExists = errors.New("command already registered")

	// ErrUnknownCommand indicates no command is registered under a name.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrCommandDisabled indicates the command refused to run.
	ErrCommandDisabled = errors.New("command is disabled")

	// ErrEmptyName indicates an empty command name.
	ErrEmptyName = errors.New("command name is empty")
)
