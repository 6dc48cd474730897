package engine

import (
	"errors"

	"github.com/dshills/blockfmt/internal/engine/history"
)

// Errors returned by document operations.
var (
	// ErrInvalidPosition indicates a position that does not resolve in the document.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrForeignNode indicates a node that belongs to another document.
	ErrForeignNode = errors.New("node does not belong to this document")

	// ErrCannotSplitRoot indicates a split requested directly in the root.
	ErrCannotSplitRoot = errors.New("cannot split the root element")

	// ErrNothingToMerge indicates there is no following element to merge.
	ErrNothingToMerge = errors.New("no element to merge")

	// ErrNonFlatRange indicates a range whose ends have different parents.
	ErrNonFlatRange = errors.New("range ends do not share a parent")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo
)
