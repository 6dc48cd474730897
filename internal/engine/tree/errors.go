package tree

import "errors"

// Errors returned by tree operations.
var (
	// ErrInvalidPosition indicates a path that does not resolve in the tree.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrOffsetOutOfRange indicates an offset outside an element's offset space.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrDetachedNode indicates a node that is not connected to a root.
	ErrDetachedNode = errors.New("node is not attached to a root")
)
