package history

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/blockfmt/internal/engine/tree"
)

// Errors returned when applying operations.
var (
	ErrInvalidPath       = errors.New("operation path does not resolve")
	ErrOperationMismatch = errors.New("operation does not match document")
)

// Operation is a single invertible edit of a document tree.
type Operation interface {
	// Apply performs the edit against root.
	Apply(root *tree.Element) error

	// Inverse returns the operation that undoes this one.
	Inverse() Operation

	// Kind returns a short name, e.g. "rename".
	Kind() string
}

// RenameOperation replaces the element after Path with a new element named
// NewName that takes over its attributes and children.
type RenameOperation struct {
	Path    []int
	OldName string
	NewName string
}

// NewRenameOperation creates a rename operation.
func NewRenameOperation(path []int, oldName, newName string) *RenameOperation {
	return &RenameOperation{Path: slices.Clone(path), OldName: oldName, NewName: newName}
}

// Apply implements Operation.
func (op *RenameOperation) Apply(root *tree.Element) error {
	pos := tree.NewPosition(root, op.Path...)
	parent := pos.Parent()
	if parent == nil || !pos.IsValid() {
		return fmt.Errorf("rename at %v: %w", op.Path, ErrInvalidPath)
	}
	el, ok := pos.NodeAfter().(*tree.Element)
	if !ok || el.Name() != op.OldName {
		return fmt.Errorf("rename %s at %v: %w", op.OldName, op.Path, ErrOperationMismatch)
	}
	if op.OldName == op.NewName {
		return nil
	}
	repl := tree.NewElement(op.NewName, el.Attributes(), el.TakeChildren()...)
	parent.ReplaceChild(el, repl)
	return nil
}

// Inverse implements Operation.
func (op *RenameOperation) Inverse() Operation {
	return NewRenameOperation(op.Path, op.NewName, op.OldName)
}

// Kind implements Operation.
func (op *RenameOperation) Kind() string {
	return "rename"
}

// InsertOperation inserts copies of Nodes at Path.
type InsertOperation struct {
	Path  []int
	Nodes []tree.Node
}

// NewInsertOperation creates an insert operation. The nodes are cloned.
func NewInsertOperation(path []int, nodes ...tree.Node) *InsertOperation {
	return &InsertOperation{Path: slices.Clone(path), Nodes: cloneNodes(nodes)}
}

// Apply implements Operation.
func (op *InsertOperation) Apply(root *tree.Element) error {
	pos := tree.NewPosition(root, op.Path...)
	parent := pos.Parent()
	if parent == nil || !pos.IsValid() {
		return fmt.Errorf("insert at %v: %w", op.Path, ErrInvalidPath)
	}
	idx, err := parent.SplitAt(pos.Offset())
	if err != nil {
		return fmt.Errorf("insert at %v: %w", op.Path, err)
	}
	parent.InsertChildren(idx, cloneNodes(op.Nodes)...)
	return nil
}

// Inverse implements Operation.
func (op *InsertOperation) Inverse() Operation {
	return &RemoveOperation{Path: slices.Clone(op.Path), Nodes: cloneNodes(op.Nodes)}
}

// Kind implements Operation.
func (op *InsertOperation) Kind() string {
	return "insert"
}

// RemoveOperation removes the content starting at Path. Nodes holds a copy
// of the removed content; its total size is the removed offset span.
type RemoveOperation struct {
	Path  []int
	Nodes []tree.Node
}

// NewRemoveOperation creates a remove operation. The nodes are cloned.
func NewRemoveOperation(path []int, nodes ...tree.Node) *RemoveOperation {
	return &RemoveOperation{Path: slices.Clone(path), Nodes: cloneNodes(nodes)}
}

// Size returns the removed offset span.
func (op *RemoveOperation) Size() int {
	n := 0
	for _, node := range op.Nodes {
		n += node.Size()
	}
	return n
}

// Apply implements Operation.
func (op *RemoveOperation) Apply(root *tree.Element) error {
	pos := tree.NewPosition(root, op.Path...)
	parent := pos.Parent()
	if parent == nil || !pos.IsValid() {
		return fmt.Errorf("remove at %v: %w", op.Path, ErrInvalidPath)
	}
	off := pos.Offset()
	size := op.Size()
	if off+size > parent.MaxOffset() {
		return fmt.Errorf("remove %d at %v: %w", size, op.Path, ErrOperationMismatch)
	}
	if size == 0 {
		return nil
	}
	start, err := parent.SplitAt(off)
	if err != nil {
		return fmt.Errorf("remove at %v: %w", op.Path, err)
	}
	end, err := parent.SplitAt(off + size)
	if err != nil {
		return fmt.Errorf("remove at %v: %w", op.Path, err)
	}
	parent.RemoveChildren(start, end-start)
	return nil
}

// Inverse implements Operation.
func (op *RemoveOperation) Inverse() Operation {
	return &InsertOperation{Path: slices.Clone(op.Path), Nodes: cloneNodes(op.Nodes)}
}

// Kind implements Operation.
func (op *RemoveOperation) Kind() string {
	return "remove"
}

func cloneNodes(nodes []tree.Node) []tree.Node {
	out := make([]tree.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
