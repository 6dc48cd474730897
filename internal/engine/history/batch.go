package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/blockfmt/internal/engine/selection"
	"github.com/dshills/blockfmt/internal/engine/tree"
)

// Kind controls whether a batch is recorded for undo.
type Kind int

const (
	// KindDefault batches are recorded in the undo stack.
	KindDefault Kind = iota
	// KindTransparent batches are applied but never recorded.
	KindTransparent
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindTransparent:
		return "transparent"
	default:
		return "unknown"
	}
}

// Batch is an ordered group of operations that undo together.
// A batch may be reused across several change scopes; every scope appends
// to the same undo step.
type Batch struct {
	ID      uuid.UUID
	Kind    Kind
	Created time.Time

	// Selection state for restore on undo/redo.
	SelectionBefore selection.Selection
	SelectionAfter  selection.Selection

	ops      []Operation
	recorded bool
}

// NewBatch creates an empty batch.
func NewBatch(kind Kind) *Batch {
	return &Batch{
		ID:      uuid.New(),
		Kind:    kind,
		Created: time.Now(),
	}
}

// Append records an already applied operation.
func (b *Batch) Append(op Operation) {
	b.ops = append(b.ops, op)
}

// Operations returns a copy of the recorded operations.
func (b *Batch) Operations() []Operation {
	out := make([]Operation, len(b.ops))
	copy(out, b.ops)
	return out
}

// Len returns the number of operations.
func (b *Batch) Len() int {
	return len(b.ops)
}

// IsEmpty returns true if no operation was recorded.
func (b *Batch) IsEmpty() bool {
	return len(b.ops) == 0
}

// Recorded returns true once the batch is on an undo stack.
func (b *Batch) Recorded() bool {
	return b.recorded
}

// Revert applies the inverse of every operation in reverse order.
func (b *Batch) Revert(root *tree.Element) error {
	return revert(root, b.ops)
}

// Reapply applies every operation again in order.
func (b *Batch) Reapply(root *tree.Element) error {
	for i, op := range b.ops {
		if err := op.Apply(root); err != nil {
			// Leave the document as it was before the reapply.
			_ = revert(root, b.ops[:i])
			return fmt.Errorf("redo batch %s: %w", b.ID, err)
		}
	}
	return nil
}

// Description returns a short human-readable summary.
func (b *Batch) Description() string {
	return fmt.Sprintf("%s batch with %d operations", b.Kind, len(b.ops))
}

// Revert applies inverses of ops in reverse order.
func Revert(root *tree.Element, ops []Operation) error {
	return revert(root, ops)
}

func revert(root *tree.Element, ops []Operation) error {
	for i := len(ops) - 1; i >= 0; i-- {
		if err := ops[i].Inverse().Apply(root); err != nil {
			return fmt.Errorf("revert %s: %w", ops[i].Kind(), err)
		}
	}
	return nil
}

// Truncate drops every operation after the first n.
func (b *Batch) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(b.ops) {
		b.ops = b.ops[:n]
	}
}
