package selection

import (
	"fmt"

	"github.com/dshills/blockfmt/internal/engine/tree"
)

// Range is a span between two positions. Start never follows End.
type Range struct {
	Start tree.Position
	End   tree.Position
}

// NewRange creates a range, swapping the ends if they are out of order.
func NewRange(start, end tree.Position) Range {
	if end.IsBefore(start) {
		start, end = end, start
	}
	return Range{Start: start.Clone(), End: end.Clone()}
}

// NewCollapsedRange creates an empty range at p.
func NewCollapsedRange(p tree.Position) Range {
	return Range{Start: p.Clone(), End: p.Clone()}
}

// IsCollapsed returns true if the range is empty.
func (r Range) IsCollapsed() bool {
	return r.Start.Compare(r.End) == 0
}

// IsFlat returns true if both ends share a parent.
func (r Range) IsFlat() bool {
	if len(r.Start.Path) != len(r.End.Path) {
		return false
	}
	for i := 0; i < len(r.Start.Path)-1; i++ {
		if r.Start.Path[i] != r.End.Path[i] {
			return false
		}
	}
	return true
}

// Contains returns true if p lies within [Start, End].
func (r Range) Contains(p tree.Position) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) <= 0
}

// Clone returns a deep copy.
func (r Range) Clone() Range {
	return Range{Start: r.Start.Clone(), End: r.End.Clone()}
}

// WithRoot rebinds both ends to another root.
func (r Range) WithRoot(root *tree.Element) Range {
	return Range{Start: r.Start.WithRoot(root), End: r.End.WithRoot(root)}
}

// Equal returns true if both ends are equal.
func (r Range) Equal(other Range) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

// String returns a human-readable representation.
func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
