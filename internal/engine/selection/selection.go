package selection

import (
	"slices"
	"strings"

	"github.com/dshills/blockfmt/internal/engine/tree"
)

// Selection is an immutable set of ranges in document order with a direction.
// The zero value is an empty selection with no ranges.
type Selection struct {
	ranges   []Range
	backward bool
}

// New creates a selection from ranges. The ranges are copied and sorted by
// start position. Backward is ignored for a collapsed selection.
func New(ranges []Range, backward bool) Selection {
	rs := make([]Range, len(ranges))
	for i, r := range ranges {
		rs[i] = r.Clone()
	}
	slices.SortStableFunc(rs, func(a, b Range) int {
		return a.Start.Compare(b.Start)
	})
	s := Selection{ranges: rs, backward: backward}
	if s.IsCollapsed() {
		s.backward = false
	}
	return s
}

// Collapsed creates a selection with one empty range at p.
func Collapsed(p tree.Position) Selection {
	return Selection{ranges: []Range{NewCollapsedRange(p)}}
}

// FromRange creates a single-range selection.
func FromRange(r Range, backward bool) Selection {
	return New([]Range{r}, backward)
}

// Ranges returns a deep copy of the ranges.
func (s Selection) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	for i, r := range s.ranges {
		out[i] = r.Clone()
	}
	return out
}

// RangeCount returns the number of ranges.
func (s Selection) RangeCount() int {
	return len(s.ranges)
}

// IsEmpty returns true if there are no ranges.
func (s Selection) IsEmpty() bool {
	return len(s.ranges) == 0
}

// IsCollapsed returns true for a single empty range.
func (s Selection) IsCollapsed() bool {
	return len(s.ranges) == 1 && s.ranges[0].IsCollapsed()
}

// IsBackward returns true if the selection was made from its end to its start.
func (s Selection) IsBackward() bool {
	return s.backward
}

// FirstRange returns the range that starts first.
func (s Selection) FirstRange() (Range, bool) {
	if len(s.ranges) == 0 {
		return Range{}, false
	}
	return s.ranges[0].Clone(), true
}

// LastRange returns the range that starts last.
func (s Selection) LastRange() (Range, bool) {
	if len(s.ranges) == 0 {
		return Range{}, false
	}
	return s.ranges[len(s.ranges)-1].Clone(), true
}

// FirstPosition returns the start of the first range.
func (s Selection) FirstPosition() (tree.Position, bool) {
	r, ok := s.FirstRange()
	if !ok {
		return tree.Position{}, false
	}
	return r.Start, true
}

// Anchor returns where the selection started: the end of the last range for
// a backward selection, its start otherwise.
func (s Selection) Anchor() (tree.Position, bool) {
	r, ok := s.LastRange()
	if !ok {
		return tree.Position{}, false
	}
	if s.backward {
		return r.End, true
	}
	return r.Start, true
}

// Focus returns the moving end of the selection.
func (s Selection) Focus() (tree.Position, bool) {
	r, ok := s.LastRange()
	if !ok {
		return tree.Position{}, false
	}
	if s.backward {
		return r.Start, true
	}
	return r.End, true
}

// WithRoot rebinds every range to another root.
func (s Selection) WithRoot(root *tree.Element) Selection {
	out := Selection{ranges: make([]Range, len(s.ranges)), backward: s.backward}
	for i, r := range s.ranges {
		out.ranges[i] = r.WithRoot(root)
	}
	return out
}

// Equal returns true if both selections have equal ranges and direction.
func (s Selection) Equal(other Selection) bool {
	return s.backward == other.backward && slices.EqualFunc(s.ranges, other.ranges, Range.Equal)
}

// String returns a human-readable representation.
func (s Selection) String() string {
	if len(s.ranges) == 0 {
		return "Selection()"
	}
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	dir := "→"
	if s.backward {
		dir = "←"
	}
	return "Selection(" + strings.Join(parts, ", ") + dir + ")"
}
