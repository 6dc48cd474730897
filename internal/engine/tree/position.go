package tree

import (
	"fmt"
	"slices"
)

// Direction selects the neighbour used when a position sits directly in the root.
type Direction int

const (
	// DirectionAfter picks the node after the position.
	DirectionAfter Direction = iota
	// DirectionBefore picks the node before the position.
	DirectionBefore
)

// Position is a place in a document, addressed by offsets from the root.
// Position is a value type; methods never modify the receiver.
type Position struct {
	Root *Element
	Path []int
}

// NewPosition creates a position from a root and a path of offsets.
func NewPosition(root *Element, path ...int) Position {
	return Position{Root: root, Path: slices.Clone(path)}
}

// PositionAt creates a position at offset inside parent.
func PositionAt(parent *Element, offset int) (Position, error) {
	path, root, err := pathOf(parent)
	if err != nil {
		return Position{}, err
	}
	return Position{Root: root, Path: append(path, offset)}, nil
}

// PositionBefore creates a position directly before n.
func PositionBefore(n Node) (Position, error) {
	if n.Parent() == nil {
		return Position{}, ErrDetachedNode
	}
	path, root, err := pathOf(n.Parent())
	if err != nil {
		return Position{}, err
	}
	return Position{Root: root, Path: append(path, StartOffset(n))}, nil
}

// PositionAfter creates a position directly after n.
func PositionAfter(n Node) (Position, error) {
	p, err := PositionBefore(n)
	if err != nil {
		return Position{}, err
	}
	p.Path[len(p.Path)-1] += n.Size()
	return p, nil
}

// pathOf returns the offsets leading from the root to el (el itself maps to
// the returned path, which is empty for the root).
func pathOf(el *Element) ([]int, *Element, error) {
	var path []int
	cur := el
	for !cur.root {
		if cur.parent == nil {
			return nil, nil, ErrDetachedNode
		}
		path = append(path, StartOffset(cur))
		cur = cur.parent
	}
	slices.Reverse(path)
	return path, cur, nil
}

// PathOf returns the path to the position before n.
func PathOf(n Node) ([]int, error) {
	p, err := PositionBefore(n)
	if err != nil {
		return nil, err
	}
	return p.Path, nil
}

// IsValid returns true if the position resolves in its tree.
func (p Position) IsValid() bool {
	parent := p.Parent()
	if parent == nil {
		return false
	}
	off := p.Offset()
	return off >= 0 && off <= parent.MaxOffset()
}

// Offset returns the offset inside the parent element.
func (p Position) Offset() int {
	if len(p.Path) == 0 {
		return 0
	}
	return p.Path[len(p.Path)-1]
}

// Depth returns the path length.
func (p Position) Depth() int {
	return len(p.Path)
}

// Parent returns the element containing the position, or nil if the path
// does not resolve.
func (p Position) Parent() *Element {
	if p.Root == nil || len(p.Path) == 0 {
		return nil
	}
	cur := p.Root
	for _, off := range p.Path[:len(p.Path)-1] {
		i, inside := cur.OffsetToIndex(off)
		if inside || i >= len(cur.children) {
			return nil
		}
		el, ok := cur.children[i].(*Element)
		if !ok {
			return nil
		}
		cur = el
	}
	return cur
}

// TextNode returns the text node the position falls strictly inside, or nil.
func (p Position) TextNode() *Text {
	parent := p.Parent()
	if parent == nil {
		return nil
	}
	i, inside := parent.OffsetToIndex(p.Offset())
	if !inside {
		return nil
	}
	t, _ := parent.children[i].(*Text)
	return t
}

// NodeAfter returns the node starting at the position, or nil.
func (p Position) NodeAfter() Node {
	parent := p.Parent()
	if parent == nil {
		return nil
	}
	i, inside := parent.OffsetToIndex(p.Offset())
	if inside || i >= len(parent.children) {
		return nil
	}
	return parent.children[i]
}

// NodeBefore returns the node ending at the position, or nil.
func (p Position) NodeBefore() Node {
	parent := p.Parent()
	if parent == nil {
		return nil
	}
	i, inside := parent.OffsetToIndex(p.Offset())
	if inside || i == 0 {
		return nil
	}
	return parent.children[i-1]
}

// TopmostBlock returns the direct child of the root that contains the
// position. When the position sits directly in the root, the element after
// it (or before it, for DirectionBefore) is returned instead. Returns nil if
// there is no such element.
func (p Position) TopmostBlock(dir Direction) *Element {
	parent := p.Parent()
	if parent == nil {
		return nil
	}
	if parent.root {
		var n Node
		if dir == DirectionBefore {
			n = p.NodeBefore()
		} else {
			n = p.NodeAfter()
		}
		el, _ := n.(*Element)
		return el
	}
	node := parent
	for node.parent != nil && !node.parent.root {
		node = node.parent
	}
	if node.parent == nil {
		return nil
	}
	return node
}

// WithOffset returns a position in the same parent at another offset.
func (p Position) WithOffset(offset int) Position {
	path := slices.Clone(p.Path)
	if len(path) > 0 {
		path[len(path)-1] = offset
	}
	return Position{Root: p.Root, Path: path}
}

// WithRoot returns the same path against another root.
func (p Position) WithRoot(root *Element) Position {
	return Position{Root: root, Path: slices.Clone(p.Path)}
}

// Clone returns a copy that shares no path storage with p.
func (p Position) Clone() Position {
	return p.WithRoot(p.Root)
}

// Compare returns -1, 0 or 1 depending on document order.
// A position is before any position nested deeper at the same place.
func (p Position) Compare(other Position) int {
	return slices.Compare(p.Path, other.Path)
}

// IsBefore returns true if p precedes other.
func (p Position) IsBefore(other Position) bool {
	return p.Compare(other) < 0
}

// IsAfter returns true if p follows other.
func (p Position) IsAfter(other Position) bool {
	return p.Compare(other) > 0
}

// Equal returns true if both positions share a root and a path.
func (p Position) Equal(other Position) bool {
	return p.Root == other.Root && slices.Equal(p.Path, other.Path)
}

// String returns the path, e.g. "[1 4]".
func (p Position) String() string {
	return fmt.Sprint(p.Path)
}
