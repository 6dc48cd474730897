package tree

import (
	"maps"
	"sort"
	"strings"
)

// RootName is the element name of a document root.
const RootName = "$root"

// Element is a named node with attributes and ordered children.
type Element struct {
	parent   *Element
	name     string
	attrs    map[string]string
	children []Node
	root     bool
}

// NewRoot creates an empty document root.
func NewRoot() *Element {
	return &Element{name: RootName, root: true}
}

// NewElement creates a detached element. The children are attached to it;
// children that already have a parent are cloned first.
func NewElement(name string, attrs map[string]string, children ...Node) *Element {
	e := &Element{name: name}
	if len(attrs) > 0 {
		e.attrs = maps.Clone(attrs)
	}
	e.InsertChildren(0, children...)
	return e
}

// Name returns the element name.
func (e *Element) Name() string {
	return e.name
}

// IsRoot returns true if e is a document root.
func (e *Element) IsRoot() bool {
	return e.root
}

// Parent returns the containing element, or nil for a root or detached element.
func (e *Element) Parent() *Element {
	return e.parent
}

// Attribute returns the value of an attribute.
func (e *Element) Attribute(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// Attributes returns a copy of all attributes.
func (e *Element) Attributes() map[string]string {
	return maps.Clone(e.attrs)
}

// AttributeKeys returns the attribute keys in sorted order.
func (e *Element) AttributeKeys() []string {
	keys := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Size returns 1: an element occupies a single offset in its parent.
func (e *Element) Size() int {
	return 1
}

// ChildCount returns the number of children.
func (e *Element) ChildCount() int {
	return len(e.children)
}

// Child returns the child at index i, or nil if out of range.
func (e *Element) Child(i int) Node {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// Children returns a copy of the child list.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// MaxOffset returns the size of the element's offset space.
func (e *Element) MaxOffset() int {
	n := 0
	for _, c := range e.children {
		n += c.Size()
	}
	return n
}

// IsEmpty returns true if the element has no children.
func (e *Element) IsEmpty() bool {
	return len(e.children) == 0
}

// TextContent returns the concatenated text of all descendants.
func (e *Element) TextContent() string {
	var sb strings.Builder
	var walk func(el *Element)
	walk = func(el *Element) {
		for _, c := range el.children {
			switch n := c.(type) {
			case *Text:
				sb.WriteString(n.data)
			case *Element:
				walk(n)
			}
		}
	}
	walk(e)
	return sb.String()
}

// NextSibling returns the node after e, or nil.
func (e *Element) NextSibling() Node {
	return NextSibling(e)
}

// PreviousSibling returns the node before e, or nil.
func (e *Element) PreviousSibling() Node {
	return PreviousSibling(e)
}

// Clone returns a deep, detached copy. A cloned root is no longer a root.
func (e *Element) Clone() Node {
	c := &Element{name: e.name}
	if len(e.attrs) > 0 {
		c.attrs = maps.Clone(e.attrs)
	}
	for _, child := range e.children {
		cc := child.Clone()
		cc.setParent(c)
		c.children = append(c.children, cc)
	}
	return c
}

func (e *Element) setParent(parent *Element) {
	e.parent = parent
}

// InsertChildren inserts nodes at child index i and merges adjacent text.
// Nodes attached elsewhere are cloned.
func (e *Element) InsertChildren(i int, nodes ...Node) {
	if i < 0 {
		i = 0
	}
	if i > len(e.children) {
		i = len(e.children)
	}
	attached := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Parent() != nil {
			n = n.Clone()
		}
		n.setParent(e)
		attached = append(attached, n)
	}
	e.children = append(e.children[:i], append(attached, e.children[i:]...)...)
	e.normalize()
}

// RemoveChildren detaches count children starting at index i and returns them.
func (e *Element) RemoveChildren(i, count int) []Node {
	if i < 0 || count <= 0 || i >= len(e.children) {
		return nil
	}
	if i+count > len(e.children) {
		count = len(e.children) - i
	}
	removed := make([]Node, count)
	copy(removed, e.children[i:i+count])
	e.children = append(e.children[:i], e.children[i+count:]...)
	for _, n := range removed {
		n.setParent(nil)
	}
	e.normalize()
	return removed
}

// ReplaceChild swaps old for repl at the same index. The children of old are
// not touched; callers move them explicitly.
func (e *Element) ReplaceChild(old, repl Node) bool {
	for i, c := range e.children {
		if c == old {
			old.setParent(nil)
			repl.setParent(e)
			e.children[i] = repl
			return true
		}
	}
	return false
}

// TakeChildren detaches and returns all children.
func (e *Element) TakeChildren() []Node {
	out := e.children
	e.children = nil
	for _, n := range out {
		n.setParent(nil)
	}
	return out
}

// SplitAt ensures a child boundary at offset and returns the index of the
// child that starts there (ChildCount when offset is the end).
func (e *Element) SplitAt(offset int) (int, error) {
	if offset < 0 || offset > e.MaxOffset() {
		return 0, ErrOffsetOutOfRange
	}
	pos := 0
	for i, c := range e.children {
		size := c.Size()
		if offset == pos {
			return i, nil
		}
		if offset < pos+size {
			t := c.(*Text)
			left, right := splitText(t.data, offset-pos)
			t.data = left
			rt := &Text{parent: e, data: right}
			e.children = append(e.children[:i+1], append([]Node{rt}, e.children[i+1:]...)...)
			return i + 1, nil
		}
		pos += size
	}
	return len(e.children), nil
}

// OffsetToIndex returns the index of the child containing offset and whether
// the offset falls strictly inside that child.
func (e *Element) OffsetToIndex(offset int) (int, bool) {
	pos := 0
	for i, c := range e.children {
		size := c.Size()
		if offset == pos {
			return i, false
		}
		if offset < pos+size {
			return i, true
		}
		pos += size
	}
	return len(e.children), false
}

// normalize merges adjacent text nodes and drops empty ones.
func (e *Element) normalize() {
	out := e.children[:0]
	for _, c := range e.children {
		t, ok := c.(*Text)
		if !ok {
			out = append(out, c)
			continue
		}
		if t.data == "" {
			t.parent = nil
			continue
		}
		if len(out) > 0 {
			if prev, ok := out[len(out)-1].(*Text); ok {
				prev.data += t.data
				t.parent = nil
				continue
			}
		}
		out = append(out, c)
	}
	for i := len(out); i < len(e.children); i++ {
		e.children[i] = nil
	}
	e.children = out
}

// RootOf returns the root a node is attached to, or nil.
func RootOf(n Node) *Element {
	var cur *Element
	if el, ok := n.(*Element); ok {
		cur = el
	} else {
		cur = n.Parent()
	}
	for cur != nil {
		if cur.root {
			return cur
		}
		cur = cur.parent
	}
	return nil
}

// Slice returns detached copies of the content between two offsets.
// Text nodes that straddle a bound are cut at it.
func (e *Element) Slice(start, end int) ([]Node, error) {
	if start < 0 || end > e.MaxOffset() || start > end {
		return nil, ErrOffsetOutOfRange
	}
	var out []Node
	pos := 0
	for _, c := range e.children {
		size := c.Size()
		cStart, cEnd := pos, pos+size
		pos = cEnd
		if cEnd <= start || cStart >= end {
			continue
		}
		t, ok := c.(*Text)
		if !ok {
			out = append(out, c.Clone())
			continue
		}
		from := max(start, cStart) - cStart
		to := min(end, cEnd) - cStart
		_, rest := splitText(t.data, from)
		part, _ := splitText(rest, to-from)
		out = append(out, NewText(part))
	}
	return out, nil
}
