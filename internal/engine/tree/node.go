package tree

import "unicode/utf8"

// TextName is the pseudo element name used for text when checking a schema.
const TextName = "$text"

// Node is an element or a text node.
type Node interface {
	// Parent returns the containing element, or nil for a detached node or the root.
	Parent() *Element

	// Size returns the number of offsets the node occupies in its parent.
	Size() int

	// Clone returns a deep, detached copy of the node.
	Clone() Node

	setParent(parent *Element)
}

// Index returns the child index of n in its parent, or -1 if n is detached.
func Index(n Node) int {
	p := n.Parent()
	if p == nil {
		return -1
	}
	for i, c := range p.children {
		if c == n {
			return i
		}
	}
	return -1
}

// StartOffset returns the offset at which n starts in its parent, or -1 if
// n is detached.
func StartOffset(n Node) int {
	p := n.Parent()
	if p == nil {
		return -1
	}
	offset := 0
	for _, c := range p.children {
		if c == n {
			return offset
		}
		offset += c.Size()
	}
	return -1
}

// NextSibling returns the node after n in its parent, or nil.
func NextSibling(n Node) Node {
	i := Index(n)
	if i < 0 || i+1 >= len(n.Parent().children) {
		return nil
	}
	return n.Parent().children[i+1]
}

// PreviousSibling returns the node before n in its parent, or nil.
func PreviousSibling(n Node) Node {
	i := Index(n)
	if i <= 0 {
		return nil
	}
	return n.Parent().children[i-1]
}

// Text is a run of characters inside an element.
type Text struct {
	parent *Element
	data   string
}

// NewText creates a detached text node.
func NewText(data string) *Text {
	return &Text{data: data}
}

// Data returns the text content.
func (t *Text) Data() string {
	return t.data
}

// Parent returns the containing element.
func (t *Text) Parent() *Element {
	return t.parent
}

// Size returns the rune count of the text.
func (t *Text) Size() int {
	return utf8.RuneCountInString(t.data)
}

// Clone returns a detached copy of the text node.
func (t *Text) Clone() Node {
	return &Text{data: t.data}
}

// NextSibling returns the node after t, or nil.
func (t *Text) NextSibling() Node {
	return NextSibling(t)
}

// PreviousSibling returns the node before t, or nil.
func (t *Text) PreviousSibling() Node {
	return PreviousSibling(t)
}

func (t *Text) setParent(parent *Element) {
	t.parent = parent
}

// splitText splits data at a rune offset.
func splitText(data string, at int) (string, string) {
	i := 0
	for byteIdx := range data {
		if i == at {
			return data[:byteIdx], data[byteIdx:]
		}
		i++
	}
	return data, ""
}
