package engine

import (
	"fmt"

	"github.com/dshills/blockfmt/internal/engine/history"
	"github.com/dshills/blockfmt/internal/engine/selection"
	"github.com/dshills/blockfmt/internal/engine/tree"
)

// Writer applies operations inside a change scope. It is only valid during
// the callback it was passed to.
type Writer struct {
	doc     *Document
	batch   *history.Batch
	applied []history.Operation

	// external counts changes applied outside the writer (undo, redo).
	external int
}

// Root returns the document root.
func (w *Writer) Root() *tree.Element {
	return w.doc.root
}

// Batch returns the batch the writer records into.
func (w *Writer) Batch() *history.Batch {
	return w.batch
}

// Selection returns the current document selection.
func (w *Writer) Selection() selection.Selection {
	return w.doc.sel
}

// SetSelection replaces the document selection.
func (w *Writer) SetSelection(sel selection.Selection) {
	w.doc.sel = sel.WithRoot(w.doc.root)
}

// Rename replaces el with a new element called name at the same position,
// moving attributes and children over. It returns the new element. Renaming
// to the current name returns el unchanged.
func (w *Writer) Rename(el *tree.Element, name string) (*tree.Element, error) {
	if err := w.checkNode(el); err != nil {
		return nil, err
	}
	if el.IsRoot() {
		return nil, fmt.Errorf("rename root: %w", ErrInvalidPosition)
	}
	if el.Name() == name {
		return el, nil
	}

	path, err := tree.PathOf(el)
	if err != nil {
		return nil, err
	}
	if err := w.apply(history.NewRenameOperation(path, el.Name(), name)); err != nil {
		return nil, err
	}
	renamed, _ := tree.NewPosition(w.doc.root, path...).NodeAfter().(*tree.Element)
	return renamed, nil
}

// Insert inserts copies of nodes at pos.
func (w *Writer) Insert(pos tree.Position, nodes ...tree.Node) error {
	if err := w.checkPosition(pos); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return nil
	}
	return w.apply(history.NewInsertOperation(pos.Path, nodes...))
}

// InsertText inserts text at pos.
func (w *Writer) InsertText(pos tree.Position, text string) error {
	if text == "" {
		return w.checkPosition(pos)
	}
	return w.Insert(pos, tree.NewText(text))
}

// InsertElement inserts an empty element at pos and returns it.
func (w *Writer) InsertElement(pos tree.Position, name string, attrs map[string]string) (*tree.Element, error) {
	if err := w.Insert(pos, tree.NewElement(name, attrs)); err != nil {
		return nil, err
	}
	el, _ := pos.WithRoot(w.doc.root).NodeAfter().(*tree.Element)
	return el, nil
}

// Remove removes a node from the document.
func (w *Writer) Remove(n tree.Node) error {
	if err := w.checkNode(n); err != nil {
		return err
	}
	path, err := tree.PathOf(n)
	if err != nil {
		return err
	}
	return w.apply(history.NewRemoveOperation(path, n))
}

// RemoveRange removes the content between two positions in the same parent.
func (w *Writer) RemoveRange(start, end tree.Position) error {
	if err := w.checkPosition(start); err != nil {
		return err
	}
	if err := w.checkPosition(end); err != nil {
		return err
	}
	r := selection.NewRange(start, end)
	if !r.IsFlat() {
		return ErrNonFlatRange
	}
	if r.IsCollapsed() {
		return nil
	}
	nodes, err := r.Start.Parent().Slice(r.Start.Offset(), r.End.Offset())
	if err != nil {
		return err
	}
	return w.apply(history.NewRemoveOperation(r.Start.Path, nodes...))
}

// ReplaceContent removes every child of the root and inserts copies of
// nodes in their place.
func (w *Writer) ReplaceContent(nodes ...tree.Node) error {
	root := w.doc.root
	if root.MaxOffset() > 0 {
		err := w.RemoveRange(tree.NewPosition(root, 0), tree.NewPosition(root, root.MaxOffset()))
		if err != nil {
			return err
		}
	}
	return w.Insert(tree.NewPosition(root, 0), nodes...)
}

// Split splits the element containing pos in two. Content after pos moves
// into a new element with the same name and attributes, inserted right after
// the original. The new element is returned.
func (w *Writer) Split(pos tree.Position) (*tree.Element, error) {
	if err := w.checkPosition(pos); err != nil {
		return nil, err
	}
	parent := pos.Parent()
	if parent.IsRoot() {
		return nil, ErrCannotSplitRoot
	}

	tail, err := parent.Slice(pos.Offset(), parent.MaxOffset())
	if err != nil {
		return nil, err
	}
	after, err := tree.PositionAfter(parent)
	if err != nil {
		return nil, err
	}

	if len(tail) > 0 {
		if err := w.apply(history.NewRemoveOperation(pos.Path, tail...)); err != nil {
			return nil, err
		}
	}
	clone := tree.NewElement(parent.Name(), parent.Attributes(), tail...)
	if err := w.apply(history.NewInsertOperation(after.Path, clone)); err != nil {
		return nil, err
	}

	el, _ := after.NodeAfter().(*tree.Element)
	return el, nil
}

// Merge moves the children of the element following el to the end of el and
// removes the emptied element.
func (w *Writer) Merge(el *tree.Element) error {
	if err := w.checkNode(el); err != nil {
		return err
	}
	next, ok := tree.NextSibling(el).(*tree.Element)
	if !ok {
		return ErrNothingToMerge
	}

	content, err := next.Slice(0, next.MaxOffset())
	if err != nil {
		return err
	}
	if len(content) > 0 {
		end, err := tree.PositionAt(el, el.MaxOffset())
		if err != nil {
			return err
		}
		if err := w.apply(history.NewInsertOperation(end.Path, content...)); err != nil {
			return err
		}
	}
	return w.Remove(next)
}

func (w *Writer) apply(op history.Operation) error {
	if err := op.Apply(w.doc.root); err != nil {
		return err
	}
	w.batch.Append(op)
	w.applied = append(w.applied, op)
	return nil
}

func (w *Writer) checkNode(n tree.Node) error {
	if n == nil || tree.RootOf(n) != w.doc.root {
		return ErrForeignNode
	}
	return nil
}

func (w *Writer) checkPosition(pos tree.Position) error {
	if pos.Root != w.doc.root {
		return ErrForeignNode
	}
	if !pos.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	return nil
}
