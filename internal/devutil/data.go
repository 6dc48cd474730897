package devutil

import (
	"github.com/dshills/blockfmt/internal/engine"
	"github.com/dshills/blockfmt/internal/engine/history"
	"github.com/dshills/blockfmt/internal/engine/selection"
	"github.com/dshills/blockfmt/internal/engine/tree"
)

// SetData replaces the document content and selection with parsed markup.
// The change is recorded in a transparent batch and the undo history is
// cleared, so neither the load nor earlier edits can be undone.
// Without selection markers the selection is collapsed at the start of the
// first block.
func SetData(doc *engine.Document, markup string, opts ...Option) error {
	root, sel, err := Parse(markup, opts...)
	if err != nil {
		return err
	}
	return doc.EnqueueChangesIn(history.NewBatch(history.KindTransparent), func(w *engine.Writer) error {
		if err := w.ReplaceContent(root.Children()...); err != nil {
			return err
		}
		if sel.IsEmpty() {
			sel = DefaultSelection(w.Root())
		}
		w.SetSelection(sel)
		doc.ClearHistory()
		return nil
	})
}

// GetData returns the document as markup.
func GetData(doc *engine.Document, opts ...Option) string {
	return Stringify(doc.Root(), doc.Selection(), opts...)
}

// DefaultSelection collapses at the start of the first block, or at the
// start of the root when the first child is not an element.
func DefaultSelection(root *tree.Element) selection.Selection {
	if _, ok := root.Child(0).(*tree.Element); ok {
		return selection.Collapsed(tree.NewPosition(root, 0, 0))
	}
	return selection.Collapsed(tree.NewPosition(root, 0))
}
