package editor

import (
	"github.com/dshills/blockfmt/internal/devutil"
	"github.com/dshills/blockfmt/internal/engine"
	"github.com/dshills/blockfmt/internal/engine/history"
)

// SetData replaces the document with an HTML fragment. Content without a
// conversion rule becomes default blocks. The selection is collapsed at the
// start of the first block. The undo history is cleared.
func (e *Editor) SetData(source string) error {
	if e.destroyed {
		return ErrDestroyed
	}
	nodes, err := e.conv.Upcast(source, e.heading.DefaultFormat().ID)
	if err != nil {
		return err
	}
	return e.doc.EnqueueChangesIn(history.NewBatch(history.KindTransparent), func(w *engine.Writer) error {
		if err := w.ReplaceContent(nodes...); err != nil {
			return err
		}
		w.SetSelection(devutil.DefaultSelection(w.Root()))
		e.doc.ClearHistory()
		return nil
	})
}

// GetData returns the document as HTML.
func (e *Editor) GetData() (string, error) {
	return e.conv.Downcast(e.doc.Root())
}

// SetModelData replaces the document with model markup, selection markers
// included.
func (e *Editor) SetModelData(markup string, opts ...devutil.Option) error {
	if e.destroyed {
		return ErrDestroyed
	}
	return devutil.SetData(e.doc, markup, opts...)
}

// ModelData returns the document as model markup with selection markers.
func (e *Editor) ModelData(opts ...devutil.Option) string {
	return devutil.GetData(e.doc, opts...)
}
