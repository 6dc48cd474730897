package engine

import (
	"errors"

	"go.uber.org/zap"

	"github.com/dshills/blockfmt/internal/engine/history"
	"github.com/dshills/blockfmt/internal/engine/selection"
	"github.com/dshills/blockfmt/internal/engine/tree"
	"github.com/dshills/blockfmt/internal/observable"
)

// ChangeSummary describes everything that happened in one settled scope.
type ChangeSummary struct {
	// Batches that received operations, in first-touched order.
	Batches []*history.Batch

	// Operations is the number of operations applied, undo and redo included.
	Operations int

	// SelectionChanged is true if the selection differs from the one the
	// scope started with.
	SelectionChanged bool
}

// ChangeFunc mutates the document through a Writer.
type ChangeFunc func(w *Writer) error

type pendingChange struct {
	batch *history.Batch
	fn    ChangeFunc
}

// Document is a block document with a selection, change scopes and history.
//
// Document is not safe for concurrent use. The owner serializes access; all
// mutation happens inside EnqueueChanges callbacks.
type Document struct {
	root    *tree.Element
	sel     selection.Selection
	history *history.History
	settled observable.Notifier[ChangeSummary]
	logger  *zap.Logger

	// Construction-only settings
	maxUndoEntries int
	initSel        *selection.Selection

	// Change scope state
	changing bool
	queue    []pendingChange
	summary  ChangeSummary
}

// New creates a document. Without WithRoot the document is an empty root;
// without WithSelection the selection is collapsed at the start of the root.
func New(opts ...Option) *Document {
	d := &Document{
		logger:         zap.NewNop(),
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.root == nil {
		d.root = tree.NewRoot()
	}
	d.history = history.New(d.maxUndoEntries)

	if d.initSel != nil {
		d.sel = d.initSel.WithRoot(d.root)
		d.initSel = nil
	} else {
		d.sel = selection.Collapsed(tree.NewPosition(d.root, 0))
	}

	return d
}

// Root returns the document root.
func (d *Document) Root() *tree.Element {
	return d.root
}

// Selection returns the current selection.
func (d *Document) Selection() selection.Selection {
	return d.sel
}

// IsChanging returns true while a change scope is open.
func (d *Document) IsChanging() bool {
	return d.changing
}

// NewBatch creates a batch that callers can pass to EnqueueChangesIn to
// group several scopes into one undo step.
func (d *Document) NewBatch() *history.Batch {
	return history.NewBatch(history.KindDefault)
}

// EnqueueChanges runs fn in a new batch. See EnqueueChangesIn.
func (d *Document) EnqueueChanges(fn ChangeFunc) error {
	return d.EnqueueChangesIn(nil, fn)
}

// EnqueueChangesIn runs fn inside a change scope that records into batch
// (a new batch when nil).
//
// If a scope is already open, fn is queued and runs after the current
// callback, still inside the outer scope; the call then returns nil and any
// error of fn is returned by the outermost call instead. When the outermost
// scope closes and something changed, changes-settled observers are notified
// once.
//
// If fn returns an error, the operations it applied are reverted and the
// selection is restored before the error is returned.
func (d *Document) EnqueueChangesIn(batch *history.Batch, fn ChangeFunc) error {
	if batch == nil {
		batch = d.NewBatch()
	}
	d.queue = append(d.queue, pendingChange{batch: batch, fn: fn})
	if d.changing {
		return nil
	}

	err := d.drain()

	summary := d.summary
	d.summary = ChangeSummary{}
	if summary.Operations > 0 || summary.SelectionChanged {
		d.settled.Notify(summary)
	}
	return err
}

// drain runs queued callbacks until the queue is empty.
func (d *Document) drain() error {
	d.changing = true
	defer func() {
		d.changing = false
		d.queue = nil
	}()

	var errs []error
	for len(d.queue) > 0 {
		pc := d.queue[0]
		d.queue = d.queue[1:]
		if err := d.run(pc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// run executes a single callback.
func (d *Document) run(pc pendingChange) error {
	w := &Writer{doc: d, batch: pc.batch}
	selBefore := d.sel
	opsBefore := pc.batch.Len()

	if err := pc.fn(w); err != nil {
		if rbErr := history.Revert(d.root, w.applied); rbErr != nil {
			d.logger.Error("rollback failed",
				zap.String("batch", pc.batch.ID.String()),
				zap.Error(rbErr),
			)
			return errors.Join(err, rbErr)
		}
		pc.batch.Truncate(opsBefore)
		d.sel = selBefore
		return err
	}

	if len(w.applied) > 0 {
		if opsBefore == 0 {
			pc.batch.SelectionBefore = selBefore
		}
		pc.batch.SelectionAfter = d.sel
		d.history.Record(pc.batch)
		d.summary.addBatch(pc.batch)
	}
	d.summary.Operations += len(w.applied) + w.external
	if !d.sel.Equal(selBefore) {
		d.summary.SelectionChanged = true
	}

	d.logger.Debug("change applied",
		zap.String("batch", pc.batch.ID.String()),
		zap.Int("operations", len(w.applied)+w.external),
	)
	return nil
}

func (s *ChangeSummary) addBatch(b *history.Batch) {
	for _, existing := range s.Batches {
		if existing == b {
			return
		}
	}
	s.Batches = append(s.Batches, b)
}

// SetSelection replaces the selection in its own change scope.
func (d *Document) SetSelection(sel selection.Selection) error {
	return d.EnqueueChanges(func(w *Writer) error {
		w.SetSelection(sel)
		return nil
	})
}

// OnChangesSettled registers fn to run after every change scope that
// modified the tree or the selection.
func (d *Document) OnChangesSettled(fn func(ChangeSummary)) *observable.Subscription {
	return d.settled.Subscribe(fn)
}

// Undo reverts the last recorded batch and restores its starting selection.
func (d *Document) Undo() error {
	if !d.history.CanUndo() {
		return ErrNothingToUndo
	}
	return d.EnqueueChangesIn(history.NewBatch(history.KindTransparent), func(w *Writer) error {
		b, err := d.history.Undo(d.root)
		if err != nil {
			return err
		}
		w.external += b.Len()
		w.SetSelection(b.SelectionBefore)
		return nil
	})
}

// Redo reapplies the last undone batch and restores its final selection.
func (d *Document) Redo() error {
	if !d.history.CanRedo() {
		return ErrNothingToRedo
	}
	return d.EnqueueChangesIn(history.NewBatch(history.KindTransparent), func(w *Writer) error {
		b, err := d.history.Redo(d.root)
		if err != nil {
			return err
		}
		w.external += b.Len()
		w.SetSelection(b.SelectionAfter)
		return nil
	})
}

// CanUndo returns true if there is a batch to undo.
func (d *Document) CanUndo() bool {
	return d.history.CanUndo()
}

// CanRedo returns true if there is a batch to redo.
func (d *Document) CanRedo() bool {
	return d.history.CanRedo()
}

// ClearHistory drops every undo and redo step. Steps address nodes by path,
// so they must not outlive the content they were recorded against.
func (d *Document) ClearHistory() {
	d.history.Clear()
}

// History returns the undo/redo stack.
func (d *Document) History() *history.History {
	return d.history
}
