// Package engine provides the block document used by editor features.
//
// A Document combines a tree (package tree), a selection (package
// selection) and an undo history (package history). All mutation happens in
// change scopes:
//
//	doc := engine.New()
//	err := doc.EnqueueChanges(func(w *engine.Writer) error {
//	    _, err := w.InsertElement(tree.NewPosition(w.Root(), 0), "paragraph", nil)
//	    if err != nil {
//	        return err
//	    }
//	    return w.InsertText(tree.NewPosition(w.Root(), 0, 0), "Hello")
//	})
//
// # Batches
//
// Every scope records its operations into a batch, which becomes one undo
// step. Pass the same batch to EnqueueChangesIn to make several scopes undo
// together:
//
//	b := doc.NewBatch()
//	doc.EnqueueChangesIn(b, first)
//	doc.EnqueueChangesIn(b, second)
//	doc.Undo() // reverts both
//
// # Changes Settled
//
// Observers registered with OnChangesSettled run once after the outermost
// scope closes, never in the middle of a scope. Scopes opened from inside a
// callback are queued and run before the notification, so observers never
// see a half-applied change.
//
// # Node Identity
//
// Renaming an element replaces it with a new element. Code that must
// survive a rename keeps positions, not node references.
package engine
