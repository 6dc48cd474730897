// Package history provides invertible document operations, batches and the
// undo/redo stack for the block document engine.
//
// # Operations
//
// An Operation is a single structural edit addressed by a path of offsets:
//   - RenameOperation: replace an element by a new element with another name
//   - InsertOperation: insert nodes at a position
//   - RemoveOperation: remove nodes starting at a position
//
// Every operation has an exact inverse, so any sequence can be rolled back
// by applying the inverses in reverse order.
//
// # Batches
//
// A Batch groups the operations of one user-level change. It is the
// transaction handle callers pass around when several edits must undo
// together:
//
//	b := history.NewBatch(history.KindDefault)
//	b.Append(op) // applied elsewhere, recorded here
//
// # History Stack
//
// The History type manages undo/redo stacks of batches:
//
//	h := history.New(100)
//	h.Record(b)
//	undone, err := h.Undo(root)
//	redone, err := h.Redo(root)
//
// Batches of KindTransparent are never recorded.
package history
