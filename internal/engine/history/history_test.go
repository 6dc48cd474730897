package history

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/blockfmt/internal/engine/tree"
)

// dump renders a tree as compact markup for comparisons.
func dump(el *tree.Element) string {
	var sb strings.Builder
	for _, child := range el.Children() {
		switch n := child.(type) {
		case *tree.Text:
			sb.WriteString(n.Data())
		case *tree.Element:
			sb.WriteString("<" + n.Name() + ">")
			sb.WriteString(dump(n))
			sb.WriteString("</" + n.Name() + ">")
		}
	}
	return sb.String()
}

func newTestRoot() *tree.Element {
	root := tree.NewRoot()
	root.InsertChildren(0,
		tree.NewElement("paragraph", nil, tree.NewText("foo")),
		tree.NewElement("heading1", nil, tree.NewText("bar")),
	)
	return root
}

// Operation Tests

func TestRenameOperation(t *testing.T) {
	root := newTestRoot()
	op := NewRenameOperation([]int{1}, "heading1", "paragraph")

	if err := op.Apply(root); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := dump(root); got != "<paragraph>foo</paragraph><paragraph>bar</paragraph>" {
		t.Errorf("after rename = %q", got)
	}

	if err := op.Inverse().Apply(root); err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if got := dump(root); got != "<paragraph>foo</paragraph><heading1>bar</heading1>" {
		t.Errorf("after inverse = %q", got)
	}
}

func TestRenameOperationKeepsAttributes(t *testing.T) {
	root := tree.NewRoot()
	root.InsertChildren(0, tree.NewElement("paragraph", map[string]string{"align": "center"}, tree.NewText("x")))

	if err := NewRenameOperation([]int{0}, "paragraph", "heading2").Apply(root); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	el := root.Child(0).(*tree.Element)
	if v, _ := el.Attribute("align"); v != "center" {
		t.Errorf("align = %q, want center", v)
	}
}

func TestRenameOperationMismatch(t *testing.T) {
	root := newTestRoot()

	err := NewRenameOperation([]int{0}, "heading1", "paragraph").Apply(root)
	if !errors.Is(err, ErrOperationMismatch) {
		t.Errorf("expected ErrOperationMismatch, got %v", err)
	}

	err = NewRenameOperation([]int{5}, "heading1", "paragraph").Apply(root)
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
}

func TestInsertOperation(t *testing.T) {
	root := newTestRoot()
	op := NewInsertOperation([]int{0, 1}, tree.NewText("XY"))

	if err := op.Apply(root); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := dump(root); got != "<paragraph>fXYoo</paragraph><heading1>bar</heading1>" {
		t.Errorf("after insert = %q", got)
	}
	if root.Child(0).(*tree.Element).ChildCount() != 1 {
		t.Error("text nodes should be merged")
	}

	if err := op.Inverse().Apply(root); err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if got := dump(root); got != "<paragraph>foo</paragraph><heading1>bar</heading1>" {
		t.Errorf("after inverse = %q", got)
	}
}

func TestOperationsRejectUnresolvedPaths(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
	}{
		{"rename past end", NewRenameOperation([]int{3}, "paragraph", "heading1")},
		{"insert past end", NewInsertOperation([]int{0, 4}, tree.NewText("x"))},
		{"remove past end", NewRemoveOperation([]int{1, 9}, tree.NewText("x"))},
		{"insert through text", NewInsertOperation([]int{0, 1, 0}, tree.NewText("x"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newTestRoot()
			err := tt.op.Apply(root)
			if !errors.Is(err, ErrInvalidPath) {
				t.Errorf("expected ErrInvalidPath, got %v", err)
			}
			if got := dump(root); got != "<paragraph>foo</paragraph><heading1>bar</heading1>" {
				t.Errorf("failed apply changed the tree: %q", got)
			}
		})
	}
}

func TestInsertOperationCopiesNodes(t *testing.T) {
	root := newTestRoot()
	el := tree.NewElement("heading2", nil)
	op := NewInsertOperation([]int{2}, el)

	if err := op.Apply(root); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if root.Child(2) == tree.Node(el) {
		t.Error("inserted node should be a copy")
	}
	// Applying twice inserts two independent copies.
	if err := op.Apply(root); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if root.ChildCount() != 4 {
		t.Errorf("ChildCount = %d, want 4", root.ChildCount())
	}
}

func TestRemoveOperation(t *testing.T) {
	root := newTestRoot()
	op := NewRemoveOperation([]int{1, 1}, tree.NewText("a"))

	if op.Size() != 1 {
		t.Errorf("Size = %d, want 1", op.Size())
	}
	if err := op.Apply(root); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := dump(root); got != "<paragraph>foo</paragraph><heading1>br</heading1>" {
		t.Errorf("after remove = %q", got)
	}

	if err := op.Inverse().Apply(root); err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if got := dump(root); got != "<paragraph>foo</paragraph><heading1>bar</heading1>" {
		t.Errorf("after inverse = %q", got)
	}
}

func TestRemoveOperationOutOfRange(t *testing.T) {
	root := newTestRoot()

	err := NewRemoveOperation([]int{1, 2}, tree.NewText("abc")).Apply(root)
	if !errors.Is(err, ErrOperationMismatch) {
		t.Errorf("expected ErrOperationMismatch, got %v", err)
	}
	if got := dump(root); got != "<paragraph>foo</paragraph><heading1>bar</heading1>" {
		t.Errorf("failed remove changed the tree: %q", got)
	}
}

// Batch Tests

func TestBatchRevertReapply(t *testing.T) {
	root := newTestRoot()
	b := NewBatch(KindDefault)

	ops := []Operation{
		NewRenameOperation([]int{0}, "paragraph", "heading2"),
		NewInsertOperation([]int{1, 3}, tree.NewText("!")),
	}
	for _, op := range ops {
		if err := op.Apply(root); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		b.Append(op)
	}
	want := "<heading2>foo</heading2><heading1>bar!</heading1>"
	if got := dump(root); got != want {
		t.Fatalf("applied = %q", got)
	}

	if err := b.Revert(root); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if got := dump(root); got != "<paragraph>foo</paragraph><heading1>bar</heading1>" {
		t.Errorf("reverted = %q", got)
	}

	if err := b.Reapply(root); err != nil {
		t.Fatalf("Reapply: %v", err)
	}
	if got := dump(root); got != want {
		t.Errorf("reapplied = %q", got)
	}
}

func TestBatchTruncate(t *testing.T) {
	b := NewBatch(KindDefault)
	b.Append(NewRenameOperation([]int{0}, "a", "b"))
	b.Append(NewRenameOperation([]int{0}, "b", "c"))

	b.Truncate(1)
	if b.Len() != 1 {
		t.Errorf("Len = %d, want 1", b.Len())
	}
	ops := b.Operations()
	if len(ops) != 1 || ops[0].(*RenameOperation).NewName != "b" {
		t.Errorf("Operations = %v", ops)
	}
	b.Truncate(-1)
	if !b.IsEmpty() {
		t.Error("batch should be empty")
	}
}

func TestKindString(t *testing.T) {
	if KindDefault.String() != "default" || KindTransparent.String() != "transparent" {
		t.Error("unexpected kind names")
	}
	if Kind(9).String() != "unknown" {
		t.Error("unknown kind should be named unknown")
	}
}

// History Tests

func recordRename(t *testing.T, h *History, root *tree.Element, index int, from, to string) *Batch {
	t.Helper()
	op := NewRenameOperation([]int{index}, from, to)
	if err := op.Apply(root); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	b := NewBatch(KindDefault)
	b.Append(op)
	h.Record(b)
	return b
}

func TestHistoryUndoRedo(t *testing.T) {
	root := newTestRoot()
	h := New(0)

	if h.MaxEntries() != DefaultMaxEntries {
		t.Errorf("MaxEntries = %d, want %d", h.MaxEntries(), DefaultMaxEntries)
	}

	recordRename(t, h, root, 0, "paragraph", "heading1")
	recordRename(t, h, root, 1, "heading1", "heading2")

	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount = %d, want 2", h.UndoCount())
	}

	if _, err := h.Undo(root); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := dump(root); got != "<heading1>foo</heading1><heading1>bar</heading1>" {
		t.Errorf("after undo = %q", got)
	}
	if !h.CanRedo() || h.RedoCount() != 1 || h.UndoCount() != 1 {
		t.Errorf("undo/redo counts = %d/%d, want 1/1", h.UndoCount(), h.RedoCount())
	}

	if _, err := h.Redo(root); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := dump(root); got != "<heading1>foo</heading1><heading2>bar</heading2>" {
		t.Errorf("after redo = %q", got)
	}
}

func TestHistoryRecordClearsRedo(t *testing.T) {
	root := newTestRoot()
	h := New(10)

	recordRename(t, h, root, 0, "paragraph", "heading1")
	if _, err := h.Undo(root); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	recordRename(t, h, root, 1, "heading1", "heading2")

	if h.CanRedo() || h.RedoCount() != 0 {
		t.Error("new record should clear redo")
	}
}

func TestHistoryRecordSkips(t *testing.T) {
	root := newTestRoot()
	h := New(10)

	h.Record(nil)
	h.Record(NewBatch(KindDefault))

	tb := NewBatch(KindTransparent)
	tb.Append(NewRenameOperation([]int{0}, "paragraph", "x"))
	h.Record(tb)

	b := recordRename(t, h, root, 0, "paragraph", "heading1")
	h.Record(b)

	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", h.UndoCount())
	}
	if !b.Recorded() {
		t.Error("batch should be marked recorded")
	}
}

func TestHistoryMaxEntries(t *testing.T) {
	root := newTestRoot()
	h := New(2)

	recordRename(t, h, root, 0, "paragraph", "a")
	recordRename(t, h, root, 0, "a", "b")
	recordRename(t, h, root, 0, "b", "c")

	if h.UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want 2", h.UndoCount())
	}
	if len(h.UndoInfo()) != 2 {
		t.Errorf("UndoInfo len = %d, want 2", len(h.UndoInfo()))
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := New(10)
	root := tree.NewRoot()

	if _, err := h.Undo(root); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if _, err := h.Redo(root); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestHistoryUndoFailureKeepsEntry(t *testing.T) {
	root := newTestRoot()
	h := New(10)
	recordRename(t, h, root, 0, "paragraph", "heading1")

	// Break the document so the inverse no longer matches.
	root.RemoveChildren(0, root.ChildCount())

	if _, err := h.Undo(root); err == nil {
		t.Fatal("expected error")
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", h.UndoCount())
	}

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear should empty both stacks")
	}
}
