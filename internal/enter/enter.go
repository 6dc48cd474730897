// Package enter implements the command that breaks a block in two at the
// selection.
package enter

import (
	"errors"

	"go.uber.org/zap"

	"github.com/dshills/blockfmt/internal/command"
	"github.com/dshills/blockfmt/internal/engine"
	"github.com/dshills/blockfmt/internal/engine/selection"
	"github.com/dshills/blockfmt/internal/engine/tree"
)

// CommandName is the name the command is registered under.
const CommandName = "enter"

// ErrNestedSelection is returned when the selection is deeper than the text
// of a topmost block.
var ErrNestedSelection = errors.New("selection is nested below a block")

// Command splits the block at the selection. A non-collapsed selection is
// deleted first. Splitting at the end of a block that is not in the default
// format starts a default block, so Enter after a heading yields a
// paragraph.
type Command struct {
	doc       *engine.Document
	defaultID func() string
	logger    *zap.Logger
}

// Option configures a Command.
type Option func(*Command)

// WithDefaultID sets the function supplying the default block name.
func WithDefaultID(fn func() string) Option {
	return func(c *Command) {
		if fn != nil {
			c.defaultID = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Command) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates the enter command for doc.
func New(doc *engine.Document, opts ...Option) *Command {
	c := &Command{
		doc:       doc,
		defaultID: func() string { return "paragraph" },
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute implements command.Command. opts.Value is ignored.
func (c *Command) Execute(opts command.Options) error {
	return c.doc.EnqueueChangesIn(opts.Batch, func(w *engine.Writer) error {
		pos, ok := w.Selection().FirstPosition()
		if !ok {
			return nil
		}
		if !w.Selection().IsCollapsed() {
			var err error
			if pos, err = deleteSelection(w); err != nil {
				return err
			}
		}
		return c.split(w, pos)
	})
}

func (c *Command) split(w *engine.Writer, pos tree.Position) error {
	defaultID := c.defaultID()

	if pos.Depth() == 1 {
		// Directly in the root: start an empty default block.
		el, err := w.InsertElement(pos, defaultID, nil)
		if err != nil {
			return err
		}
		return c.moveInto(w, el)
	}
	if pos.Depth() != 2 {
		return ErrNestedSelection
	}

	block := pos.Parent()
	atEnd := pos.Offset() == block.MaxOffset()

	next, err := w.Split(pos)
	if err != nil {
		return err
	}
	if atEnd && next.Name() != defaultID {
		if next, err = w.Rename(next, defaultID); err != nil {
			return err
		}
	}

	c.logger.Debug("block split",
		zap.String("block", block.Name()),
		zap.String("next", next.Name()),
		zap.Bool("at_end", atEnd),
	)
	return c.moveInto(w, next)
}

func (c *Command) moveInto(w *engine.Writer, el *tree.Element) error {
	start, err := tree.PositionAt(el, 0)
	if err != nil {
		return err
	}
	w.SetSelection(selection.Collapsed(start))
	return nil
}

// deleteSelection removes the content of the first selection range, joins
// the blocks at both of its ends and returns the position where they meet.
// Other ranges are left untouched.
func deleteSelection(w *engine.Writer) (tree.Position, error) {
	first, _ := w.Selection().FirstRange()

	startBlock, startOffset, err := blockPoint(first.Start, tree.DirectionAfter)
	if err != nil {
		return tree.Position{}, err
	}
	endBlock, endOffset, err := blockPoint(first.End, tree.DirectionBefore)
	if err != nil {
		return tree.Position{}, err
	}
	if startBlock == nil || endBlock == nil {
		return first.Start, nil
	}

	if startBlock == endBlock {
		if err := removeIn(w, startBlock, startOffset, endOffset); err != nil {
			return tree.Position{}, err
		}
		return tree.PositionAt(startBlock, startOffset)
	}

	// Collect before mutating; removals do not replace the end blocks.
	var between []tree.Node
	for n := tree.NextSibling(startBlock); n != nil && n != tree.Node(endBlock); n = tree.NextSibling(n) {
		between = append(between, n)
	}

	if err := removeIn(w, endBlock, 0, endOffset); err != nil {
		return tree.Position{}, err
	}
	for _, n := range between {
		if err := w.Remove(n); err != nil {
			return tree.Position{}, err
		}
	}
	if err := removeIn(w, startBlock, startOffset, startBlock.MaxOffset()); err != nil {
		return tree.Position{}, err
	}
	if err := w.Merge(startBlock); err != nil {
		return tree.Position{}, err
	}
	return tree.PositionAt(startBlock, startOffset)
}

// blockPoint maps a position to a topmost block and an offset inside it.
// Root-level positions map to the edge of the adjacent block.
func blockPoint(pos tree.Position, dir tree.Direction) (*tree.Element, int, error) {
	switch pos.Depth() {
	case 1:
		block := pos.TopmostBlock(dir)
		if block == nil {
			return nil, 0, nil
		}
		if dir == tree.DirectionBefore {
			return block, block.MaxOffset(), nil
		}
		return block, 0, nil
	case 2:
		return pos.Parent(), pos.Offset(), nil
	default:
		return nil, 0, ErrNestedSelection
	}
}

func removeIn(w *engine.Writer, block *tree.Element, start, end int) error {
	from, err := tree.PositionAt(block, start)
	if err != nil {
		return err
	}
	to, err := tree.PositionAt(block, end)
	if err != nil {
		return err
	}
	return w.RemoveRange(from, to)
}

// State implements command.Command.
func (c *Command) State() any {
	return nil
}

// Enabled implements command.Command.
func (c *Command) Enabled() bool {
	return true
}

// Destroy implements command.Command.
func (c *Command) Destroy() {}

var _ command.Command = (*Command)(nil)
