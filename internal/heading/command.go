package heading

import (
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/blockfmt/internal/command"
	"github.com/dshills/blockfmt/internal/engine"
	"github.com/dshills/blockfmt/internal/engine/selection"
	"github.com/dshills/blockfmt/internal/engine/tree"
	"github.com/dshills/blockfmt/internal/observable"
)

// CommandName is the name the command is registered under.
const CommandName = "heading"

// Command switches the format of the blocks touched by the selection.
//
// Its value is the format of the block at the start of the selection. The
// value is recomputed once at construction and after every settled change
// of the document; until a block is found it is the zero Format.
type Command struct {
	doc      *engine.Document
	registry *Registry
	value    *observable.Value[Format]
	logger   *zap.Logger

	sub         *observable.Subscription
	destroyOnce sync.Once
}

// CommandOption configures a Command.
type CommandOption func(*Command)

// WithCommandLogger sets the command logger.
func WithCommandLogger(logger *zap.Logger) CommandOption {
	return func(c *Command) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCommand creates a command over doc and subscribes it to the document's
// settled changes.
func NewCommand(doc *engine.Document, registry *Registry, opts ...CommandOption) *Command {
	c := &Command{
		doc:      doc,
		registry: registry,
		value:    observable.NewValue(Format{}),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.sub = doc.OnChangesSettled(func(engine.ChangeSummary) {
		c.refresh()
	})
	c.refresh()
	return c
}

// Execute applies the format named by opts.Value to the selected blocks.
// An empty or unknown value means the default format. If the requested
// format is the current value, blocks in that format revert to the default
// instead. The selection is restored afterwards.
func (c *Command) Execute(opts command.Options) error {
	target := c.registry.Resolve(opts.Value)

	sel := c.doc.Selection()
	ranges := sel.Ranges()
	backward := sel.IsBackward()
	collapsed := sel.IsCollapsed()

	toggle := target.ID == c.value.Get().ID

	return c.doc.EnqueueChangesIn(opts.Batch, func(w *engine.Writer) error {
		blocks := targetBlocks(w.Root(), ranges, collapsed)
		defaultID := c.registry.Default().ID

		renamed := 0
		for _, block := range blocks {
			name := target.ID
			if toggle {
				if block.Name() != target.ID {
					continue
				}
				name = defaultID
			}
			if block.Name() == name {
				continue
			}
			if _, err := w.Rename(block, name); err != nil {
				return err
			}
			renamed++
		}

		w.SetSelection(selection.New(ranges, backward))

		c.logger.Debug("block format applied",
			zap.String("format", target.ID),
			zap.Bool("toggle", toggle),
			zap.Int("blocks", len(blocks)),
			zap.Int("renamed", renamed),
		)
		return nil
	})
}

// targetBlocks returns the topmost blocks touched by the ranges. A collapsed
// selection touches the block at its position. A range touches the blocks
// from the one containing its start to the one containing its end. A block
// touched by several ranges is returned once: renaming replaces the element,
// so a second rename of the same block would address a detached node.
func targetBlocks(root *tree.Element, ranges []selection.Range, collapsed bool) []*tree.Element {
	if len(ranges) == 0 {
		return nil
	}
	if collapsed {
		block := ranges[0].Start.WithRoot(root).TopmostBlock(tree.DirectionAfter)
		if block == nil {
			return nil
		}
		return []*tree.Element{block}
	}

	var blocks []*tree.Element
	seen := make(map[*tree.Element]bool)
	for _, r := range ranges {
		start := r.Start.WithRoot(root).TopmostBlock(tree.DirectionAfter)
		if start == nil {
			continue
		}
		end := r.End.WithRoot(root).TopmostBlock(tree.DirectionBefore)
		if end == nil || tree.Index(end) < tree.Index(start) {
			end = start
		}

		for block := start; block != nil; {
			if !seen[block] {
				seen[block] = true
				blocks = append(blocks, block)
			}
			if block == end {
				break
			}
			block, _ = block.NextSibling().(*tree.Element)
		}
	}
	return blocks
}

// refresh sets the value to the format of the block at the first selection
// position. The value is kept when there is no block or the block's name is
// not a registered format.
func (c *Command) refresh() {
	pos, ok := c.doc.Selection().FirstPosition()
	if !ok {
		return
	}
	block := pos.TopmostBlock(tree.DirectionAfter)
	if block == nil {
		return
	}
	if f, ok := c.registry.Lookup(block.Name()); ok {
		c.value.Set(f)
	}
}

// Value returns the format at the selection.
func (c *Command) Value() Format {
	return c.value.Get()
}

// DefaultFormat returns the registry's current default format.
func (c *Command) DefaultFormat() Format {
	return c.registry.Default()
}

// Registry returns the formats the command switches between.
func (c *Command) Registry() *Registry {
	return c.registry
}

// OnValueChange registers fn to run whenever the value changes.
func (c *Command) OnValueChange(fn func(observable.Change[Format])) *observable.Subscription {
	return c.value.Subscribe(fn)
}

// State returns the current value as a Format.
func (c *Command) State() any {
	return c.value.Get()
}

// Enabled implements command.Command. Block formats can always be applied.
func (c *Command) Enabled() bool {
	return true
}

// Destroy stops value synchronization. It is safe to call more than once.
func (c *Command) Destroy() {
	c.destroyOnce.Do(func() {
		c.sub.Unsubscribe()
	})
}

var _ command.Command = (*Command)(nil)
