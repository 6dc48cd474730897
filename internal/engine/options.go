package engine

import (
	"go.uber.org/zap"

	"github.com/dshills/blockfmt/internal/engine/history"
	"github.com/dshills/blockfmt/internal/engine/selection"
	"github.com/dshills/blockfmt/internal/engine/tree"
)

// DefaultMaxUndoEntries is the default undo stack depth.
const DefaultMaxUndoEntries = history.DefaultMaxEntries

// Option configures a Document during creation.
type Option func(*Document)

// WithRoot uses root as the document tree. root must be a tree.NewRoot element.
func WithRoot(root *tree.Element) Option {
	return func(d *Document) {
		if root != nil && root.IsRoot() {
			d.root = root
		}
	}
}

// WithSelection sets the initial selection. Its ranges are rebound to the
// document root.
func WithSelection(sel selection.Selection) Option {
	return func(d *Document) {
		d.initSel = &sel
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(d *Document) {
		if max > 0 {
			d.maxUndoEntries = max
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}
