// Package tree provides the block document model used by the editor engine.
//
// A document is a rooted tree of elements and text nodes:
//
//	$root
//	├── heading1
//	│   └── "Title"
//	└── paragraph
//	    └── "Body text"
//
// Direct children of the root are the topmost blocks. The schema of the host
// decides which names may appear there; this package does not check it.
//
// # Offsets
//
// Every element has an offset space over its children. An element child
// occupies one offset, a text child occupies one offset per rune. Adjacent
// text children are merged, so a text node never borders another text node.
//
// # Positions
//
// A Position is a root plus a path of offsets, one per tree level:
//
//	pos := tree.NewPosition(root, 1, 4) // inside the second block, after 4 runes
//
// Positions hold no node references. Replacing a node with another node at
// the same place (a rename) leaves every position valid, which is what lets
// callers restore a selection by position after structural edits.
package tree
