// Package selection provides ranges and multi-range selections over the
// block document tree.
//
// A Selection holds one or more ranges kept in document order, plus a flag
// recording whether the user made it backward (focus before anchor). Ranges
// are built from tree positions, so a selection snapshot stays meaningful
// after nodes are replaced, as long as the paths still resolve.
package selection
