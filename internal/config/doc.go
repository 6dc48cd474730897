// Package config loads blockfmt settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML or JSON file (Load)
//  3. BLOCKFMT_* environment variables
//
// A Store holds the current settings and notifies subscribers when they are
// replaced. Watch reloads a file into a Store whenever it changes on disk.
//
// Example file:
//
//	[heading]
//	default = "paragraph"
//
//	[[heading.options]]
//	model = "paragraph"
//	view = "p"
//	title = "Paragraph"
//
//	[[heading.options]]
//	model = "heading1"
//	view = "h2"
//
//	[log]
//	level = "debug"
//
// Options without a title get one derived from the model name, so the
// heading1 option above is labelled "Heading 1".
package config
