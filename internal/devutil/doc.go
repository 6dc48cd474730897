// Package devutil reads and writes the model markup used by tests and the
// command line tool.
//
// Markup mirrors the model tree. Square brackets mark selection ranges at
// any level, and "[]" marks a collapsed selection:
//
//	<heading1>foo[]bar</heading1>
//	<heading1>foo[</heading1><paragraph>bar</paragraph>]
//
// Several bracket pairs produce a multi-range selection.
package devutil
