// Package lua runs Lua scripts against an editor.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. The editor is exposed as a global table:
//
//	editor.set_data("<paragraph>Intro[]</paragraph>")
//	editor.execute("heading", "heading1")
//	print(editor.state("heading"))   -- heading1
//	print(editor.data())             -- <heading1>Intro[]</heading1>
//	for _, name in ipairs(editor.commands()) do print(name) end
//
// Errors returned by commands are raised as Lua errors, so scripts can use
// pcall to handle them.
package lua
