// Package heading implements block format switching between paragraphs and
// headings.
//
// A Registry holds the available formats. The Command renames the topmost
// blocks touched by the selection to a requested format, or back to the
// default format when the requested one is already active, and keeps an
// observable value with the format at the selection.
//
//	cmd, err := heading.Register(host, []heading.Format{
//		{ID: "paragraph", ViewTag: "p", Label: "Paragraph"},
//		{ID: "heading1", ViewTag: "h2", Label: "Heading 1"},
//	})
//	err = cmd.Execute(command.Options{Value: "heading1"})
package heading
