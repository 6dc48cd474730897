package enter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockfmt/internal/command"
	"github.com/dshills/blockfmt/internal/devutil"
	"github.com/dshills/blockfmt/internal/engine"
)

func TestCommand_Execute(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "middle of paragraph",
			input: "<paragraph>foo[]bar</paragraph>",
			want:  "<paragraph>foo</paragraph><paragraph>[]bar</paragraph>",
		},
		{
			name:  "end of paragraph",
			input: "<paragraph>foo[]</paragraph>",
			want:  "<paragraph>foo</paragraph><paragraph>[]</paragraph>",
		},
		{
			name:  "end of heading starts a paragraph",
			input: "<heading1>foo[]</heading1><paragraph>x</paragraph>",
			want:  "<heading1>foo</heading1><paragraph>[]</paragraph><paragraph>x</paragraph>",
		},
		{
			name:  "middle of heading keeps the heading",
			input: "<heading1>fo[]o</heading1>",
			want:  "<heading1>fo</heading1><heading1>[]o</heading1>",
		},
		{
			name:  "start of heading keeps the heading",
			input: "<heading1>[]foo</heading1>",
			want:  "<heading1></heading1><heading1>[]foo</heading1>",
		},
		{
			name:  "attributes are copied",
			input: `<paragraph align="right">a[]b</paragraph>`,
			want:  `<paragraph align="right">a</paragraph><paragraph align="right">[]b</paragraph>`,
		},
		{
			name:  "selection inside one block is deleted",
			input: "<paragraph>f[oo]bar</paragraph>",
			want:  "<paragraph>f</paragraph><paragraph>[]bar</paragraph>",
		},
		{
			name:  "selection across blocks is deleted and joined",
			input: "<heading1>fo[o</heading1><paragraph>mid</paragraph><heading2>ba]r</heading2>",
			want:  "<heading1>fo</heading1><heading1>[]r</heading1>",
		},
		{
			name:  "selection to the end of a heading",
			input: "<heading2>a[bc</heading2><paragraph>]</paragraph>",
			want:  "<heading2>a</heading2><paragraph>[]</paragraph>",
		},
		{
			name:  "only the first range is deleted",
			input: "<paragraph>[a]</paragraph><paragraph>b</paragraph><paragraph>[c]</paragraph>",
			want:  "<paragraph></paragraph><paragraph>[]</paragraph><paragraph>b</paragraph><paragraph>c</paragraph>",
		},
		{
			name:  "empty root",
			input: "",
			want:  "<paragraph>[]</paragraph>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := engine.New()
			require.NoError(t, devutil.SetData(doc, tt.input))

			require.NoError(t, New(doc).Execute(command.Options{}))
			assert.Equal(t, tt.want, devutil.GetData(doc))
		})
	}
}

func TestCommand_SingleUndoStep(t *testing.T) {
	doc := engine.New()
	require.NoError(t, devutil.SetData(doc, "<heading1>fo[o</heading1><paragraph>b]ar</paragraph>"))

	require.NoError(t, New(doc).Execute(command.Options{}))
	require.Equal(t, 1, doc.History().UndoCount())

	require.NoError(t, doc.Undo())
	assert.Equal(t, "<heading1>fo[o</heading1><paragraph>b]ar</paragraph>", devutil.GetData(doc))
}

func TestCommand_DefaultID(t *testing.T) {
	doc := engine.New()
	require.NoError(t, devutil.SetData(doc, "<heading1>foo[]</heading1>"))

	cmd := New(doc, WithDefaultID(func() string { return "body" }))
	require.NoError(t, cmd.Execute(command.Options{}))

	assert.Equal(t, "<heading1>foo</heading1><body>[]</body>", devutil.GetData(doc))
}

func TestCommand_NestedSelection(t *testing.T) {
	doc := engine.New()
	require.NoError(t, devutil.SetData(doc, "<list><item>a[]</item></list>"))

	err := New(doc).Execute(command.Options{})
	assert.ErrorIs(t, err, ErrNestedSelection)
	assert.Equal(t, "<list><item>a[]</item></list>", devutil.GetData(doc))
}
