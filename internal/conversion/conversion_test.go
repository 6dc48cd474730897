package conversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockfmt/internal/engine/tree"
)

func newTestConversion(t *testing.T) *Conversion {
	t.Helper()
	c := New()
	require.NoError(t, c.ElementToElement("paragraph", "p"))
	require.NoError(t, c.ElementToElement("heading1", "H2"))
	return c
}

func TestElementToElement(t *testing.T) {
	c := newTestConversion(t)

	view, ok := c.ViewFor("heading1")
	assert.True(t, ok)
	assert.Equal(t, "h2", view)

	model, ok := c.ModelFor("H2")
	assert.True(t, ok)
	assert.Equal(t, "heading1", model)

	assert.ErrorIs(t, c.ElementToElement("heading1", "h3"), ErrRuleExists)
	assert.ErrorIs(t, c.ElementToElement("heading2", "p"), ErrRuleExists)
	assert.ErrorIs(t, c.ElementToElement("", "p"), ErrEmptyName)

	assert.Equal(t, []Rule{
		{Model: "heading1", View: "h2"},
		{Model: "paragraph", View: "p"},
	}, c.Rules())
}

func TestDowncast(t *testing.T) {
	c := newTestConversion(t)
	root := tree.NewRoot()
	root.InsertChildren(0,
		tree.NewElement("heading1", map[string]string{"id": "top"}, tree.NewText("a & b")),
		tree.NewElement("paragraph", nil, tree.NewText("text")),
		tree.NewElement("paragraph", nil),
	)

	out, err := c.Downcast(root)
	require.NoError(t, err)
	assert.Equal(t, `<h2 id="top">a &amp; b</h2><p>text</p><p></p>`, out)
}

func TestDowncastUnknownElement(t *testing.T) {
	c := newTestConversion(t)
	root := tree.NewRoot()
	root.InsertChildren(0, tree.NewElement("heading9", nil))

	_, err := c.Downcast(root)
	assert.ErrorIs(t, err, ErrNoRule)
}

func TestUpcast(t *testing.T) {
	c := newTestConversion(t)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"blocks", "<h2>Title</h2>\n<p>Body <b>bold</b></p>", []string{"heading1:Title", "paragraph:Body bold"}},
		{"loose text", "hello", []string{"paragraph:hello"}},
		{"unknown wrapper", "<div><h2>A</h2>tail</div>", []string{"heading1:A", "paragraph:tail"}},
		{"unknown leaf", "<span>x</span>", []string{"paragraph:x"}},
		{"empty block", "<p></p>", []string{"paragraph:"}},
		{"whitespace only", "  \n ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := c.Upcast(tt.input, "paragraph")
			require.NoError(t, err)

			var got []string
			for _, n := range nodes {
				el, ok := n.(*tree.Element)
				require.True(t, ok)
				got = append(got, el.Name()+":"+el.TextContent())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
