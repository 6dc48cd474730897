package editor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dshills/blockfmt/internal/command"
	"github.com/dshills/blockfmt/internal/config"
	"github.com/dshills/blockfmt/internal/engine"
	"github.com/dshills/blockfmt/internal/heading"
)

func newEditor(t *testing.T, opts ...Option) *Editor {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	e, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(e.Destroy)
	return e
}

func TestNew_RegistersCommands(t *testing.T) {
	e := newEditor(t)

	assert.Equal(t, []string{"enter", "heading", "redo", "undo"}, e.Commands().Names())
	for _, name := range []string{"paragraph", "heading1", "heading2", "heading3"} {
		assert.True(t, e.Schema().IsBlock(name), name)
	}
	assert.Equal(t, "paragraph", e.Heading().DefaultFormat().ID)
	assert.Len(t, e.Heading().Registry().Formats(), 4)
}

func TestEditor_HTMLRoundTrip(t *testing.T) {
	e := newEditor(t)

	require.NoError(t, e.SetData("<p>one</p><h2>two</h2><div>three</div>"))
	assert.Equal(t, "<paragraph>[]one</paragraph><heading1>two</heading1><paragraph>three</paragraph>", e.ModelData())

	require.NoError(t, e.Execute("heading", "heading3"))

	html, err := e.GetData()
	require.NoError(t, err)
	assert.Equal(t, "<h4>one</h4><h2>two</h2><p>three</p>", html)
	assert.Equal(t, 1, e.Document().History().UndoCount(), "loading data is not undoable")
}

func TestEditor_SetDataDropsEarlierHistory(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.SetData("<p>a</p>"))
	require.NoError(t, e.Execute("heading", "heading1"))
	require.True(t, e.Document().CanUndo())

	require.NoError(t, e.SetData("<h2>loaded</h2><p>other</p>"))
	assert.False(t, e.Document().CanUndo())
	assert.False(t, e.Document().CanRedo())

	assert.ErrorIs(t, e.Execute("undo", ""), command.ErrCommandDisabled)
	assert.ErrorIs(t, e.Document().Undo(), engine.ErrNothingToUndo)
	assert.Equal(t, "<heading1>[]loaded</heading1><paragraph>other</paragraph>", e.ModelData())
}

func TestEditor_SetModelDataDropsEarlierHistory(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.SetModelData("<paragraph>a[]</paragraph>"))
	require.NoError(t, e.Execute("heading", "heading2"))
	require.NoError(t, e.Execute("undo", ""))
	require.True(t, e.Document().CanRedo())

	require.NoError(t, e.SetModelData("<heading1>x[]</heading1>"))
	assert.False(t, e.Document().CanRedo())
	assert.ErrorIs(t, e.Execute("redo", ""), command.ErrCommandDisabled)
	assert.ErrorIs(t, e.Document().Redo(), engine.ErrNothingToRedo)
	assert.Equal(t, "<heading1>x[]</heading1>", e.ModelData())
}

func TestEditor_HeadingThenEnter(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.SetModelData("<paragraph>Title[]</paragraph>"))

	require.NoError(t, e.Execute("heading", "heading1"))
	require.NoError(t, e.Execute("enter", ""))

	assert.Equal(t, "<heading1>Title</heading1><paragraph>[]</paragraph>", e.ModelData())

	state, err := e.State("heading")
	require.NoError(t, err)
	assert.Equal(t, "paragraph", state.(heading.Format).ID, "value follows the selection into the new block")

	require.NoError(t, e.Execute("undo", ""))
	assert.Equal(t, "<heading1>Title[]</heading1>", e.ModelData())
	require.NoError(t, e.Execute("undo", ""))
	assert.Equal(t, "<paragraph>Title[]</paragraph>", e.ModelData())

	redo, err := e.State("redo")
	require.NoError(t, err)
	assert.Equal(t, true, redo)
}

func TestEditor_CustomConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Heading.Default = "body"
	cfg.Heading.Options = []config.FormatOption{
		{Model: "body", View: "p", Title: "Body"},
		{Model: "title", View: "h1"},
	}
	e := newEditor(t, WithConfig(cfg))

	require.NoError(t, e.SetData("<h1>a</h1>text"))
	assert.Equal(t, "<title>[]a</title><body>text</body>", e.ModelData())

	require.NoError(t, e.Execute("heading", "title"))
	assert.Equal(t, "<body>[]a</body><body>text</body>", e.ModelData())
	assert.Equal(t, "Title", e.Heading().Registry().Formats()[1].Label)
}

func TestEditor_DefaultFollowsStore(t *testing.T) {
	store := config.NewStore(nil)
	e := newEditor(t, WithConfigStore(store))
	require.NoError(t, e.SetModelData("<heading2>x[]</heading2>"))

	cfg := store.Get()
	cfg.Heading.Default = "heading1"
	store.Replace(cfg)

	require.NoError(t, e.Execute("heading", "heading2"))
	assert.Equal(t, "<heading1>x[]</heading1>", e.ModelData())
}

func TestEditor_ConfigWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockfmt.toml")
	require.NoError(t, os.WriteFile(path, []byte("[heading]\ndefault = \"paragraph\"\n"), 0o644))

	e := newEditor(t, WithConfigWatch(path))

	require.NoError(t, os.WriteFile(path, []byte("[heading]\ndefault = \"heading3\"\n"), 0o644))
	assert.Eventually(t, func() bool {
		return e.DefaultFormatID() == "heading3"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestEditor_Errors(t *testing.T) {
	e := newEditor(t)

	assert.ErrorIs(t, e.Execute("bold", ""), command.ErrUnknownCommand)
	_, err := e.State("bold")
	assert.ErrorIs(t, err, command.ErrUnknownCommand)
	assert.ErrorIs(t, e.Execute("undo", ""), command.ErrCommandDisabled)
}

func TestEditor_Destroy(t *testing.T) {
	e := newEditor(t)
	e.Destroy()
	e.Destroy()

	assert.Empty(t, e.Commands().Names())
	assert.ErrorIs(t, e.Execute("heading", "heading1"), ErrDestroyed)
	assert.ErrorIs(t, e.SetData("<p>x</p>"), ErrDestroyed)
}

func TestNew_ConflictingViews(t *testing.T) {
	cfg := config.Default()
	cfg.Heading.Options = append(cfg.Heading.Options, config.FormatOption{Model: "lead", View: "h2"})

	_, err := New(WithConfig(cfg))
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "heading", initErr.Component)
}
